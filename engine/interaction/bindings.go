package interaction

import (
	"fmt"
	"maps"
	"strings"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// relevantMods are the modifier bits bindings distinguish. Lock keys are ignored.
const relevantMods = common.ModShift | common.ModControl | common.ModAlt

// Binding is a pointer button together with the modifier keys held when it was pressed.
type Binding struct {
	Button   common.MouseButton
	Modifier common.Modifier
}

func (b Binding) String() string {
	if b.Modifier == common.ModNone {
		return b.Button.String()
	}
	parts := []string{b.Button.String()}
	for _, m := range []common.Modifier{common.ModShift, common.ModControl, common.ModAlt} {
		if b.Modifier&m != 0 {
			parts = append(parts, m.String())
		}
	}
	return strings.Join(parts, "+")
}

// ParseBinding reads a binding in the "button[+modifier...]" form, e.g. "right+shift".
//
// Parameters:
//   - s: the binding text
//
// Returns:
//   - Binding: the parsed binding
//   - error: if the button or a modifier is unknown
func ParseBinding(s string) (Binding, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	button, ok := common.ParseMouseButton(strings.TrimSpace(parts[0]))
	if !ok {
		return Binding{}, fmt.Errorf("unknown mouse button %q in binding %q", parts[0], s)
	}
	b := Binding{Button: button}
	for _, p := range parts[1:] {
		m, ok := common.ParseModifier(strings.TrimSpace(p))
		if !ok {
			return Binding{}, fmt.Errorf("unknown modifier %q in binding %q", p, s)
		}
		b.Modifier |= m
	}
	return b, nil
}

// Bindings maps button and modifier combinations to interactions.
type Bindings map[Binding]Type

// DefaultBindings returns left=rotate, middle=dolly, right=pan and right+shift=dolly.
func DefaultBindings() Bindings {
	return Bindings{
		{common.MouseButtonLeft, common.ModNone}:   TypeRotate,
		{common.MouseButtonMiddle, common.ModNone}: TypeDolly,
		{common.MouseButtonRight, common.ModNone}:  TypePan,
		{common.MouseButtonRight, common.ModShift}: TypeDolly,
	}
}

// Resolve returns the interaction bound to button with mods held. Combinations without an
// explicit entry fall back to the button's unmodified binding.
//
// Parameters:
//   - button: the pressed button
//   - mods: held modifier keys; lock-key bits are ignored
//
// Returns:
//   - Type: the bound interaction, or TypeNone
func (b Bindings) Resolve(button common.MouseButton, mods common.Modifier) Type {
	if t, ok := b[Binding{button, mods & relevantMods}]; ok {
		return t
	}
	return b[Binding{button, common.ModNone}]
}

// Clone returns an independent copy of b. A nil table clones to an empty one.
func (b Bindings) Clone() Bindings {
	if b == nil {
		return Bindings{}
	}
	return maps.Clone(b)
}

// ParseBindings builds a binding table from configuration text, e.g. {"left": "rotate", "right+shift": "dolly"}.
// Entries override DefaultBindings; binding an entry to "none" disables it.
//
// Parameters:
//   - entries: binding text mapped to interaction names
//
// Returns:
//   - Bindings: the merged table
//   - error: if any entry fails to parse
func ParseBindings(entries map[string]string) (Bindings, error) {
	out := DefaultBindings()
	for key, value := range entries {
		b, err := ParseBinding(key)
		if err != nil {
			return nil, err
		}
		t, err := ParseType(strings.ToLower(strings.TrimSpace(value)))
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", key, err)
		}
		out[b] = t
	}
	return out, nil
}
