// Package easing maps animation progress in [0, 1] to an eased factor in [0, 1].
//
// Curves are chosen by family (linear, quadratic, cubic) and direction (in, out, in-out).
// Reference: https://easings.net/
package easing

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// Family selects the polynomial degree of the curve.
type Family int

const (
	Linear Family = iota
	Quadratic
	Cubic
)

// Direction selects where the curve accelerates.
type Direction int

const (
	// In starts slow and ends fast.
	In Direction = iota
	// Out starts fast and ends slow.
	Out
	// InOut is slow at both ends.
	InOut
)

// Type is a complete curve description.
type Type struct {
	Family    Family
	Direction Direction
}

// Common curve presets.
var (
	LinearType     = Type{Linear, InOut}
	QuadraticInOut = Type{Quadratic, InOut}
	QuadraticOut   = Type{Quadratic, Out}
	CubicInOut     = Type{Cubic, InOut}
	CubicOut       = Type{Cubic, Out}

	// DefaultEasing is used by scripted camera moves when no curve is configured.
	DefaultEasing = CubicInOut
)

var (
	familyNames     = map[Family]string{Linear: "linear", Quadratic: "quadratic", Cubic: "cubic"}
	directionNames  = map[Direction]string{In: "in", Out: "out", InOut: "inout"}
	familyExponents = map[Family]int{Linear: 1, Quadratic: 2, Cubic: 3}
)

// String returns the configuration form of the curve, e.g. "cubic-inout".
func (t Type) String() string {
	return familyNames[t.Family] + "-" + directionNames[t.Direction]
}

// Parse reads a curve in the "family-direction" form used by configuration files.
// A bare family name means in-out.
//
// Parameters:
//   - s: the curve name, e.g. "cubic-out" or "linear"
//
// Returns:
//   - Type: the parsed curve
//   - error: if the family or direction is unknown
func Parse(s string) (Type, error) {
	fam, dir, hasDir := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "-")
	t := Type{Direction: InOut}
	found := false
	for f, name := range familyNames {
		if name == fam {
			t.Family, found = f, true
		}
	}
	if !found {
		return Type{}, fmt.Errorf("unknown easing family %q", fam)
	}
	if !hasDir {
		return t, nil
	}
	found = false
	for d, name := range directionNames {
		if name == dir {
			t.Direction, found = d, true
		}
	}
	if !found {
		return Type{}, fmt.Errorf("unknown easing direction %q", dir)
	}
	return t, nil
}

// Factor returns the eased value of progress for the given curve.
// Progress is clamped to [0, 1]. Unknown families fall back to linear.
//
// Parameters:
//   - progress: animation progress, 0 at start and 1 at the end
//   - t: the curve to apply
//
// Returns:
//   - float32: the eased factor in [0, 1]
func Factor(progress float32, t Type) float32 {
	p := common.Clamp(progress, 0, 1)
	n, ok := familyExponents[t.Family]
	if !ok || n == 1 {
		return p
	}
	switch t.Direction {
	case In:
		return pow(p, n)
	case Out:
		return 1 - pow(1-p, n)
	default:
		if p < 0.5 {
			return pow(2, n-1) * pow(p, n)
		}
		return 1 - pow(-2*p+2, n)/2
	}
}

// InOutFactor is Factor for callers that only select the family and always ease both ends.
func InOutFactor(progress float32, family Family) float32 {
	return Factor(progress, Type{Family: family, Direction: InOut})
}

// pow calculates x^n for small non-negative n.
func pow(x float32, n int) float32 {
	r := float32(1)
	for i := 0; i < n; i++ {
		r *= x
	}
	return r
}
