package animator

import (
	"slices"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// animator is the implementation of the Animator interface.
type animator struct {
	clock    func() time.Time
	entries  []*entry
	byTarget map[any]*entry
	scratch  []*entry
}

// Animator schedules per-frame progress callbacks for a single scene.
//
// The Animator is not safe for concurrent use. It is owned by the render thread and advanced
// once per frame; entries run in registration order.
type Animator interface {
	// Register schedules an animation starting now. An existing animation with the same target is
	// dropped without its End callback and the new one starts from progress 0.
	//
	// Parameters:
	//   - anim: the animation to schedule; anim.Target must be comparable
	Register(anim Animation)

	// Cancel drops the animation registered for target without calling its End callback.
	//
	// Parameters:
	//   - target: the target key used at registration
	//
	// Returns:
	//   - bool: true if an animation was removed
	Cancel(target any) bool

	// Tick advances every registered animation to now. Each entry's Step is called with its
	// progress; entries that reach progress 1 are removed and their End callback is called once.
	// Step and End may register or cancel animations; changes take effect for the entries they touch
	// immediately and newly registered entries are first stepped on the next Tick.
	//
	// Parameters:
	//   - now: the frame timestamp
	//
	// Returns:
	//   - bool: true if animations remain registered and another frame should be scheduled
	Tick(now time.Time) bool

	// Active reports whether an animation is registered for target.
	//
	// Parameters:
	//   - target: the target key
	//
	// Returns:
	//   - bool: true if target is animating
	Active(target any) bool

	// Kind returns the kind of the animation registered for target.
	//
	// Returns:
	//   - Kind: the registered kind
	//   - bool: false if nothing is registered for target
	Kind(target any) (Kind, bool)

	// Len returns the number of registered animations.
	Len() int

	// Now returns the current time from the animator's clock.
	Now() time.Time
}

var _ Animator = &animator{}

// NewAnimator creates an empty Animator using the wall clock.
//
// Parameters:
//   - options: functional options to configure the animator
//
// Returns:
//   - Animator: the newly created animator
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{
		clock:    time.Now,
		byTarget: make(map[any]*entry),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *animator) Register(anim Animation) {
	if old, ok := a.byTarget[anim.Target]; ok {
		a.remove(old)
		common.Logger().Debug("animation replaced", "kind", old.anim.Kind, "target", anim.Target)
	}
	e := &entry{anim: anim, start: a.clock()}
	a.entries = append(a.entries, e)
	a.byTarget[anim.Target] = e
	common.Logger().Debug("animation registered", "kind", anim.Kind, "target", anim.Target, "duration", anim.Duration)
}

func (a *animator) Cancel(target any) bool {
	e, ok := a.byTarget[target]
	if !ok {
		return false
	}
	a.remove(e)
	common.Logger().Debug("animation cancelled", "kind", e.anim.Kind, "target", target)
	return true
}

func (a *animator) Tick(now time.Time) bool {
	// snapshot so callbacks can register and cancel while we iterate
	a.scratch = append(a.scratch[:0], a.entries...)
	for _, e := range a.scratch {
		if !a.current(e) {
			continue
		}
		progress := e.progress(now)
		if e.anim.Step != nil {
			e.anim.Step(progress)
		}
		if progress < 1 || !a.current(e) {
			continue
		}
		a.remove(e)
		common.Logger().Debug("animation complete", "kind", e.anim.Kind, "target", e.anim.Target)
		if e.anim.End != nil {
			e.anim.End()
		}
	}
	clear(a.scratch)
	return len(a.entries) > 0
}

func (a *animator) Active(target any) bool {
	_, ok := a.byTarget[target]
	return ok
}

func (a *animator) Kind(target any) (Kind, bool) {
	e, ok := a.byTarget[target]
	if !ok {
		return KindOther, false
	}
	return e.anim.Kind, true
}

func (a *animator) Len() int {
	return len(a.entries)
}

func (a *animator) Now() time.Time {
	return a.clock()
}

// current reports whether e is still the registered entry for its target.
func (a *animator) current(e *entry) bool {
	return a.byTarget[e.anim.Target] == e
}

// remove deregisters e, keeping the remaining entries in registration order.
func (a *animator) remove(e *entry) {
	if a.byTarget[e.anim.Target] == e {
		delete(a.byTarget, e.anim.Target)
	}
	if i := slices.Index(a.entries, e); i >= 0 {
		a.entries = slices.Delete(a.entries, i, i+1)
	}
}
