package animator

import (
	"fmt"
	"time"
)

// Kind tags what an Animation drives. The animator treats every kind the same way;
// owners use the kind to tell their own scripted moves from inertia when an End callback fires.
type Kind int

const (
	// KindOther is any animation that is not camera motion.
	KindOther Kind = iota
	// KindScriptedCameraMove is an eased camera transition started by AnimateTo.
	KindScriptedCameraMove
	// KindInertiaDecay replays a decaying gesture velocity after a pan or rotate ends.
	KindInertiaDecay
)

var kindNames = map[Kind]string{
	KindOther:              "other",
	KindScriptedCameraMove: "scripted-camera-move",
	KindInertiaDecay:       "inertia-decay",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Animation is a single scheduled effect.
//
// Target identifies the animated object and must be a comparable value; registering a second
// animation with an equal Target replaces the first. Step receives the linear progress in [0, 1]
// on every tick, easing is the owner's concern. End runs exactly once, after the Step call that
// reported progress 1, and is never called for an animation that was replaced or cancelled.
type Animation struct {
	Kind     Kind
	Target   any
	Duration time.Duration
	Step     func(progress float32)
	End      func()
}

// entry is a registered animation and the time it was scheduled.
type entry struct {
	anim  Animation
	start time.Time
}

// progress returns the clamped fraction of the animation elapsed at now.
func (e *entry) progress(now time.Time) float32 {
	if e.anim.Duration <= 0 {
		return 1
	}
	p := float32(now.Sub(e.start)) / float32(e.anim.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
