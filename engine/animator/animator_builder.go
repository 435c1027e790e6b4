package animator

import "time"

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithClock is an option builder that replaces the wall clock used to timestamp registrations.
// Tests use it to drive animations deterministically.
//
// Parameters:
//   - clock: returns the current time; nil keeps time.Now
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the clock option to an animator
func WithClock(clock func() time.Time) AnimatorBuilderOption {
	return func(a *animator) {
		if clock != nil {
			a.clock = clock
		}
	}
}
