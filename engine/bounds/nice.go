package bounds

import (
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// DefaultSteps is the tick count NiceStep aims for when callers have no preference.
const DefaultSteps = 7

// NiceStep returns a human-friendly tick spacing for the range [minimum, maximum].
// It starts at the power of ten below the range width, doubles while the range holds more than
// desiredSteps+1 steps, then halves while it holds fewer than desiredSteps-1. The halving pass has
// the last word, so widths that fall between two bands (9, 90 and 4.5 with the default of 7) end
// with desiredSteps+2 steps.
// A zero-width or inverted range returns 0.
//
// Parameters:
//   - minimum: range start
//   - maximum: range end
//   - desiredSteps: target number of steps; values below 1 use DefaultSteps
//
// Returns:
//   - float64: the step, or 0 for a degenerate range
func NiceStep(minimum, maximum float64, desiredSteps int) float64 {
	width := maximum - minimum
	if !(width > 0) || math.IsInf(width, 0) {
		return 0
	}
	if desiredSteps < 1 {
		desiredSteps = DefaultSteps
	}
	hi := float64(desiredSteps + 1)
	lo := float64(desiredSteps - 1)

	step := math.Pow(10, math.Floor(math.Log10(width)))
	for width/step > hi {
		step *= 2
	}
	for width/step < lo {
		step /= 2
	}
	return step
}

// NiceRange returns tick values stepping by NiceStep across [minimum, maximum].
// The first value is minimum rounded down to a step multiple (rounded up when truncate is set)
// and values continue until one reaches maximum; with truncate a final value beyond maximum is dropped.
// A degenerate range returns the single value minimum.
//
// Parameters:
//   - minimum: range start
//   - maximum: range end
//   - desiredSteps: target number of steps; values below 1 use DefaultSteps
//   - truncate: keep all values inside [minimum, maximum]
//
// Returns:
//   - []float64: non-decreasing tick values
func NiceRange(minimum, maximum float64, desiredSteps int, truncate bool) []float64 {
	step := NiceStep(minimum, maximum, desiredSteps)
	if step == 0 {
		return []float64{minimum}
	}

	first := math.Floor(minimum/step) * step
	if truncate {
		first = math.Ceil(minimum/step) * step
	}
	// tolerate rounding when maximum is itself a step multiple
	limit := maximum - step*1e-9

	values := []float64{first}
	for i := 1; values[len(values)-1] < limit; i++ {
		values = append(values, first+float64(i)*step)
	}
	if truncate && len(values) > 1 && values[len(values)-1] > maximum+step*1e-9 {
		values = values[:len(values)-1]
	}
	return values
}

// Prettify snaps the minimum corner down and the maximum corner up to the nearest
// multiple of each axis' NiceStep. Axes with zero width are left alone. No-op when unset.
func (b *Bounds) Prettify() {
	if !b.set {
		return
	}
	for i := 0; i < 3; i++ {
		lo, hi := float64(b.minima[i]), float64(b.maxima[i])
		step := NiceStep(lo, hi, DefaultSteps)
		if step == 0 {
			continue
		}
		b.minima[i] = float32(math.Floor(lo/step) * step)
		b.maxima[i] = float32(math.Ceil(hi/step) * step)
	}
}

// AxisRange returns NiceRange over one axis of the bounds, or nil when unset.
//
// Parameters:
//   - axis: 0, 1 or 2 for x, y, z
//   - desiredSteps: target number of steps
//   - truncate: keep all values inside the bounds
//
// Returns:
//   - []float64: tick values for the axis
func (b Bounds) AxisRange(axis, desiredSteps int, truncate bool) []float64 {
	if !b.set {
		return nil
	}
	axis = common.Clamp(axis, 0, 2)
	return NiceRange(float64(b.minima[axis]), float64(b.maxima[axis]), desiredSteps, truncate)
}
