package contour

// #region imports
import (
	"github.com/jmadden/cadenza/internal/pattern"
)

// #endregion

// #region ladder

// intensityLadder is the fixed priority ladder mapping flags to a base
// intensity. Evaluated top-down, first match wins: revision/backtracking is
// the strongest perceptual signal and must dominate everything else, and
// causation is checked ahead of enumeration so reasoning chains score as
// connective tissue rather than list structure. This ordering is intentionally
// asymmetric; do not reorder it.
var intensityLadder = []struct {
	match func(pattern.Flags) bool
	value float64
}{
	{func(f pattern.Flags) bool { return f.Revision }, 0.90},
	{func(f pattern.Flags) bool { return f.Resolution }, 0.85},
	{func(f pattern.Flags) bool { return f.Certainty }, 0.80},
	{func(f pattern.Flags) bool { return f.Uncertainty || f.Hedging }, 0.70},
	{func(f pattern.Flags) bool { return f.Causation }, 0.60},
	{func(f pattern.Flags) bool { return f.Enumeration }, 0.65},
	{func(f pattern.Flags) bool { return f.Question }, 0.60},
}

// defaultIntensity applies when no ladder rung matches.
const defaultIntensity = 0.50

// emphasisBonus is added after the base value is chosen, capped at 1.0.
const emphasisBonus = 0.15

// #endregion ladder

// #region intensity

// Intensity maps a flag set to a scalar in [0, 1].
func Intensity(f pattern.Flags) float64 {
	v := defaultIntensity
	for _, rung := range intensityLadder {
		if rung.match(f) {
			v = rung.value
			break
		}
	}
	if f.Emphasis {
		v += emphasisBonus
	}
	return clamp(v)
}

// clamp restricts v to [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion intensity
