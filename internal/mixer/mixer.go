package mixer

// #region imports
import (
	"github.com/jmadden/cadenza/internal/pattern"
)

// #endregion

// #region gains

// Gains resolves the per-axis gain multipliers from the current settings.
// Solo is evaluated first: when any axis is soloed, every non-soloed axis gets
// gain 0 and a soloed axis's own mute flag is irrelevant. Otherwise a muted
// axis gets 0 and an unmuted one gets volume/100. Callers must resolve gains
// on every trigger; settings can change between chunks.
func Gains(settings map[Axis]Setting) map[Axis]float64 {
	anySolo := false
	for _, s := range settings {
		if s.Solo {
			anySolo = true
			break
		}
	}

	gains := make(map[Axis]float64, len(Axes))
	for _, a := range Axes {
		s := settings[a]
		switch {
		case anySolo && !s.Solo:
			gains[a] = 0
		case !anySolo && s.Muted:
			gains[a] = 0
		default:
			gains[a] = volumeGain(s.Volume)
		}
	}
	return gains
}

// volumeGain maps a 0–100 volume to a [0,1] gain, clamping out-of-range input.
func volumeGain(volume int) float64 {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 1
	}
	return float64(volume) / 100.0
}

// #endregion gains

// #region active-axes

// ActiveAxes reports which axes a flag set touches. An axis is active iff any
// of its member flags is true. Output-only: the visualizer reads this, the
// audio path never does.
//
// The groupings are a compatibility contract: hedging sits under certainty
// and comparison under reasoning. Listeners have learned what each axis
// control silences, so do not regroup without confirming listener semantics.
func ActiveAxes(f pattern.Flags) map[Axis]bool {
	return map[Axis]bool{
		AxisCertainty:  f.Uncertainty || f.Certainty || f.Hedging,
		AxisReasoning:  f.Causation || f.Enumeration || f.Comparison,
		AxisRevision:   f.Revision || f.Negation || f.Question,
		AxisResolution: f.Resolution || f.Emphasis,
	}
}

// #endregion active-axes
