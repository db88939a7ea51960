package synth

// #region imports
import "time"

// #endregion

// #region flourish

// The concluding scale is C major: root on bass, major third on mid, perfect
// fifth on high, each an octave apart so the chord opens upward.
const (
	flourishRoot  = 130.81 // C3
	flourishThird = 329.63 // E4
	flourishFifth = 783.99 // G5

	flourishStagger  = 120 * time.Millisecond
	flourishDuration = 1800 * time.Millisecond
)

// PlanFlourish returns the terminal resolving chord, staggered across the
// bass, mid, and high layers. It has no governing cognitive axis and is not
// subject to mixer gains. Each call produces a fresh flourish; guarding
// against double invocation is the caller's job.
func PlanFlourish() []Note {
	voices := []struct {
		layer  Layer
		freq   float64
		volume float64
	}{
		{LayerBass, flourishRoot, 0.50},
		{LayerMid, flourishThird, 0.45},
		{LayerHigh, flourishFifth, 0.40},
	}

	notes := make([]Note, len(voices))
	for i, v := range voices {
		notes[i] = Note{
			Layer:    v.layer,
			Trigger:  TriggerFlourish,
			Kind:     KindTone,
			Delay:    time.Duration(i) * flourishStagger,
			Freq:     v.freq,
			Volume:   v.volume,
			Duration: flourishDuration,
		}
	}
	return notes
}

// #endregion flourish
