package synth

// #region imports
import (
	"math"
	"time"

	"github.com/jmadden/cadenza/internal/mixer"
	"github.com/jmadden/cadenza/internal/pattern"
)

// #endregion

// #region tuning

const (
	bassDuration    = 1200 * time.Millisecond
	noteDuration    = 350 * time.Millisecond
	shimmerDuration = 500 * time.Millisecond
	padDuration     = 2500 * time.Millisecond
	noiseDuration   = 150 * time.Millisecond

	runSpacing   = 30 * time.Millisecond
	arpSpacing   = 40 * time.Millisecond
	triadSpacing = 20 * time.Millisecond
	burstSpacing = 25 * time.Millisecond

	// Later notes in a sequence are quieter by this per-step fraction.
	sequenceDecay = 0.12
)

// Noise filter cutoffs per texture trigger, bright to dark.
const (
	cutoffRevision    = 1800.0
	cutoffNegation    = 900.0
	cutoffUncertainty = 450.0
)

var (
	runIntervals   = []float64{0, -2, -4, -5, -7}
	arpIntervals   = []float64{0, 2, 4, 7, 9}
	triadIntervals = []float64{0, 4, 7}
	burstIntervals = []float64{0, 5, 7, 12}

	dissonantOffsets = []float64{0, 1, 6}
	consonantOffsets = []float64{0, 4, 7}
)

// #endregion tuning

// #region plan

// Plan evaluates all five layer trigger rules for one chunk and returns the
// plans of every layer that fires. Layers are independent and deliberately
// overlapping: zero to five plans may come back for a single chunk. A layer
// whose governing-axis gain is 0 is skipped entirely: nothing is planned,
// scheduled, or traced for it.
//
// Plan is pure: same (flags, intensity, basePitch, gains) always produces the
// same plans, which is what makes replay decisions reproducible.
func Plan(f pattern.Flags, intensity, basePitch float64, gains map[mixer.Axis]float64) []LayerPlan {
	plans := make([]LayerPlan, 0, 5)
	if p := planBass(f, intensity, basePitch, gains); p != nil {
		plans = append(plans, *p)
	}
	if p := planMid(f, intensity, basePitch, gains); p != nil {
		plans = append(plans, *p)
	}
	if p := planHigh(f, intensity, basePitch, gains); p != nil {
		plans = append(plans, *p)
	}
	if p := planPad(f, intensity, basePitch, gains); p != nil {
		plans = append(plans, *p)
	}
	if p := planTexture(f, intensity, basePitch, gains); p != nil {
		plans = append(plans, *p)
	}
	return plans
}

// #endregion plan

// #region bass

// planBass: causation ∨ enumeration ∨ resolution fires a single sustained
// note two octaves below base pitch, louder with intensity.
func planBass(f pattern.Flags, intensity, basePitch float64, gains map[mixer.Axis]float64) *LayerPlan {
	var axis mixer.Axis
	switch {
	case f.Causation, f.Enumeration:
		axis = mixer.AxisReasoning
	case f.Resolution:
		axis = mixer.AxisResolution
	default:
		return nil
	}
	gain := gains[axis]
	if gain == 0 {
		return nil
	}
	vol := (0.35 + 0.45*intensity) * gain
	return &LayerPlan{
		Layer:   LayerBass,
		Trigger: TriggerBassSustain,
		Axis:    axis,
		Notes: []Note{{
			Layer:    LayerBass,
			Trigger:  TriggerBassSustain,
			Kind:     KindTone,
			Freq:     basePitch / 4,
			Volume:   vol,
			Duration: bassDuration,
		}},
	}
}

// #endregion bass

// #region mid

// planMid always evaluates: revision beats question beats certainty beats the
// plain fallback note. The plain note has no governing axis and is never
// silenced by the mixer.
func planMid(f pattern.Flags, intensity, basePitch float64, gains map[mixer.Axis]float64) *LayerPlan {
	base := 0.30 + 0.40*intensity

	switch {
	case f.Revision:
		gain := gains[mixer.AxisRevision]
		if gain == 0 {
			return nil
		}
		return sequencePlan(LayerMid, TriggerDescendingRun, mixer.AxisRevision,
			basePitch, runIntervals, runSpacing, base*gain)
	case f.Question:
		gain := gains[mixer.AxisRevision]
		if gain == 0 {
			return nil
		}
		return sequencePlan(LayerMid, TriggerAscendingArp, mixer.AxisRevision,
			basePitch, arpIntervals, arpSpacing, base*gain)
	case f.Certainty:
		gain := gains[mixer.AxisCertainty]
		if gain == 0 {
			return nil
		}
		return sequencePlan(LayerMid, TriggerCertaintyTriad, mixer.AxisCertainty,
			basePitch, triadIntervals, triadSpacing, base*gain)
	default:
		return &LayerPlan{
			Layer:   LayerMid,
			Trigger: TriggerPlainNote,
			Notes: []Note{{
				Layer:    LayerMid,
				Trigger:  TriggerPlainNote,
				Kind:     KindTone,
				Freq:     basePitch,
				Volume:   base,
				Duration: noteDuration,
			}},
		}
	}
}

// #endregion mid

// #region high

// planHigh: emphasis ∨ comparison ∨ hedging. Emphasis gets the 4-note burst
// at 2.5× base; the other two get a single shimmer note at 2× base.
func planHigh(f pattern.Flags, intensity, basePitch float64, gains map[mixer.Axis]float64) *LayerPlan {
	base := 0.22 + 0.33*intensity

	switch {
	case f.Emphasis:
		gain := gains[mixer.AxisResolution]
		if gain == 0 {
			return nil
		}
		return sequencePlan(LayerHigh, TriggerEmphasisBurst, mixer.AxisResolution,
			basePitch*2.5, burstIntervals, burstSpacing, base*gain)
	case f.Comparison:
		return shimmerPlan(mixer.AxisReasoning, basePitch, base, gains)
	case f.Hedging:
		return shimmerPlan(mixer.AxisCertainty, basePitch, base, gains)
	default:
		return nil
	}
}

func shimmerPlan(axis mixer.Axis, basePitch, base float64, gains map[mixer.Axis]float64) *LayerPlan {
	gain := gains[axis]
	if gain == 0 {
		return nil
	}
	return &LayerPlan{
		Layer:   LayerHigh,
		Trigger: TriggerShimmer,
		Axis:    axis,
		Notes: []Note{{
			Layer:    LayerHigh,
			Trigger:  TriggerShimmer,
			Kind:     KindTone,
			Freq:     basePitch * 2,
			Volume:   base * gain,
			Duration: shimmerDuration,
		}},
	}
}

// #endregion high

// #region pad

// planPad: uncertainty ∨ resolution ∨ causation fires a sustained 3-note
// chord, dissonant when uncertainty is present and consonant otherwise.
func planPad(f pattern.Flags, intensity, basePitch float64, gains map[mixer.Axis]float64) *LayerPlan {
	var axis mixer.Axis
	switch {
	case f.Uncertainty:
		axis = mixer.AxisCertainty
	case f.Resolution:
		axis = mixer.AxisResolution
	case f.Causation:
		axis = mixer.AxisReasoning
	default:
		return nil
	}
	gain := gains[axis]
	if gain == 0 {
		return nil
	}

	trigger := TriggerConsonantChord
	offsets := consonantOffsets
	if f.Uncertainty {
		trigger = TriggerDissonantChord
		offsets = dissonantOffsets
	}
	chord := make([]float64, len(offsets))
	for i, o := range offsets {
		chord[i] = semitones(basePitch, o)
	}
	return &LayerPlan{
		Layer:   LayerPad,
		Trigger: trigger,
		Axis:    axis,
		Notes: []Note{{
			Layer:     LayerPad,
			Trigger:   trigger,
			Kind:      KindChord,
			Freq:      basePitch,
			Chord:     chord,
			Volume:    (0.18 + 0.27*intensity) * gain,
			Duration:  padDuration,
			Sustained: true,
		}},
	}
}

// #endregion pad

// #region texture

// planTexture: uncertainty ∨ revision ∨ negation fires a short filtered noise
// burst; the cutoff identifies which trigger fired.
func planTexture(f pattern.Flags, intensity, basePitch float64, gains map[mixer.Axis]float64) *LayerPlan {
	var (
		axis    mixer.Axis
		trigger Trigger
		cutoff  float64
	)
	switch {
	case f.Revision:
		axis, trigger, cutoff = mixer.AxisRevision, TriggerNoiseRevision, cutoffRevision
	case f.Negation:
		axis, trigger, cutoff = mixer.AxisRevision, TriggerNoiseNegation, cutoffNegation
	case f.Uncertainty:
		axis, trigger, cutoff = mixer.AxisCertainty, TriggerNoiseUncertainty, cutoffUncertainty
	default:
		return nil
	}
	gain := gains[axis]
	if gain == 0 {
		return nil
	}
	return &LayerPlan{
		Layer:   LayerTexture,
		Trigger: trigger,
		Axis:    axis,
		Notes: []Note{{
			Layer:     LayerTexture,
			Trigger:   trigger,
			Kind:      KindNoise,
			Volume:    (0.12 + 0.20*intensity) * gain,
			Duration:  noiseDuration,
			Cutoff:    cutoff,
			Sustained: true,
		}},
	}
}

// #endregion texture

// #region helpers

// sequencePlan lays out a multi-note sequence with fixed spacing. Delays are
// relative to chunk processing time; note i is quieter by sequenceDecay·i.
func sequencePlan(layer Layer, trigger Trigger, axis mixer.Axis,
	root float64, intervals []float64, spacing time.Duration, volume float64) *LayerPlan {

	notes := make([]Note, len(intervals))
	for i, iv := range intervals {
		notes[i] = Note{
			Layer:    layer,
			Trigger:  trigger,
			Kind:     KindTone,
			Delay:    time.Duration(i) * spacing,
			Freq:     semitones(root, iv),
			Volume:   volume * (1 - sequenceDecay*float64(i)),
			Duration: noteDuration,
		}
	}
	return &LayerPlan{Layer: layer, Trigger: trigger, Axis: axis, Notes: notes}
}

// semitones shifts a frequency by n semitones.
func semitones(freq, n float64) float64 {
	return freq * math.Pow(2, n/12.0)
}

// #endregion helpers
