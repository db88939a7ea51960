package synth

// #region imports
import (
	"time"

	"github.com/jmadden/cadenza/internal/mixer"
)

// #endregion

// #region layer

// Layer identifies one of the five independently triggered sound registers.
type Layer string

const (
	LayerBass    Layer = "bass"
	LayerMid     Layer = "mid"
	LayerHigh    Layer = "high"
	LayerPad     Layer = "pad"
	LayerTexture Layer = "texture"
)

// #endregion layer

// #region trigger

// Trigger names the behavior a layer chose for a chunk. Trace and replay
// comparison operate on (layer, trigger) pairs, so these names are stable.
type Trigger string

const (
	TriggerBassSustain      Trigger = "bass_sustain"
	TriggerDescendingRun    Trigger = "descending_run"
	TriggerAscendingArp     Trigger = "ascending_arpeggio"
	TriggerCertaintyTriad   Trigger = "certainty_triad"
	TriggerPlainNote        Trigger = "plain_note"
	TriggerEmphasisBurst    Trigger = "emphasis_burst"
	TriggerShimmer          Trigger = "shimmer"
	TriggerDissonantChord   Trigger = "dissonant_chord"
	TriggerConsonantChord   Trigger = "consonant_chord"
	TriggerNoiseRevision    Trigger = "noise_revision"
	TriggerNoiseNegation    Trigger = "noise_negation"
	TriggerNoiseUncertainty Trigger = "noise_uncertainty"
	TriggerFlourish         Trigger = "flourish"
)

// #endregion trigger

// #region note

// Kind selects how the audio backend renders a note.
type Kind string

const (
	KindTone  Kind = "tone"
	KindChord Kind = "chord"
	KindNoise Kind = "noise"
)

// Note is one schedulable sound event. Delay is relative to the moment the
// chunk was processed, not cumulative across the sequence.
type Note struct {
	Layer    Layer
	Trigger  Trigger
	Kind     Kind
	Delay    time.Duration
	Freq     float64   // tone fundamental; unused for noise
	Chord    []float64 // chord voices; KindChord only
	Volume   float64   // effective volume: base × axis gain × sequence decay
	Duration time.Duration
	Cutoff   float64 // lowpass cutoff in Hz; KindNoise only
	// Sustained marks continuous sources that Stop/Reset must silence.
	Sustained bool
}

// LayerPlan is everything one layer decided for one chunk.
type LayerPlan struct {
	Layer   Layer
	Trigger Trigger
	Axis    mixer.Axis // governing axis; empty for the plain mid note
	Notes   []Note
}

// #endregion note
