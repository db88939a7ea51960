// Package replay re-runs recorded or fixture chunk streams through an engine
// and compares the resulting trigger trace against expectations. The pipeline
// is deterministic in its decisions, so two runs over the same chunks with
// the same mixer settings must diverge nowhere.
package replay

import (
	"fmt"
	"log"
	"time"

	"github.com/jmadden/cadenza/internal/engine"
)

// #region config

// DefaultBaseDelay is the inter-chunk pause at speed 1.0.
const DefaultBaseDelay = 250 * time.Millisecond

// #endregion config

// #region run

// Run feeds chunks through the engine at the given speed multiplier and
// returns the trigger trace. The engine is reset first so the trace covers
// exactly this run; a terminal flourish is requested after the last chunk.
func Run(eng *engine.Engine, chunks []string, speed float64) ([]engine.TriggerRecord, error) {
	if speed <= 0 {
		return nil, fmt.Errorf("speed must be positive, got %v", speed)
	}
	delay := time.Duration(float64(DefaultBaseDelay) / speed)

	eng.Reset()
	eng.Start()
	for i, chunk := range chunks {
		if i > 0 {
			time.Sleep(delay)
		}
		eng.AddDelta(chunk)
	}
	eng.StartFlourish()

	trace := eng.Trace()
	log.Printf("[REPLAY] %d chunks replayed at %gx, %d decisions", len(chunks), speed, len(trace))
	return trace, nil
}

// #endregion run

// #region compare

// Divergence is one mismatch between an expected decision and what a run
// actually produced.
type Divergence struct {
	Index    int
	Expected string
	Got      string
}

// Compare checks an actual trace against expected decisions, position by
// position. Intensity and frequency are informational; equivalence is over
// (seq, layer, trigger).
func Compare(expected []ExpectedDecision, got []engine.TriggerRecord) []Divergence {
	var divs []Divergence
	n := len(expected)
	if len(got) > n {
		n = len(got)
	}
	for i := 0; i < n; i++ {
		var want, have string
		if i < len(expected) {
			e := expected[i]
			want = fmt.Sprintf("seq=%d %s/%s", e.Seq, e.Layer, e.Trigger)
		} else {
			want = "(none)"
		}
		if i < len(got) {
			g := got[i]
			have = fmt.Sprintf("seq=%d %s/%s", g.Seq, g.Layer, g.Trigger)
		} else {
			have = "(none)"
		}
		if want != have {
			divs = append(divs, Divergence{Index: i, Expected: want, Got: have})
		}
	}
	return divs
}

// #endregion compare
