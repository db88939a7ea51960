package engine

// #region imports
import (
	"time"

	"github.com/jmadden/cadenza/internal/mixer"
	"github.com/jmadden/cadenza/internal/synth"
)

// #endregion

// #region trigger-record

// TriggerRecord is one layer decision for one chunk, the unit of replay
// equivalence. Two runs over the same chunks with the same mixer settings
// must produce identical ordered TriggerRecord lists; wall-clock timing may
// differ.
type TriggerRecord struct {
	Seq       int
	Layer     synth.Layer
	Trigger   synth.Trigger
	Intensity float64
	Frequency float64
}

// #endregion trigger-record

// #region sink

// Sink receives the engine's bookkeeping as it happens. Implementations must
// be cheap; errors are logged by the engine and never interrupt the audio
// path. BeginSession carries the mixer settings in force at session start so
// a recorded run can be re-driven under the same gains.
type Sink interface {
	BeginSession(sessionID string, startedAt time.Time, settings map[mixer.Axis]mixer.Setting) error
	RecordChunk(sessionID string, seq int, text string, at time.Time) error
	RecordDecision(sessionID string, rec TriggerRecord) error
}

// #endregion sink
