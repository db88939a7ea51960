// Package engine coordinates the sonification pipeline: pattern detection,
// intensity/pitch derivation, mixer gain resolution, layer planning, and
// deferred playback, around one bounded session state.
package engine

// #region imports
import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmadden/cadenza/internal/audio"
	"github.com/jmadden/cadenza/internal/contour"
	"github.com/jmadden/cadenza/internal/mixer"
	"github.com/jmadden/cadenza/internal/pattern"
	"github.com/jmadden/cadenza/internal/sched"
	"github.com/jmadden/cadenza/internal/session"
	"github.com/jmadden/cadenza/internal/synth"
)

// #endregion

// #region engine-struct

// Engine is the single-writer owner of one session. All exported methods are
// safe for concurrent use, but the engine itself never runs work in parallel:
// AddDelta computes decisions synchronously and defers only the timed sound
// events, so a burst of rapid deltas never stalls the caller.
type Engine struct {
	mu        sync.Mutex
	out       audio.Output // nil until an audio backend is attached
	sink      Sink         // nil when nothing records the run
	queue     *sched.Queue
	state     *session.State
	settings  map[mixer.Axis]mixer.Setting
	onAxes    func(map[mixer.Axis]bool)
	active    bool
	sessionID string
	seq       int
	trace     []TriggerRecord
}

// New wires an engine around an optional audio backend and an optional
// decision sink. Either may be nil: a nil backend makes every trigger a
// silent no-op, a nil sink records nothing.
func New(out audio.Output, sink Sink) *Engine {
	return &Engine{
		out:      out,
		sink:     sink,
		queue:    sched.New(),
		state:    session.New(),
		settings: mixer.DefaultSettings(),
	}
}

// #endregion engine-struct

// #region lifecycle

// Start arms the engine to accept deltas and opens a fresh session ID.
// Callers wanting a clean timing/history window must Reset first.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active {
		return
	}
	e.active = true
	e.sessionID = uuid.New().String()
	if e.sink != nil {
		settings := make(map[mixer.Axis]mixer.Setting, len(e.settings))
		for a, s := range e.settings {
			settings[a] = s
		}
		if err := e.sink.BeginSession(e.sessionID, time.Now().UTC(), settings); err != nil {
			log.Printf("[ENGINE] begin session record failed: %v", err)
		}
	}
	log.Printf("[ENGINE] session %s started", e.sessionID)
}

// Stop disarms the engine and silences continuous sources. Already-scheduled
// short one-shot notes finish naturally; session state keeps its last-known
// contents.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.active = false
	e.mu.Unlock()

	e.queue.CancelContinuous()
	if e.out != nil {
		e.out.Silence()
	}
}

// Reset stops the engine and clears all session memory: text window, timing
// ring, pattern history, trace, and sequence counter.
func (e *Engine) Reset() {
	e.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Reset()
	e.trace = nil
	e.seq = 0
	e.sessionID = ""
}

// Close releases the deferred-action queue and the audio backend.
func (e *Engine) Close() {
	e.queue.Close()
	if e.out != nil {
		e.out.Close()
	}
}

// #endregion lifecycle

// #region add-delta

// AddDelta runs the full pipeline for one chunk. It returns promptly: all
// timed sound events are deferred to the queue. An inactive engine performs
// no work at all: no sound and no bookkeeping.
func (e *Engine) AddDelta(text string) {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return
	}

	now := time.Now()
	flags := pattern.Detect(text)
	intensity := contour.Intensity(flags)
	basePitch := contour.Pitch(intensity, text)
	// Gains are resolved per trigger, never cached: settings can change
	// between chunks.
	gains := mixer.Gains(e.settings)
	plans := synth.Plan(flags, intensity, basePitch, gains)
	axes := mixer.ActiveAxes(flags)

	seq := e.seq
	e.seq++
	e.state.Observe(text, now, pattern.Dominant(flags), axes)

	if e.sink != nil {
		if err := e.sink.RecordChunk(e.sessionID, seq, text, now); err != nil {
			log.Printf("[ENGINE] chunk record failed: %v", err)
		}
	}
	for _, p := range plans {
		rec := TriggerRecord{
			Seq:       seq,
			Layer:     p.Layer,
			Trigger:   p.Trigger,
			Intensity: intensity,
			Frequency: basePitch,
		}
		e.trace = append(e.trace, rec)
		if e.sink != nil {
			if err := e.sink.RecordDecision(e.sessionID, rec); err != nil {
				log.Printf("[ENGINE] decision record failed: %v", err)
			}
		}
	}

	e.schedule(plans)

	observer := e.onAxes
	streak := e.state.Streak()
	e.mu.Unlock()

	log.Printf("[ENGINE] seq=%d cat=%s intensity=%.2f pitch=%.1f layers=%d streak=%d",
		seq, pattern.Dominant(flags), intensity, basePitch, len(plans), streak)

	if observer != nil {
		observer(axes)
	}
}

// schedule hands a chunk's notes to the backend, deferring delayed ones.
// Skipped entirely when no backend is attached: triggers are silent no-ops
// but the chunk's bookkeeping above has already happened.
func (e *Engine) schedule(plans []synth.LayerPlan) {
	if e.out == nil {
		return
	}
	for _, p := range plans {
		for _, n := range p.Notes {
			if n.Delay <= 0 {
				e.out.Play(n)
				continue
			}
			note := n
			e.queue.After(note.Delay, note.Sustained, func() {
				e.out.Play(note)
			})
		}
	}
}

// #endregion add-delta

// #region flourish

// StartFlourish plays the terminal resolving chord once. Callers signal
// end-of-stream exactly once per session; a second call simply overlaps a
// second flourish.
func (e *Engine) StartFlourish() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active || e.out == nil {
		return
	}
	for _, n := range synth.PlanFlourish() {
		if n.Delay <= 0 {
			e.out.Play(n)
			continue
		}
		note := n
		e.queue.After(note.Delay, false, func() {
			e.out.Play(note)
		})
	}
	log.Printf("[ENGINE] flourish for session %s", e.sessionID)
}

// #endregion flourish

// #region controls

// UpdateMixerControls replaces the per-axis mixer settings. Takes effect on
// the next triggered event.
func (e *Engine) UpdateMixerControls(settings map[mixer.Axis]mixer.Setting) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := make(map[mixer.Axis]mixer.Setting, len(settings))
	for a, s := range settings {
		next[a] = s
	}
	e.settings = next
}

// OnActiveAxesChange registers the observer called after each chunk with the
// axes that chunk touched. Output-only: the callback never feeds back into
// audio decisions.
func (e *Engine) OnActiveAxesChange(fn func(map[mixer.Axis]bool)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onAxes = fn
}

// #endregion controls

// #region reads

// Trace returns the ordered layer decisions of the current session.
func (e *Engine) Trace() []TriggerRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]TriggerRecord, len(e.trace))
	copy(out, e.trace)
	return out
}

// SessionID returns the current session identifier, empty when reset.
func (e *Engine) SessionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionID
}

// State returns a point-in-time copy of the bounded session memory.
// Observers read the copy; the live state stays single-writer inside the
// engine.
func (e *Engine) State() *session.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot()
}

// #endregion reads
