package session

// #region imports
import (
	"strings"
	"time"

	"github.com/jmadden/cadenza/internal/mixer"
	"github.com/jmadden/cadenza/internal/pattern"
)

// #endregion

// #region bounds

const (
	// TextWindow bounds the accumulated-text buffer to a trailing window so
	// repetition checks stay O(window).
	TextWindow = 200
	// ArrivalCap bounds the inter-delta timing ring.
	ArrivalCap = 20
	// HistoryCap bounds the recent pattern/axis ring.
	HistoryCap = 10
)

// #endregion bounds

// #region types

// Entry is one remembered chunk observation.
type Entry struct {
	Category pattern.Category
	Axes     map[mixer.Axis]bool
	At       time.Time
}

// State is the engine's bounded mutable memory of the current run. It has a
// single writer, the engine instance that owns it, and is never shared
// across sessions.
type State struct {
	window   string
	arrivals []time.Time
	history  []Entry
}

// New returns an empty session state.
func New() *State {
	return &State{}
}

// #endregion types

// #region observe

// Observe records one chunk: appends its text to the trailing window, its
// arrival time to the timing ring, and its category/axes to the history ring.
func (s *State) Observe(text string, at time.Time, cat pattern.Category, axes map[mixer.Axis]bool) {
	s.window += text
	if len(s.window) > TextWindow {
		s.window = s.window[len(s.window)-TextWindow:]
	}

	s.arrivals = append(s.arrivals, at)
	if len(s.arrivals) > ArrivalCap {
		s.arrivals = s.arrivals[len(s.arrivals)-ArrivalCap:]
	}

	s.history = append(s.history, Entry{Category: cat, Axes: axes, At: at})
	if len(s.history) > HistoryCap {
		s.history = s.history[len(s.history)-HistoryCap:]
	}
}

// #endregion observe

// #region reads

// Window returns the trailing accumulated text.
func (s *State) Window() string {
	return s.window
}

// Arrivals returns a copy of the recorded arrival timestamps, oldest first.
func (s *State) Arrivals() []time.Time {
	out := make([]time.Time, len(s.arrivals))
	copy(out, s.arrivals)
	return out
}

// History returns a copy of the recent pattern history, oldest first.
func (s *State) History() []Entry {
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}

// MeanGap returns the average spacing between recorded arrivals, or 0 when
// fewer than two chunks have been seen.
func (s *State) MeanGap() time.Duration {
	if len(s.arrivals) < 2 {
		return 0
	}
	span := s.arrivals[len(s.arrivals)-1].Sub(s.arrivals[0])
	return span / time.Duration(len(s.arrivals)-1)
}

// Streak returns how many consecutive trailing chunks share the current
// dominant category. Observational only: trigger decisions never read it,
// so replaying the same chunks always reproduces the same decisions.
func (s *State) Streak() int {
	if len(s.history) == 0 {
		return 0
	}
	last := s.history[len(s.history)-1].Category
	n := 0
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].Category != last {
			break
		}
		n++
	}
	return n
}

// Snapshot returns an independent copy of the state. Mutating the original
// afterwards never shows through the copy.
func (s *State) Snapshot() *State {
	return &State{
		window:   s.window,
		arrivals: append([]time.Time(nil), s.arrivals...),
		history:  append([]Entry(nil), s.history...),
	}
}

// Repeats counts occurrences of phrase within the trailing text window,
// case-insensitive. Empty phrases count zero.
func (s *State) Repeats(phrase string) int {
	p := strings.ToLower(strings.TrimSpace(phrase))
	if p == "" {
		return 0
	}
	return strings.Count(strings.ToLower(s.window), p)
}

// #endregion reads

// #region reset

// Reset clears every buffer. After Reset the state holds no entry predating
// the call.
func (s *State) Reset() {
	s.window = ""
	s.arrivals = nil
	s.history = nil
}

// #endregion reset
