package replay

import (
	"path/filepath"
	"testing"

	"github.com/jmadden/cadenza/internal/engine"
	"github.com/jmadden/cadenza/internal/mixer"
	"github.com/jmadden/cadenza/internal/recorder"
)

var testChunks = []string{
	"Well, maybe we should reconsider.",
	"First, because the set is finite, therefore it converges.",
	"Is this really necessary?",
	"In summary, the answer is clear.",
}

func TestRunRejectsBadSpeed(t *testing.T) {
	eng := engine.New(nil, nil)
	defer eng.Close()

	if _, err := Run(eng, testChunks, 0); err == nil {
		t.Fatal("speed 0 must be rejected")
	}
	if _, err := Run(eng, testChunks, -2); err == nil {
		t.Fatal("negative speed must be rejected")
	}
}

func TestRunMatchesLiveTrace(t *testing.T) {
	live := engine.New(nil, nil)
	defer live.Close()
	live.Start()
	for _, c := range testChunks {
		live.AddDelta(c)
	}
	liveTrace := live.Trace()

	replayed := engine.New(nil, nil)
	defer replayed.Close()
	got, err := Run(replayed, testChunks, 1000)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	if len(got) != len(liveTrace) {
		t.Fatalf("trace lengths diverged: live %d, replay %d", len(liveTrace), len(got))
	}
	for i := range got {
		if got[i] != liveTrace[i] {
			t.Fatalf("decision %d diverged: live %+v, replay %+v", i, liveTrace[i], got[i])
		}
	}
}

func TestRunIndependentOfSpeed(t *testing.T) {
	first := engine.New(nil, nil)
	defer first.Close()
	fast, err := Run(first, testChunks, 10000)
	if err != nil {
		t.Fatalf("fast replay failed: %v", err)
	}

	second := engine.New(nil, nil)
	defer second.Close()
	slow, err := Run(second, testChunks, 100)
	if err != nil {
		t.Fatalf("slow replay failed: %v", err)
	}

	if len(fast) != len(slow) {
		t.Fatalf("trace lengths diverged across speeds: %d vs %d", len(fast), len(slow))
	}
	for i := range fast {
		if fast[i] != slow[i] {
			t.Fatalf("decision %d diverged across speeds: %+v vs %+v", i, fast[i], slow[i])
		}
	}
}

func TestRunMatchesRecordedSoloSession(t *testing.T) {
	store, err := recorder.NewStore(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	// Record a live run under a reasoning solo. The solo silences the mid
	// triads of the certainty chunks, so a replay at default settings would
	// produce extra decisions.
	settings := mixer.DefaultSettings()
	s := settings[mixer.AxisReasoning]
	s.Solo = true
	settings[mixer.AxisReasoning] = s

	live := engine.New(nil, store)
	live.UpdateMixerControls(settings)
	live.Start()
	for _, c := range testChunks {
		live.AddDelta(c)
	}
	sessionID := live.SessionID()
	live.Close()

	stored, err := store.Settings(sessionID)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	recorded, err := store.Decisions(sessionID)
	if err != nil {
		t.Fatalf("load decisions: %v", err)
	}
	chunks, err := store.Chunks(sessionID)
	if err != nil {
		t.Fatalf("load chunks: %v", err)
	}

	replayed := engine.New(nil, nil)
	defer replayed.Close()
	replayed.UpdateMixerControls(stored)
	got, err := Run(replayed, chunks, 1000)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	expected := make([]ExpectedDecision, len(recorded))
	for i, r := range recorded {
		expected[i] = ExpectedDecision{Seq: r.Seq, Layer: string(r.Layer), Trigger: string(r.Trigger)}
	}
	if divs := Compare(expected, got); len(divs) != 0 {
		t.Fatalf("replay under recorded settings must match, diverged: %+v", divs)
	}
}

func TestCompareFlagsDivergence(t *testing.T) {
	expected := []ExpectedDecision{
		{Seq: 0, Layer: "mid", Trigger: "plain_note"},
		{Seq: 1, Layer: "bass", Trigger: "bass_sustain"},
	}
	got := []engine.TriggerRecord{
		{Seq: 0, Layer: "mid", Trigger: "plain_note"},
		{Seq: 1, Layer: "pad", Trigger: "consonant_chord"},
	}

	divs := Compare(expected, got)
	if len(divs) != 1 {
		t.Fatalf("expected 1 divergence, got %d", len(divs))
	}
	if divs[0].Index != 1 {
		t.Fatalf("divergence at index %d, want 1", divs[0].Index)
	}
}

func TestCompareLengthMismatch(t *testing.T) {
	expected := []ExpectedDecision{{Seq: 0, Layer: "mid", Trigger: "plain_note"}}
	divs := Compare(expected, nil)
	if len(divs) != 1 {
		t.Fatalf("missing decision must diverge, got %d", len(divs))
	}
	if divs[0].Got != "(none)" {
		t.Fatalf("unexpected got label %q", divs[0].Got)
	}
}

func TestCompareIdentical(t *testing.T) {
	got := []engine.TriggerRecord{
		{Seq: 0, Layer: "bass", Trigger: "bass_sustain"},
		{Seq: 0, Layer: "mid", Trigger: "plain_note"},
	}
	expected := []ExpectedDecision{
		{Seq: 0, Layer: "bass", Trigger: "bass_sustain"},
		{Seq: 0, Layer: "mid", Trigger: "plain_note"},
	}
	if divs := Compare(expected, got); len(divs) != 0 {
		t.Fatalf("identical traces must not diverge: %+v", divs)
	}
}
