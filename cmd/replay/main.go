package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jmadden/cadenza/internal/engine"
	"github.com/jmadden/cadenza/internal/recorder"
	"github.com/jmadden/cadenza/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to session SQLite file (DB mode)")
	sessionID := flag.String("session", "", "session ID to replay (DB mode, default: most recent)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	speed := flag.Float64("speed", 8.0, "replay speed multiplier")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/session.db [--session id]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath, *speed)
	} else {
		exitCode = runDBMode(*dbPath, *sessionID, *speed)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string, speed float64) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	eng := engine.New(nil, nil)
	defer eng.Close()
	eng.UpdateMixerControls(f.MixerSettings())

	got, err := replay.Run(eng, f.Chunks, speed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	return printComparison(f.Expected, got)
}

// #endregion fixture-mode

// #region db-mode

func runDBMode(dbPath, sessionID string, speed float64) int {
	store, err := recorder.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	if sessionID == "" {
		sessions, err := store.Sessions(1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list sessions: %v\n", err)
			return 2
		}
		if len(sessions) == 0 {
			fmt.Fprintln(os.Stderr, "no sessions found")
			return 2
		}
		sessionID = sessions[0].SessionID
	}

	chunks, err := store.Chunks(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load chunks: %v\n", err)
		return 2
	}
	if len(chunks) == 0 {
		fmt.Fprintf(os.Stderr, "no chunks recorded for session %s\n", sessionID)
		return 2
	}

	recorded, err := store.Decisions(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load decisions: %v\n", err)
		return 2
	}

	settings, err := store.Settings(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load settings: %v\n", err)
		return 2
	}

	eng := engine.New(nil, nil)
	defer eng.Close()
	eng.UpdateMixerControls(settings)

	got, err := replay.Run(eng, chunks, speed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	expected := make([]replay.ExpectedDecision, len(recorded))
	for i, r := range recorded {
		expected[i] = replay.ExpectedDecision{
			Seq:     r.Seq,
			Layer:   string(r.Layer),
			Trigger: string(r.Trigger),
		}
	}
	return printComparison(expected, got)
}

// #endregion db-mode

// #region output

// printComparison outputs a comparison table and returns the exit code.
func printComparison(expected []replay.ExpectedDecision, got []engine.TriggerRecord) int {
	divs := replay.Compare(expected, got)
	total := len(expected)
	if len(got) > total {
		total = len(got)
	}

	fmt.Printf("%-6s| %-32s| %-32s| %s\n", "Idx", "Expected", "Replayed", "Match")
	fmt.Printf("%-6s+%-33s+%-33s+%s\n", "------", "---------------------------------",
		"---------------------------------", "------")

	divIdx := map[int]replay.Divergence{}
	for _, d := range divs {
		divIdx[d.Index] = d
	}
	for i := 0; i < total; i++ {
		if d, ok := divIdx[i]; ok {
			fmt.Printf("%-6d| %-32s| %-32s| DIFF\n", i, d.Expected, d.Got)
			continue
		}
		var label string
		if i < len(got) {
			label = fmt.Sprintf("seq=%d %s/%s", got[i].Seq, got[i].Layer, got[i].Trigger)
		}
		fmt.Printf("%-6d| %-32s| %-32s| OK\n", i, label, label)
	}

	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n", total, total-len(divs), len(divs))
	if len(divs) > 0 {
		return 1
	}
	return 0
}

// #endregion output
