package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jmadden/cadenza/internal/recorder"
	"github.com/jmadden/cadenza/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to session SQLite file")
	sessionID := flag.String("session", "", "session ID to export (default: most recent)")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/db --out path/to/fixture.json [--session id]")
		os.Exit(2)
	}

	if err := run(*dbPath, *sessionID, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath, sessionID, outPath string) error {
	store, err := recorder.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	if sessionID == "" {
		sessions, err := store.Sessions(1)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			return fmt.Errorf("no sessions found in %s", dbPath)
		}
		sessionID = sessions[0].SessionID
	}

	chunks, err := store.Chunks(sessionID)
	if err != nil {
		return fmt.Errorf("load chunks: %w", err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks recorded for session %s", sessionID)
	}

	decisions, err := store.Decisions(sessionID)
	if err != nil {
		return fmt.Errorf("load decisions: %w", err)
	}

	settings, err := store.Settings(sessionID)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	fixtureSettings := make(map[string]replay.FixtureSetting, len(settings))
	for axis, s := range settings {
		fixtureSettings[string(axis)] = replay.FixtureSetting{
			Muted:  s.Muted,
			Solo:   s.Solo,
			Volume: s.Volume,
		}
	}

	expected := make([]replay.ExpectedDecision, len(decisions))
	for i, d := range decisions {
		expected[i] = replay.ExpectedDecision{
			Seq:     d.Seq,
			Layer:   string(d.Layer),
			Trigger: string(d.Trigger),
		}
	}

	fixture := replay.Fixture{
		Description: fmt.Sprintf("Session export: %d chunks, %d decisions from %s", len(chunks), len(decisions), sessionID),
		Settings:    fixtureSettings,
		Chunks:      chunks,
		Expected:    expected,
	}

	return writeFixture(fixture, outPath)
}

func writeFixture(fixture replay.Fixture, outPath string) error {
	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("Wrote fixture to %s (%d bytes, %d chunks)\n", outPath, len(data), len(fixture.Chunks))
	return nil
}

// #endregion export
