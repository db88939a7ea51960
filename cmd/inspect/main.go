package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jmadden/cadenza/internal/engine"
	"github.com/jmadden/cadenza/internal/recorder"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to session SQLite file")
	last := flag.Int("last", 20, "show N most recent sessions")
	sessionID := flag.String("session", "", "show single session detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/session.db [--last N] [--session id] [--json]")
		os.Exit(2)
	}

	store, err := recorder.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *sessionID != "" {
		if err := runDetailMode(store, *sessionID, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(store, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	SessionID string `json:"session_id"`
	StartedAt string `json:"started_at"`
	Chunks    int    `json:"chunks"`
	Decisions int    `json:"decisions"`
}

func runListMode(store *recorder.Store, last int, jsonOut bool) error {
	sessions, err := store.Sessions(last)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	rows := make([]listRow, len(sessions))
	for i, s := range sessions {
		chunks, err := store.Chunks(s.SessionID)
		if err != nil {
			return err
		}
		decisions, err := store.Decisions(s.SessionID)
		if err != nil {
			return err
		}
		rows[i] = listRow{
			SessionID: s.SessionID,
			StartedAt: s.StartedAt.Format("2006-01-02T15:04:05Z"),
			Chunks:    len(chunks),
			Decisions: len(decisions),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-12s  %-20s  %8s  %9s\n", "Session", "Started", "Chunks", "Decisions")
	fmt.Printf("%-12s+-%-20s+-%8s+-%9s\n", "------------", "--------------------", "--------", "---------")
	for _, r := range rows {
		fmt.Printf("%-12s  %-20s  %8d  %9d\n", shortID(r.SessionID), r.StartedAt, r.Chunks, r.Decisions)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	SessionID string                 `json:"session_id"`
	Chunks    []string               `json:"chunks"`
	Decisions []engine.TriggerRecord `json:"decisions"`
}

func runDetailMode(store *recorder.Store, sessionID string, jsonOut bool) error {
	chunks, err := store.Chunks(sessionID)
	if err != nil {
		return err
	}
	decisions, err := store.Decisions(sessionID)
	if err != nil {
		return err
	}

	out := detailOutput{
		SessionID: sessionID,
		Chunks:    chunks,
		Decisions: decisions,
	}
	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Session: %s\n", sessionID)
	fmt.Printf("Chunks:  %d\n\n", len(chunks))

	fmt.Printf("%-5s  %-8s  %-18s  %9s  %9s\n", "Seq", "Layer", "Trigger", "Intensity", "Frequency")
	fmt.Printf("%-5s+-%-8s+-%-18s+-%9s+-%9s\n", "-----", "--------", "------------------", "---------", "---------")
	for _, d := range decisions {
		fmt.Printf("%-5d  %-8s  %-18s  %9.2f  %9.1f\n", d.Seq, d.Layer, d.Trigger, d.Intensity, d.Frequency)
	}
	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
