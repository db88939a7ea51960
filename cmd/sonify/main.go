package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jmadden/cadenza/internal/audio"
	"github.com/jmadden/cadenza/internal/engine"
	"github.com/jmadden/cadenza/internal/mixer"
	"github.com/jmadden/cadenza/internal/recorder"
)

// #region main
func main() {
	dbPath := flag.String("db", envOr("CADENZA_DB", ""), "record session to this SQLite file (empty = no recording)")
	volume := flag.Float64("volume", 0.8, "master volume 0..1")
	mute := flag.String("mute", "", "comma-separated axes to mute (certainty,reasoning,revision,resolution)")
	solo := flag.String("solo", "", "comma-separated axes to solo")
	silent := flag.Bool("silent", false, "run the pipeline without an audio device")
	flag.Parse()

	var out audio.Output
	if !*silent {
		oto, err := audio.NewOto(*volume)
		if err != nil {
			log.Fatalf("failed to open audio: %v", err)
		}
		out = oto
	}

	var sink engine.Sink
	if *dbPath != "" {
		store, err := recorder.NewStore(*dbPath)
		if err != nil {
			log.Fatalf("failed to open store: %v", err)
		}
		defer store.Close()
		sink = store
	}

	eng := engine.New(out, sink)
	defer eng.Close()

	eng.UpdateMixerControls(settingsFromFlags(*mute, *solo))
	eng.OnActiveAxesChange(func(axes map[mixer.Axis]bool) {
		var active []string
		for _, a := range mixer.Axes {
			if axes[a] {
				active = append(active, string(a))
			}
		}
		if len(active) > 0 {
			fmt.Printf("  axes: %s\n", strings.Join(active, ", "))
		}
	})

	eng.Start()
	fmt.Println("Cadenza ready. Reading reasoning deltas from stdin.")
	if *dbPath != "" {
		fmt.Printf("  recording to %s (session %s)\n", *dbPath, eng.SessionID())
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		eng.AddDelta(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.Printf("stdin error: %v", err)
	}

	// End of stream: resolve and let the flourish ring out.
	eng.StartFlourish()
	waitForFlourish()
	eng.Stop()
}

// #endregion main

// #region helpers
func settingsFromFlags(mute, solo string) map[mixer.Axis]mixer.Setting {
	settings := mixer.DefaultSettings()
	for _, name := range splitAxes(mute) {
		s := settings[mixer.Axis(name)]
		s.Muted = true
		settings[mixer.Axis(name)] = s
	}
	for _, name := range splitAxes(solo) {
		s := settings[mixer.Axis(name)]
		s.Solo = true
		settings[mixer.Axis(name)] = s
	}
	return settings
}

func splitAxes(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// waitForFlourish gives the terminal chord time to decay before the process
// exits and tears down the audio device.
func waitForFlourish() {
	time.Sleep(2500 * time.Millisecond)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
