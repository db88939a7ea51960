package mixer

import (
	"testing"

	"github.com/jmadden/cadenza/internal/pattern"
)

func TestGainsDefaults(t *testing.T) {
	gains := Gains(DefaultSettings())
	for _, a := range Axes {
		if gains[a] != 0.75 {
			t.Fatalf("default gain for %s must be 0.75, got %v", a, gains[a])
		}
	}
}

func TestGainsMute(t *testing.T) {
	settings := DefaultSettings()
	s := settings[AxisRevision]
	s.Muted = true
	settings[AxisRevision] = s

	gains := Gains(settings)
	if gains[AxisRevision] != 0 {
		t.Fatalf("muted axis must gain 0, got %v", gains[AxisRevision])
	}
	if gains[AxisCertainty] == 0 {
		t.Fatal("unmuted axis must keep its volume")
	}
}

func TestGainsSoloSilencesOthers(t *testing.T) {
	settings := DefaultSettings()
	s := settings[AxisReasoning]
	s.Solo = true
	settings[AxisReasoning] = s

	gains := Gains(settings)
	if gains[AxisReasoning] != 0.75 {
		t.Fatalf("soloed axis must keep its volume, got %v", gains[AxisReasoning])
	}
	for _, a := range []Axis{AxisCertainty, AxisRevision, AxisResolution} {
		if gains[a] != 0 {
			t.Fatalf("non-soloed axis %s must gain 0 under solo, got %v", a, gains[a])
		}
	}
}

func TestGainsSoloOverridesMute(t *testing.T) {
	settings := DefaultSettings()
	s := settings[AxisReasoning]
	s.Solo = true
	s.Muted = true
	settings[AxisReasoning] = s

	gains := Gains(settings)
	if gains[AxisReasoning] != 0.75 {
		t.Fatalf("a soloed axis's own mute is irrelevant, got %v", gains[AxisReasoning])
	}
}

func TestGainsVolumeClamp(t *testing.T) {
	settings := DefaultSettings()
	over := settings[AxisCertainty]
	over.Volume = 150
	settings[AxisCertainty] = over
	under := settings[AxisRevision]
	under.Volume = -10
	settings[AxisRevision] = under

	gains := Gains(settings)
	if gains[AxisCertainty] != 1.0 {
		t.Fatalf("volume >100 must clamp to gain 1, got %v", gains[AxisCertainty])
	}
	if gains[AxisRevision] != 0 {
		t.Fatalf("negative volume must clamp to gain 0, got %v", gains[AxisRevision])
	}
}

func TestActiveAxesGrouping(t *testing.T) {
	cases := []struct {
		name  string
		flags pattern.Flags
		want  Axis
	}{
		{"uncertainty", pattern.Flags{Uncertainty: true}, AxisCertainty},
		{"certainty", pattern.Flags{Certainty: true}, AxisCertainty},
		{"hedging", pattern.Flags{Hedging: true}, AxisCertainty},
		{"causation", pattern.Flags{Causation: true}, AxisReasoning},
		{"enumeration", pattern.Flags{Enumeration: true}, AxisReasoning},
		{"comparison", pattern.Flags{Comparison: true}, AxisReasoning},
		{"revision", pattern.Flags{Revision: true}, AxisRevision},
		{"negation", pattern.Flags{Negation: true}, AxisRevision},
		{"question", pattern.Flags{Question: true}, AxisRevision},
		{"resolution", pattern.Flags{Resolution: true}, AxisResolution},
		{"emphasis", pattern.Flags{Emphasis: true}, AxisResolution},
	}
	for _, c := range cases {
		axes := ActiveAxes(c.flags)
		if !axes[c.want] {
			t.Fatalf("%s must activate axis %s", c.name, c.want)
		}
		for _, a := range Axes {
			if a != c.want && axes[a] {
				t.Fatalf("%s must not activate axis %s", c.name, a)
			}
		}
	}
}

func TestActiveAxesNeutral(t *testing.T) {
	axes := ActiveAxes(pattern.Flags{})
	for _, a := range Axes {
		if axes[a] {
			t.Fatalf("no flags must activate no axes, got %s", a)
		}
	}
}
