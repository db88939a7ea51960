package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jmadden/cadenza/internal/mixer"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string                    `json:"description"`
	Settings    map[string]FixtureSetting `json:"settings,omitempty"`
	Chunks      []string                  `json:"chunks"`
	Expected    []ExpectedDecision        `json:"expected"`
}

// FixtureSetting mirrors mixer.Setting with JSON tags.
type FixtureSetting struct {
	Muted  bool `json:"muted"`
	Solo   bool `json:"solo"`
	Volume int  `json:"volume"`
}

// ExpectedDecision is one expected (seq, layer, trigger) decision.
type ExpectedDecision struct {
	Seq     int    `json:"seq"`
	Layer   string `json:"layer"`
	Trigger string `json:"trigger"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// MixerSettings converts fixture settings to domain mixer settings. Axes the
// fixture omits keep their defaults.
func (f *Fixture) MixerSettings() map[mixer.Axis]mixer.Setting {
	settings := mixer.DefaultSettings()
	for name, s := range f.Settings {
		settings[mixer.Axis(name)] = mixer.Setting{
			Muted:  s.Muted,
			Solo:   s.Solo,
			Volume: s.Volume,
		}
	}
	return settings
}

// #endregion fixture-loader
