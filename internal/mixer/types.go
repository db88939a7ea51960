package mixer

// #region axis

// Axis is one of the four cognitive groupings of the eleven linguistic
// markers, used for mute/solo/volume control.
type Axis string

const (
	AxisCertainty  Axis = "certainty"
	AxisReasoning  Axis = "reasoning"
	AxisRevision   Axis = "revision"
	AxisResolution Axis = "resolution"
)

// Axes lists every axis in a fixed order.
var Axes = []Axis{AxisCertainty, AxisReasoning, AxisRevision, AxisResolution}

// #endregion axis

// #region setting

// Setting holds the per-axis mixer controls. Volume is 0–100.
// If any axis has Solo set, every axis without Solo is silenced regardless of
// its own mute and volume.
type Setting struct {
	Muted  bool `json:"muted"`
	Solo   bool `json:"solo"`
	Volume int  `json:"volume"`
}

// DefaultVolume is the volume assigned to every axis at construction.
const DefaultVolume = 75

// DefaultSettings returns all four axes unmuted, unsoloed, at DefaultVolume.
func DefaultSettings() map[Axis]Setting {
	settings := make(map[Axis]Setting, len(Axes))
	for _, a := range Axes {
		settings[a] = Setting{Volume: DefaultVolume}
	}
	return settings
}

// #endregion setting
