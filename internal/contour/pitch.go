package contour

// #region imports
import (
	"math"
	"strings"
)

// #endregion

// #region constants

const (
	// BasePitch anchors the bottom of the range at A2.
	BasePitch = 110.0
	// PitchOctaves is the span of the intensity range.
	PitchOctaves = 3.0
	// complexityCap bounds the complexity offset at one octave.
	complexityCap = 12
)

// #endregion constants

// #region pitch

// Pitch maps intensity onto a 3-octave range above BasePitch, then raises the
// result one semitone per complexity marker in the text. Monotonic in
// intensity, non-decreasing in complexity.
func Pitch(intensity float64, text string) float64 {
	freq := BasePitch * math.Pow(2, PitchOctaves*clamp(intensity))
	markers := ComplexityMarkers(text)
	if markers > complexityCap {
		markers = complexityCap
	}
	return freq * math.Pow(2, float64(markers)/12.0)
}

// ComplexityMarkers counts commas and open parentheses, the two punctuation
// signals treated as structural complexity.
func ComplexityMarkers(text string) int {
	return strings.Count(text, ",") + strings.Count(text, "(")
}

// #endregion pitch
