package audio

// #region imports
import (
	"math"

	"github.com/jmadden/cadenza/internal/synth"
)

// #endregion

// #region render

// render produces a stereo float32 buffer for one note at unit amplitude;
// volume is applied on the player.
func render(n synth.Note) []byte {
	frames := int(n.Duration.Seconds() * SampleRate)
	if frames <= 0 {
		return nil
	}
	switch n.Kind {
	case synth.KindTone:
		return renderTone(n, frames)
	case synth.KindChord:
		return renderChord(n, frames)
	case synth.KindNoise:
		return renderNoise(n, frames)
	}
	return nil
}

// renderTone picks a timbre per layer: warm FM for bass, plucky FM for mid,
// a bright harmonic stack for high.
func renderTone(n synth.Note, frames int) []byte {
	buf := makeBuf(frames)
	for i := 0; i < frames; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(frames)

		var s float64
		switch n.Layer {
		case synth.LayerBass:
			env := adsr(p, 0.04, 0.20, 0.65, 0.35)
			s = fm(t, n.Freq, 0.5, 1.25*env)*0.48 +
				math.Sin(2*math.Pi*n.Freq*t)*env*0.26 +
				math.Sin(2*math.Pi*n.Freq*0.5*t)*env*0.10
			s *= env
		case synth.LayerHigh:
			env := adsr(p, 0.02, 0.30, 0.35, 0.30)
			ph := 2 * math.Pi * n.Freq * t
			s = (math.Sin(ph) + math.Sin(ph*2)*0.25 + math.Sin(ph*3)*0.10) * env * 0.5
		default: // mid and flourish voices
			env := adsr(p, 0.01, 0.35, 0.30, 0.25)
			s = fm(t, n.Freq, 2.0, 3.2*env)*env*0.42 +
				math.Sin(2*math.Pi*n.Freq*2*t)*env*0.12
		}
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// renderChord stacks detuned FM voices per chord note. The pad timbre.
func renderChord(n synth.Note, frames int) []byte {
	buf := makeBuf(frames)
	detunes := [3]float64{-0.003, 0.001, 0.004}
	for i := 0; i < frames; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(frames)
		env := adsr(p, 0.18, 0.12, 0.70, 0.30)

		var s float64
		for _, freq := range n.Chord {
			for _, d := range detunes {
				f := freq * (1 + d)
				vib := 1 + 0.003*math.Sin(2*math.Pi*(0.23+f*0.0007)*t)
				s += fm(t, f*vib, 1.45, 0.75*env) * 0.09
			}
		}
		putStereoF32(buf, i, softSat(s*env))
	}
	return buf
}

// renderNoise runs LCG noise through a one-pole lowpass at the note's cutoff.
func renderNoise(n synth.Note, frames int) []byte {
	buf := makeBuf(frames)
	seed := uint64(97531)
	dt := 1.0 / SampleRate
	rc := 1.0 / (2.0 * math.Pi * n.Cutoff)
	alpha := dt / (rc + dt)
	lp := 0.0
	for i := 0; i < frames; i++ {
		p := float64(i) / float64(frames)
		env := adsr(p, 0.05, 0.15, 0.55, 0.40)
		lp += alpha * (lcg(&seed) - lp)
		putStereoF32(buf, i, softSat(lp*env*1.4))
	}
	return buf
}

// #endregion render

// #region dsp-helpers

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// softSat applies gentle tanh-like saturation without hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// makeBuf allocates a stereo float32 buffer for n frames.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// #endregion dsp-helpers
