// Package audio owns the opaque instruments: it renders planned notes to
// stereo float32 buffers and plays them through oto. The engine treats the
// whole package as a capability: a nil Output means every trigger is a
// silent no-op.
package audio

// #region imports
import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/jmadden/cadenza/internal/synth"
)

// #endregion

// #region constants

const (
	SampleRate   = 44100
	channelCount = 2
	bitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// #endregion constants

// #region output

// Output is what the engine addresses. Play must not block the caller beyond
// buffer rendering; Silence stops continuous sources (pad chords, sustained
// noise) and leaves short one-shots to finish naturally.
type Output interface {
	Play(n synth.Note)
	Silence()
	Close() error
}

// #endregion output

// #region oto-backend

// Oto plays rendered notes through an oto/v2 context.
type Oto struct {
	ctx    *oto.Context
	ready  chan struct{}
	master float64

	mu        sync.Mutex
	sustained []oto.Player
}

// NewOto opens the audio device. Construction failures surface to the caller
// and are not retried here. The device becomes ready asynchronously; until
// then Play is a silent no-op.
func NewOto(masterVolume float64) (*Oto, error) {
	ctx, ready, err := oto.NewContext(SampleRate, channelCount, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("open audio context: %w", err)
	}
	if masterVolume < 0 {
		masterVolume = 0
	}
	if masterVolume > 1 {
		masterVolume = 1
	}
	return &Oto{ctx: ctx, ready: ready, master: masterVolume}, nil
}

// Play renders and starts one note. Inaudible notes are skipped before any
// rendering work.
func (o *Oto) Play(n synth.Note) {
	if n.Volume <= 0 || n.Duration <= 0 {
		return
	}
	select {
	case <-o.ready:
	default:
		return
	}

	buf := render(n)
	if len(buf) == 0 {
		return
	}

	player := o.ctx.NewPlayer(&bufReader{data: buf})
	player.SetVolume(o.master * clampUnit(n.Volume))
	player.Play()

	if n.Sustained {
		o.track(player, n.Duration)
		return
	}
	go func() {
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// track registers a continuous player so Silence can close it, and reaps it
// when it finishes on its own.
func (o *Oto) track(p oto.Player, d time.Duration) {
	o.mu.Lock()
	o.sustained = append(o.sustained, p)
	o.mu.Unlock()

	go func() {
		for p.IsPlaying() {
			time.Sleep(25 * time.Millisecond)
		}
		o.mu.Lock()
		for i, q := range o.sustained {
			if q == p {
				o.sustained = append(o.sustained[:i], o.sustained[i+1:]...)
				break
			}
		}
		o.mu.Unlock()
		p.Close()
	}()
}

// Silence closes every tracked continuous player immediately.
func (o *Oto) Silence() {
	o.mu.Lock()
	players := o.sustained
	o.sustained = nil
	o.mu.Unlock()
	for _, p := range players {
		p.Close()
	}
}

// Close silences continuous sources. oto's context has no close; in-flight
// one-shot players drain and close themselves.
func (o *Oto) Close() error {
	o.Silence()
	return nil
}

// #endregion oto-backend

// #region reader

type bufReader struct {
	data []byte
	pos  int
}

func (r *bufReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// #endregion reader

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
