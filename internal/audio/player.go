// Package audio plays the song track and reports its position as the clock
// that drives a scroller session.
package audio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

var ErrFormat = errors.New("unsupported audio format")

type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume

	started bool
	stopped int32

	// Queues a streamer on the output, speaker.Play unless replaced
	play func(...beep.Streamer)
}

// Open decodes the audio file at path, choosing the decoder by extension.
func Open(path string) (*Player, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, err
	}
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, errors.Wrapf(ErrFormat, "%v", path)
	}
	if nil != err {
		f.Close()
		return nil, errors.Wrapf(err, "unable to decode %v", path)
	}
	return NewPlayer(streamer, format), nil
}

func NewPlayer(streamer beep.StreamSeekCloser, format beep.Format) *Player {
	ctrl := &beep.Ctrl{Streamer: streamer, Paused: true}
	return &Player{
		streamer: streamer,
		format:   format,
		ctrl:     ctrl,
		volume:   &effects.Volume{Streamer: ctrl, Base: 2},
		play:     speaker.Play,
	}
}

// Init starts the speaker at the track's sample rate.
func (p *Player) Init() error {
	return speaker.Init(p.format.SampleRate, p.format.SampleRate.N(time.Second/60))
}

func (p *Player) Format() beep.Format {
	return p.format
}

// SetVolume sets a linear gain, zero or less silences the track.
func (p *Player) SetVolume(v float64) {
	speaker.Lock()
	defer speaker.Unlock()
	if v <= 0 {
		p.volume.Silent = true
		return
	}
	p.volume.Silent = false
	p.volume.Volume = math.Log2(v)
}

// Play starts playback from the beginning, later calls are ignored.
func (p *Player) Play() {
	if p.started {
		return
	}
	p.started = true
	p.play(beep.Seq(p.volume, beep.Callback(func() {
		atomic.StoreInt32(&p.stopped, 1)
	})))
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
}

func (p *Player) CurrentTime() time.Duration {
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

func (p *Player) HasStopped() bool {
	return atomic.LoadInt32(&p.stopped) == 1
}

func (p *Player) ClipDuration() time.Duration {
	return p.format.SampleRate.D(p.streamer.Len())
}

// Close pauses playback and releases the decoder.
func (p *Player) Close() error {
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	return p.streamer.Close()
}
