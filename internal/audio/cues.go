package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"git.lost.host/meutraa/scroller/internal/game"
)

const (
	SuccessFreq = 880.0
	MissFreq    = 220.0
	CueLength   = 60 * time.Millisecond
)

// Cues plays short blips for judged notes.
type Cues struct {
	rate   beep.SampleRate
	volume float64
	mute   bool
	play   func(...beep.Streamer)
}

func NewCues(rate beep.SampleRate, volume float64, mute bool) *Cues {
	return &Cues{rate: rate, volume: volume, mute: mute, play: speaker.Play}
}

func (c *Cues) Success(game.Point) {
	c.cue(SuccessFreq)
}

func (c *Cues) Miss(game.Point) {
	c.cue(MissFreq)
}

func (c *Cues) cue(freq float64) {
	if c.mute || c.volume <= 0 {
		return
	}
	c.play(&effects.Volume{
		Streamer: Tone(c.rate, freq, CueLength),
		Base:     2,
		Volume:   math.Log2(c.volume),
	})
}

// Tone is a sine wave of the given length that fades out linearly.
func Tone(rate beep.SampleRate, freq float64, length time.Duration) beep.Streamer {
	total := rate.N(length)
	pos := 0
	return beep.Take(total, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			fade := 1 - float64(pos)/float64(total)
			v := 0.5 * fade * math.Sin(2*math.Pi*freq*float64(pos)/float64(rate))
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	}))
}
