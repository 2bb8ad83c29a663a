package scroller

import (
	"time"

	"git.lost.host/meutraa/scroller/internal/game"
)

type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseReady
	PhaseSet
	PhaseGo
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "Ready"
	case PhaseSet:
		return "Set"
	case PhaseGo:
		return "Go!"
	}
	return ""
}

// countdown is advanced once per tick until every phase has elapsed.
type countdown struct {
	phases   []Phase
	duration time.Duration // Of each phase
	punch    float64
	display  func(Phase, float64)

	phase   int
	inPhase time.Duration
}

// newCountdown returns nil when playback should start right away.
func newCountdown(c Countdown) *countdown {
	if c.InitialDelay <= 0 {
		return nil
	}
	if nil == c.Display {
		return &countdown{phases: []Phase{PhaseNone}, duration: c.InitialDelay, punch: 1}
	}
	d := c.PhaseDuration
	if d < 0 {
		d = 0
	}
	return &countdown{
		phases:   []Phase{PhaseReady, PhaseSet, PhaseGo},
		duration: d,
		punch:    c.Punch,
		display:  c.Display,
	}
}

// Total is the full pre-roll.
func (c *countdown) Total() time.Duration {
	return time.Duration(len(c.phases)) * c.duration
}

func (c *countdown) Phase() Phase {
	if c.phase >= len(c.phases) {
		return PhaseNone
	}
	return c.phases[c.phase]
}

// advance returns true once the pre-roll is over. Time left over at the end of
// a phase carries into the next one.
func (c *countdown) advance(dt time.Duration) bool {
	c.inPhase += dt
	for c.phase < len(c.phases) && c.inPhase >= c.duration {
		c.inPhase -= c.duration
		c.phase++
	}
	if c.phase >= len(c.phases) {
		c.show(PhaseNone, 1)
		return true
	}
	c.show(c.phases[c.phase], c.scale())
	return false
}

// scale punches up over the first half of a phase and back down over the second.
func (c *countdown) scale() float64 {
	half := c.duration / 2
	if half <= 0 {
		return 1
	}
	if c.inPhase < half {
		return game.Lerp(1, c.punch, float64(c.inPhase)/float64(half))
	}
	return game.Lerp(c.punch, 1, float64(c.inPhase-half)/float64(half))
}

func (c *countdown) show(p Phase, scale float64) {
	if nil != c.display {
		c.display(p, scale)
	}
}
