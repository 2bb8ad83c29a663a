package scroller

import (
	"math"
	"testing"
	"time"

	"git.lost.host/meutraa/scroller/internal/game"
	"git.lost.host/meutraa/scroller/internal/log"
	"git.lost.host/meutraa/scroller/internal/score"
)

const frame = 50 * time.Millisecond

type fakeClock struct {
	now, clip time.Duration
	playing   bool
	stopped   bool
	plays     int
}

func (c *fakeClock) Play()                       { c.playing = true; c.plays++ }
func (c *fakeClock) CurrentTime() time.Duration  { return c.now }
func (c *fakeClock) HasStopped() bool            { return c.stopped }
func (c *fakeClock) ClipDuration() time.Duration { return c.clip }

// advance moves the clock while playing and stops it at the end of the clip.
func (c *fakeClock) advance(dt time.Duration) {
	if !c.playing || c.stopped {
		return
	}
	c.now += dt
	if c.now >= c.clip {
		c.now = c.clip
		c.stopped = true
	}
}

type fakeInput struct {
	keys []game.Key
}

func (i *fakeInput) Pressed() []game.Key {
	keys := i.keys
	i.keys = nil
	return keys
}

type recorder struct {
	success  []game.Point
	miss     []game.Point
	outcomes []score.Outcome
	complete int
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnSuccess:  func(p game.Point) { r.success = append(r.success, p) },
		OnMiss:     func(p game.Point) { r.miss = append(r.miss, p) },
		OnJudge:    func(_ game.Key, o score.Outcome) { r.outcomes = append(r.outcomes, o) },
		OnComplete: func() { r.complete++ },
	}
}

// Notes travel from x=300 to the hit line at x=100 in exactly one second.
func baseConfig(song *game.Song) Config {
	return Config{
		Song: song,
		Projection: Projection{
			SpawnLineX:  300,
			HitLineX:    100,
			Lanes:       &LaneMarkers{TopY: 40, BottomY: -40},
			Track:       game.Rect{MinX: 0, MinY: -50, MaxX: 320, MaxY: 50},
			HitWindow:   game.Rect{MinX: 80, MinY: -50, MaxX: 120, MaxY: 50},
			Glyphs:      game.Glyphs{Width: 20, Height: 20, Spacing: 30},
			ScrollSpeed: 200,
		},
		Log: log.Discard(),
	}
}

type harness struct {
	t     *testing.T
	s     *Session
	clock *fakeClock
	input *fakeInput
	rec   *recorder
}

func newHarness(t *testing.T, song *game.Song, mod func(*Config)) *harness {
	h := &harness{
		t:     t,
		clock: &fakeClock{clip: 4 * time.Second},
		input: &fakeInput{},
		rec:   &recorder{},
	}
	c := baseConfig(song)
	c.Clock = h.clock
	c.Input = h.input
	c.Hooks = h.rec.hooks()
	if nil != mod {
		mod(&c)
	}
	s, err := New(c)
	if nil != err {
		t.Fatalf("unable to create session: %v", err)
	}
	h.s = s
	h.s.Start()
	return h
}

func (h *harness) tick() {
	h.clock.advance(frame)
	h.s.Tick(frame)
}

// until ticks until the clock reads at least t.
func (h *harness) until(t time.Duration) {
	for h.clock.now < t {
		if h.clock.stopped {
			h.t.Fatalf("clock stopped at %v before %v", h.clock.now, t)
		}
		h.tick()
	}
}

func (h *harness) press(keys ...game.Key) {
	h.input.keys = append(h.input.keys, keys...)
}

func song(notes ...game.NoteSpec) *game.Song {
	s := &game.Song{Name: "test", Lanes: 3, Notes: notes}
	s.Normalize()
	return s
}

func at(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}
