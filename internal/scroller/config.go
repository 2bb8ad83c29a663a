package scroller

import (
	"time"

	"git.lost.host/meutraa/scroller/internal/game"
	"git.lost.host/meutraa/scroller/internal/log"
	"git.lost.host/meutraa/scroller/internal/score"
)

// Clock is the playback clock of the song audio.
type Clock interface {
	Play()
	CurrentTime() time.Duration
	HasStopped() bool
	ClipDuration() time.Duration
}

// Input reports the keys newly pressed since the previous call.
type Input interface {
	Pressed() []game.Key
}

// LaneMarkers give the Y of the highest and lowest lane. Y grows upwards.
type LaneMarkers struct {
	TopY, BottomY float64
}

// Projection maps song time onto the scrolling track.
type Projection struct {
	SpawnLineX  float64
	HitLineX    float64
	Lanes       *LaneMarkers // nil places every note on the track centre
	Track       game.Rect    // Its edge past the hit line is where notes expire
	HitWindow   game.Rect
	Glyphs      game.Glyphs
	ScrollSpeed float64 // Units per second
}

// Countdown configures the pre-roll. Without a Display the pre-roll is a flat
// InitialDelay, and a non-positive InitialDelay starts playback immediately.
type Countdown struct {
	InitialDelay  time.Duration
	PhaseDuration time.Duration
	Punch         float64
	Display       func(phase Phase, scale float64)
}

// Hooks are fire and forget notifications, any of them may be nil.
type Hooks struct {
	OnSuccess  func(pos game.Point)
	OnMiss     func(pos game.Point)
	OnJudge    func(key game.Key, outcome score.Outcome)
	OnComplete func()
}

type Config struct {
	Song  *game.Song
	Clock Clock
	Input Input

	Projection
	MinSpawnGap time.Duration // Real time between two spawns
	SettleDelay time.Duration // Real time between the track stopping and completion

	Countdown Countdown
	Hooks     Hooks
	Log       *log.Logger
}
