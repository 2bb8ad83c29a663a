// Package scroller schedules a song's notes against the playback clock,
// scrolls them along the track and judges key presses against the hit window.
//
// A Session is driven by an external loop calling Tick once per frame. Every
// method must be called from that loop's goroutine.
package scroller

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/scroller/internal/game"
	"git.lost.host/meutraa/scroller/internal/log"
	"git.lost.host/meutraa/scroller/internal/score"
)

type State uint8

const (
	Idle State = iota
	Counting
	Playing
	Ended   // Completed, the completion hook has fired
	Stopped // Torn down before completion
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Counting:
		return "counting"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

type Session struct {
	song   *game.Song
	clock  Clock
	input  Input
	proj   Projection
	window score.Window
	dir    float64       // Direction of travel along X
	travel time.Duration // From the spawn line to the hit line
	gap    time.Duration
	settle time.Duration
	hooks  Hooks
	log    *log.Logger

	state     State
	countdown *countdown

	next      int              // Index of the next note to spawn
	live      []*game.LiveNote // In spawn order
	elapsed   time.Duration    // Real time spent playing
	lastSpawn time.Duration
	spawned   bool
	stopSeen  bool
	stoppedAt time.Duration
}

type noInput struct{}

func (noInput) Pressed() []game.Key { return nil }

// New validates the configuration and prepares an idle session.
func New(c Config) (*Session, error) {
	if nil == c.Song {
		return nil, errors.Wrap(game.ErrInvalidSong, "no song")
	}
	// Lanes are clamped and notes sorted on a copy
	song := c.Song.Clone()
	song.Normalize()
	if err := song.Validate(); nil != err {
		return nil, err
	}
	if nil == c.Clock {
		return nil, ErrNoClock
	}
	if c.Clock.ClipDuration() <= 0 {
		return nil, errors.Wrapf(ErrNoClip, "song %q", song.Name)
	}
	travel, err := TravelTime(c.Projection)
	if nil != err {
		return nil, err
	}

	s := &Session{
		song:   song,
		clock:  c.Clock,
		input:  c.Input,
		proj:   c.Projection,
		travel: travel,
		gap:    c.MinSpawnGap,
		settle: c.SettleDelay,
		hooks:  c.Hooks,
		log:    c.Log,
	}
	if nil == s.input {
		s.input = noInput{}
	}
	if nil == s.log {
		s.log = log.Default()
	}
	s.dir = 1
	if c.HitLineX < c.SpawnLineX {
		s.dir = -1
	}
	s.window = score.Window{Bounds: c.HitWindow, Glyphs: c.Glyphs, Dir: s.dir}

	if nil == c.Lanes {
		s.log.Warnf("no lane markers, notes will be placed on the track centre")
	}
	if nil == c.Countdown.Display && c.Countdown.InitialDelay > 0 {
		s.log.Warnf("no countdown display, waiting %v before playback", c.Countdown.InitialDelay)
	}
	clip := c.Clock.ClipDuration()
	for i, n := range song.Notes {
		if n.Time-travel > clip {
			s.log.Warnf("note %d at %v spawns after the clip ends at %v, the song will not complete", i, n.Time, clip)
			break
		}
	}
	s.log.Infof("song %q: %d notes, travel time %v", song.Name, len(song.Notes), travel)

	s.countdown = newCountdown(c.Countdown)
	return s, nil
}

// TravelTime is how long a note takes from the spawn line to the hit line.
func TravelTime(p Projection) (time.Duration, error) {
	for _, v := range [...]float64{p.SpawnLineX, p.HitLineX, p.ScrollSpeed} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errors.Wrap(ErrGeometry, "non finite projection")
		}
	}
	if p.ScrollSpeed <= 0 {
		return 0, errors.Wrapf(ErrScrollSpeed, "%v", p.ScrollSpeed)
	}
	if !p.Track.Finite() || p.Track.Width() <= 0 || p.Track.Height() <= 0 {
		return 0, errors.Wrapf(ErrGeometry, "track %v", p.Track)
	}
	if !p.HitWindow.Finite() || p.HitWindow.Width() <= 0 || p.HitWindow.Height() <= 0 {
		return 0, errors.Wrapf(ErrGeometry, "hit window %v", p.HitWindow)
	}
	if p.Glyphs.Width <= 0 || p.Glyphs.Height <= 0 || p.Glyphs.Spacing < 0 {
		return 0, errors.Wrapf(ErrGeometry, "glyphs %+v", p.Glyphs)
	}
	travel := time.Duration(math.Abs(p.SpawnLineX-p.HitLineX) / p.ScrollSpeed * float64(time.Second))
	if travel <= 0 {
		return 0, errors.Wrapf(ErrGeometry, "spawn line %v and hit line %v leave no travel", p.SpawnLineX, p.HitLineX)
	}
	return travel, nil
}

// Start begins the countdown, or playback when there is no pre-roll.
func (s *Session) Start() {
	if s.state != Idle {
		return
	}
	if nil == s.countdown {
		s.play()
		return
	}
	s.state = Counting
	s.countdown.show(s.countdown.Phase(), 1)
	s.log.Debugf("countdown of %v started", s.countdown.Total())
}

func (s *Session) play() {
	s.state = Playing
	s.clock.Play()
	s.log.Infof("playback started")
}

// Tick advances the session by one frame of dt real time.
func (s *Session) Tick(dt time.Duration) {
	switch s.state {
	case Counting:
		// Presses during the pre-roll are dropped
		s.input.Pressed()
		if s.countdown.advance(dt) && s.state == Counting {
			s.play()
		}
		return
	case Playing:
	default:
		return
	}

	s.elapsed += dt
	now := s.clock.CurrentTime()

	s.spawn(now)
	pressed := s.input.Pressed()
	s.move(dt)
	for _, key := range pressed {
		s.judge(key)
		if s.state != Playing {
			return
		}
	}
	s.cleanup()
	s.complete()
}

// Stop tears the session down. Live notes are dropped without effects and
// the completion hook will not fire.
func (s *Session) Stop() {
	if s.state == Ended || s.state == Stopped {
		return
	}
	s.state = Stopped
	// A hook may still be walking the old slice
	s.live = nil
	s.log.Infof("session stopped with %d notes left to spawn", len(s.song.Notes)-s.next)
}

func (s *Session) State() State { return s.state }

// Travel is the time a note takes from the spawn line to the hit line.
func (s *Session) Travel() time.Duration { return s.travel }

// Live returns the unresolved notes in spawn order. The slice must not be modified.
func (s *Session) Live() []*game.LiveNote { return s.live }

// Spawned is the number of notes spawned so far.
func (s *Session) Spawned() int { return s.next }

// Elapsed is the real time spent in the Playing state.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Phase is the current countdown phase, PhaseNone outside the pre-roll.
func (s *Session) Phase() Phase {
	if s.state != Counting {
		return PhaseNone
	}
	return s.countdown.Phase()
}

func (s *Session) Song() *game.Song { return s.song }
