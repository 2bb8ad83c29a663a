package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/scroller/internal/audio"
	"git.lost.host/meutraa/scroller/internal/config"
	"git.lost.host/meutraa/scroller/internal/game"
	"git.lost.host/meutraa/scroller/internal/input"
	"git.lost.host/meutraa/scroller/internal/log"
	"git.lost.host/meutraa/scroller/internal/render"
	"git.lost.host/meutraa/scroller/internal/score"
	"git.lost.host/meutraa/scroller/internal/scroller"
	"git.lost.host/meutraa/scroller/internal/theme"
)

type Program struct {
	Config   *config.Config
	Renderer render.Renderer

	song    *game.Song
	player  *audio.Player
	cues    *audio.Cues
	input   *input.Sampler
	session *scroller.Session
	hud     render.HUD
	theme   theme.Theme
	keys    []game.Key
	log     *log.Logger

	width, height int

	// Stats for the current song
	tally    score.Tally
	last     score.Outcome
	judged   bool
	phase    scroller.Phase
	scale    float64
	finished bool
}

// Layout projects the track onto terminal cells. The hit line sits near the
// left edge and notes scroll in from the right.
func Layout(cfg *config.Config, width, height int) scroller.Projection {
	w, h := float64(width), float64(height)
	hitX := 12.0
	spawnX := w - 2
	if spawnX < hitX+20 {
		spawnX = hitX + 20
	}
	mid := h / 2
	return scroller.Projection{
		SpawnLineX:  spawnX,
		HitLineX:    hitX,
		Lanes:       &scroller.LaneMarkers{TopY: mid + 3, BottomY: mid - 3},
		Track:       game.Rect{MinX: 0, MinY: 0, MaxX: spawnX + 2, MaxY: h},
		HitWindow:   game.RectAround(game.Point{X: hitX, Y: mid}, 4, h),
		Glyphs:      game.Glyphs{Width: 2, Height: 1, Spacing: 3},
		ScrollSpeed: cfg.ScrollSpeed,
	}
}

func (p *Program) Init() error {
	p.log = log.Default()
	if nil == p.Renderer {
		p.Renderer = render.NewRenderer(os.Stdout)
	}

	var err error
	p.song, err = loadSong(p.Config)
	if nil != err {
		return err
	}
	if p.song.Audio == "" {
		return errors.Errorf("song %q has no audio, use --audio", p.song.Name)
	}

	p.player, err = audio.Open(p.song.Audio)
	if nil != err {
		return err
	}
	if err := p.player.Init(); nil != err {
		return errors.Wrap(err, "unable to start the speaker")
	}
	p.player.SetVolume(p.Config.Volume)
	p.cues = audio.NewCues(p.player.Format().SampleRate, p.Config.Volume, p.Config.Mute)

	p.input, err = input.Open(p.Config.KeyMap())
	if nil != err {
		return err
	}

	p.width, p.height = p.Renderer.Size()
	p.theme = &theme.DefaultTheme{}
	p.hud = render.HUD{Row: 2, Col: 2, Width: 24, Theme: p.theme}
	p.keys = lanesKeys(p.song)
	p.scale = 1

	countdown := scroller.Countdown{InitialDelay: p.Config.Delay}
	if p.Config.Countdown {
		countdown.PhaseDuration = p.Config.Phase
		countdown.Punch = p.Config.Punch
		countdown.Display = func(phase scroller.Phase, scale float64) {
			p.phase, p.scale = phase, scale
		}
	}

	p.session, err = scroller.New(scroller.Config{
		Song:        p.song,
		Clock:       p.player,
		Input:       p.input,
		Projection:  Layout(p.Config, p.width, p.height),
		MinSpawnGap: p.Config.MinSpawnGap,
		SettleDelay: p.Config.Settle,
		Countdown:   countdown,
		Hooks: scroller.Hooks{
			OnSuccess:  p.cues.Success,
			OnMiss:     p.onMiss,
			OnJudge:    p.onJudge,
			OnComplete: func() { p.finished = true },
		},
		Log: p.log,
	})
	return err
}

// lanesKeys is the first key authored for each lane.
func lanesKeys(song *game.Song) []game.Key {
	keys := make([]game.Key, song.Lanes)
	for _, n := range song.Notes {
		if keys[n.Lane] == "" {
			keys[n.Lane] = n.Key1
		}
	}
	for i, k := range keys {
		if k == "" {
			keys[i] = "·"
		}
	}
	return keys
}

func (p *Program) onJudge(key game.Key, o score.Outcome) {
	p.tally.Record(o)
	p.last, p.judged = o, true
	p.log.Debugf("%v: %v", key, o)
}

func (p *Program) onMiss(pos game.Point) {
	p.tally.Miss()
	p.cues.Miss(pos)
	p.Renderer.AddDecoration(p.hud.Col+16, p.hud.Row+8, p.theme.RenderMiss(), 30)
}

// Run plays the song until it completes, escape is pressed or ctx is done.
func (p *Program) Run(ctx context.Context) error {
	if err := p.Renderer.Init(); nil != err {
		return err
	}
	defer p.Renderer.Deinit()

	p.session.Start()
	err := p.Renderer.RenderLoop(ctx, p.Config.FramePeriod, func(dt time.Duration) bool {
		p.session.Tick(dt)
		if p.input.Quit() {
			return false
		}
		p.Render()
		return !p.finished
	})
	p.session.Stop()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (p *Program) Render() {
	t := p.player.CurrentTime()
	if p.session.State() != scroller.Playing {
		t = 0
	}
	p.hud.Draw(p.Renderer, render.Status{
		Song:   p.song.Name,
		Phase:  p.phase,
		Scale:  p.scale,
		Time:   t,
		Length: p.player.ClipDuration(),
		Live:   len(p.session.Live()),
		Tally:  p.tally,
		Keys:   p.keys,
		Last:   p.last,
		Judged: p.judged,
	})
}

func (p *Program) Summary(out io.Writer) {
	state := "finished"
	if !p.finished {
		state = "stopped"
	}
	fmt.Fprintf(out, "%v %v: %d hits, %d partial, %d misses, %d stray presses, %.1f%% accuracy\n",
		p.song.Name, state, p.tally.Hits, p.tally.Partial, p.tally.Misses, p.tally.Stray, 100*p.tally.Accuracy())
}

func (p *Program) Deinit() {
	if nil != p.input {
		if err := p.input.Close(); nil != err {
			p.log.Warnf("unable to close keyboard: %v", err)
		}
	}
	if nil != p.player {
		if err := p.player.Close(); nil != err {
			p.log.Warnf("unable to close audio: %v", err)
		}
	}
}
