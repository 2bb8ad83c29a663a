package theme

import (
	"fmt"

	"git.lost.host/meutraa/scroller/internal/game"
	"git.lost.host/meutraa/scroller/internal/score"
)

type DefaultTheme struct{}

type rgb struct {
	R, G, B uint8
}

const (
	missSym = "✗"
)

var (
	laneColors = [...]rgb{
		{236, 30, 0},    // red
		{0, 118, 236},   // blue
		{236, 195, 0},   // yellow
		{106, 0, 236},   // purple
		{0, 236, 128},   // green
		{236, 128, 0},   // orange
		{236, 0, 106},   // pink
		{173, 236, 236}, // light blue
		{110, 147, 89},  // olive
	}
	outcomeColors = map[score.Outcome]rgb{
		score.NoMatch:     {106, 106, 106}, // grey
		score.HitFirst:    {236, 195, 0},
		score.HitSecond:   {0, 236, 128},
		score.HitComplete: {0, 236, 128},
	}
	missColor = rgb{236, 30, 0}
)

func paint(c rgb, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

// RenderKey colours a key by its lane, cycling through the palette.
func (t *DefaultTheme) RenderKey(lane int, key game.Key) string {
	if lane < 0 {
		lane = 0
	}
	return paint(laneColors[lane%len(laneColors)], string(key))
}

func (t *DefaultTheme) RenderOutcome(o score.Outcome) string {
	return paint(outcomeColors[o], o.String())
}

func (t *DefaultTheme) RenderMiss() string {
	return paint(missColor, missSym)
}
