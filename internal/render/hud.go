package render

import (
	"fmt"
	"strings"
	"time"

	"git.lost.host/meutraa/scroller/internal/game"
	"git.lost.host/meutraa/scroller/internal/score"
	"git.lost.host/meutraa/scroller/internal/scroller"
	"git.lost.host/meutraa/scroller/internal/theme"
)

// Status is what the HUD shows for one frame.
type Status struct {
	Song   string
	Phase  scroller.Phase
	Scale  float64
	Time   time.Duration
	Length time.Duration
	Live   int
	Tally  score.Tally
	Keys   []game.Key // One per lane
	Last   score.Outcome
	Judged bool // Last holds a judgement
}

// HUD lays the status out from a top left corner.
type HUD struct {
	Row, Col int
	Width    int
	Theme    theme.Theme
}

func (h HUD) Draw(r Renderer, s Status) {
	th := h.Theme
	if nil == th {
		th = &theme.DefaultTheme{}
	}
	r.Fill(h.Row, h.Col, fmt.Sprintf("\033[1m%-24s\033[0m", s.Song))
	r.Fill(h.Row+1, h.Col, h.progress(s.Time, s.Length))
	r.Fill(h.Row+3, h.Col, fmt.Sprintf("       Time:  %6.2fs", s.Time.Seconds()))
	r.Fill(h.Row+4, h.Col, fmt.Sprintf("       Live:  %6v", s.Live))
	r.Fill(h.Row+6, h.Col, fmt.Sprintf("       \033[1;32mHits\033[0m:  %6v", s.Tally.Hits))
	r.Fill(h.Row+7, h.Col, fmt.Sprintf("    \033[1;33mPartial\033[0m:  %6v", s.Tally.Partial))
	r.Fill(h.Row+8, h.Col, fmt.Sprintf("     \033[1;31mMisses\033[0m:  %6v", s.Tally.Misses))
	r.Fill(h.Row+9, h.Col, fmt.Sprintf("   Accuracy:  %5.1f%%", 100*s.Tally.Accuracy()))
	if s.Judged {
		r.Fill(h.Row+10, h.Col, "       Last:  "+th.RenderOutcome(s.Last)+"      ")
	}
	r.Fill(h.Row+12, h.Col, Banner(s.Phase, s.Scale))

	keys := make([]string, len(s.Keys))
	for i, k := range s.Keys {
		keys[i] = th.RenderKey(i, k)
	}
	r.Fill(h.Row+14, h.Col, "      Lanes:  "+strings.Join(keys, " "))
}

func (h HUD) progress(t, length time.Duration) string {
	w := h.Width
	if w <= 0 {
		w = 24
	}
	filled := 0
	if length > 0 {
		filled = int(float64(w) * float64(t) / float64(length))
	}
	if filled < 0 {
		filled = 0
	} else if filled > w {
		filled = w
	}
	return strings.Repeat("━", filled) + strings.Repeat("─", w-filled)
}

// Banner spells out a countdown phase, letter spaced by its punch scale.
func Banner(p scroller.Phase, scale float64) string {
	if p == scroller.PhaseNone {
		return strings.Repeat(" ", 24)
	}
	gap := int(scale*2+0.5) - 2
	if gap < 0 {
		gap = 0
	}
	letters := []string{}
	for _, c := range p.String() {
		letters = append(letters, string(c))
	}
	text := strings.Join(letters, strings.Repeat(" ", gap))
	return fmt.Sprintf("\033[1m%-24s\033[0m", text)
}
