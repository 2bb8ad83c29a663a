package theme

import (
	"git.lost.host/meutraa/scroller/internal/game"
	"git.lost.host/meutraa/scroller/internal/score"
)

type Theme interface {
	RenderKey(lane int, key game.Key) string
	RenderOutcome(o score.Outcome) string
	RenderMiss() string
}
