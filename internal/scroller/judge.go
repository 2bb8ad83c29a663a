package scroller

import (
	"git.lost.host/meutraa/scroller/internal/game"
	"git.lost.host/meutraa/scroller/internal/score"
)

// judge applies one key press to at most one note.
func (s *Session) judge(key game.Key) {
	v := score.Judge(key, s.live, s.window)
	if nil != s.hooks.OnJudge {
		s.hooks.OnJudge(key, v.Outcome)
	}
	if s.state != Playing || v.Outcome == score.NoMatch {
		return
	}

	note := s.live[v.Index]
	pos := s.window.Glyphs.Active(note, s.dir).Center()
	if !score.Apply(note, v.Outcome) {
		return
	}
	s.log.Debugf("%s: %v at x %.1f", key, v.Outcome, note.Pos.X)
	if v.Outcome.Removes() {
		s.remove(v.Index)
	}
	// The hook may stop the session
	if nil != s.hooks.OnSuccess {
		s.hooks.OnSuccess(pos)
	}
}

func (s *Session) remove(i int) {
	copy(s.live[i:], s.live[i+1:])
	s.live[len(s.live)-1] = nil
	s.live = s.live[:len(s.live)-1]
}
