package scroller

import "git.lost.host/meutraa/scroller/internal/game"

// cleanup retires notes whose trailing edge has left the track past the hit
// line. An unresolved note is a miss even if its first key was hit.
func (s *Session) cleanup() {
	live := s.live
	kept := live[:0]
	for _, note := range live {
		if note.Resolved {
			continue
		}
		if !s.expired(note) {
			kept = append(kept, note)
			continue
		}
		note.Expire()
		s.log.Debugf("missed %v note %s%s", note.Kind, note.Key1, note.Key2)
		if nil != s.hooks.OnMiss {
			s.hooks.OnMiss(note.Pos)
		}
		if s.state != Playing {
			// Stopped from the hook, the live set is already gone
			return
		}
	}
	for i := len(kept); i < len(live); i++ {
		live[i] = nil
	}
	s.live = kept
}

func (s *Session) expired(note *game.LiveNote) bool {
	trailing := note.Pos.X - s.dir*s.proj.Glyphs.HalfExtent(note.Kind)
	if s.dir < 0 {
		return trailing < s.proj.Track.MinX
	}
	return trailing > s.proj.Track.MaxX
}
