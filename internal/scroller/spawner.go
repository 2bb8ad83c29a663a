package scroller

import (
	"time"

	"git.lost.host/meutraa/scroller/internal/game"
)

// spawn emits every note whose lead time has been reached, at most one per
// MinSpawnGap of real time. Throttled notes stay pending and spawn late.
func (s *Session) spawn(now time.Duration) {
	for s.next < len(s.song.Notes) {
		spec := s.song.Notes[s.next]
		if spec.Time-s.travel > now {
			break
		}
		if s.spawned && s.elapsed-s.lastSpawn < s.gap {
			break
		}
		pos := game.Point{X: s.proj.SpawnLineX, Y: s.laneY(spec.Lane)}
		s.live = append(s.live, game.NewLiveNote(spec, pos, s.elapsed))
		s.next++
		s.lastSpawn = s.elapsed
		s.spawned = true
		s.log.Debugf("spawned %v note %s%s lane %d due %v at clock %v", spec.Kind, spec.Key1, spec.Key2, spec.Lane, spec.Time, now)
	}
}

// laneY interpolates between the bottom and top lane markers.
func (s *Session) laneY(lane int) float64 {
	if nil == s.proj.Lanes {
		return s.proj.Track.Center().Y
	}
	top, bottom := s.proj.Lanes.TopY, s.proj.Lanes.BottomY
	if top < bottom {
		top, bottom = bottom, top
	}
	n := s.song.Lanes
	if n <= 1 {
		return (top + bottom) / 2
	}
	if lane < 0 {
		lane = 0
	} else if lane > n-1 {
		lane = n - 1
	}
	return game.Lerp(bottom, top, float64(lane)/float64(n-1))
}
