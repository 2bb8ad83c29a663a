package scroller

import "time"

// move scrolls every unresolved note. A note spawned on this tick keeps its
// spawn position so that it sits on the spawn line at its spawn instant.
func (s *Session) move(dt time.Duration) {
	dx := s.dir * s.proj.ScrollSpeed * dt.Seconds()
	for _, note := range s.live {
		if note.Resolved || note.SpawnedAt == s.elapsed {
			continue
		}
		note.Pos.X += dx
	}
}
