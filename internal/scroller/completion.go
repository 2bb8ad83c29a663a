package scroller

// complete ends the session once the track has stopped, every note has been
// spawned and resolved, and the settle delay has passed since the stop was
// first seen.
func (s *Session) complete() {
	if s.state != Playing || !s.clock.HasStopped() {
		return
	}
	if !s.stopSeen {
		s.stopSeen = true
		s.stoppedAt = s.elapsed
		s.log.Debugf("track stopped at %v", s.clock.CurrentTime())
	}
	if s.next < len(s.song.Notes) || len(s.live) > 0 {
		return
	}
	if s.elapsed-s.stoppedAt < s.settle {
		return
	}

	s.state = Ended
	s.live = nil
	s.log.Infof("song %q complete", s.song.Name)
	if nil != s.hooks.OnComplete {
		s.hooks.OnComplete()
	}
}
