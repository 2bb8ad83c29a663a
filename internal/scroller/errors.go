package scroller

import "github.com/pkg/errors"

// Configuration errors returned by New. The session never starts after one of these.
var (
	ErrNoClock     = errors.New("no playback clock")
	ErrNoClip      = errors.New("no audio clip")
	ErrScrollSpeed = errors.New("scroll speed must be positive")
	ErrGeometry    = errors.New("invalid track geometry")
)
