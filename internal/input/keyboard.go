// Package input turns terminal key events into the edge-triggered presses a
// scroller session samples once per tick.
package input

import (
	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"

	"git.lost.host/meutraa/scroller/internal/game"
	"git.lost.host/meutraa/scroller/internal/log"
)

type Sampler struct {
	events <-chan keyboard.KeyEvent
	keys   game.KeyMap
	quit   bool
	log    *log.Logger
	close  func() error
}

// Open starts reading the keyboard in raw mode.
func Open(keys game.KeyMap) (*Sampler, error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	s := NewSampler(events, keys)
	s.close = keyboard.Close
	return s, nil
}

func NewSampler(events <-chan keyboard.KeyEvent, keys game.KeyMap) *Sampler {
	return &Sampler{
		events: events,
		keys:   keys,
		log:    log.Default(),
		close:  func() error { return nil },
	}
}

// Pressed drains every buffered event without blocking.
func (s *Sampler) Pressed() []game.Key {
	var pressed []game.Key
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.quit = true
				return pressed
			}
			if nil != ev.Err {
				s.log.Warnf("keyboard: %v", ev.Err)
				continue
			}
			switch ev.Key {
			case keyboard.KeyEsc, keyboard.KeyCtrlC:
				s.quit = true
				continue
			}
			if key, ok := s.keys.Lookup(ev.Rune); ok {
				pressed = append(pressed, key)
			} else {
				s.log.Debugf("unmapped key %q", ev.Rune)
			}
		default:
			return pressed
		}
	}
}

// Quit reports whether escape or interrupt was pressed.
func (s *Sampler) Quit() bool {
	return s.quit
}

func (s *Sampler) Close() error {
	return s.close()
}
