package input

import (
	"testing"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"

	"git.lost.host/meutraa/scroller/internal/game"
)

func TestPressedDrains(t *testing.T) {
	events := make(chan keyboard.KeyEvent, 8)
	s := NewSampler(events, game.NewKeyMap("asd"))

	if keys := s.Pressed(); len(keys) != 0 {
		t.Fatalf("expected no keys, got %v", keys)
	}

	events <- keyboard.KeyEvent{Rune: 'a'}
	events <- keyboard.KeyEvent{Rune: 'x'}
	events <- keyboard.KeyEvent{Rune: 'D'}
	events <- keyboard.KeyEvent{Err: errors.New("read failed")}
	events <- keyboard.KeyEvent{Rune: 's'}

	keys := s.Pressed()
	expected := []game.Key{"A", "D", "S"}
	if len(keys) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, keys)
	}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Log(i, keys[i], expected[i])
			t.Fail()
		}
	}
	if len(s.Pressed()) != 0 {
		t.Fatal("events should only be reported once")
	}
	if s.Quit() {
		t.Fatal("no quit requested")
	}
}

func TestQuit(t *testing.T) {
	for _, k := range []keyboard.Key{keyboard.KeyEsc, keyboard.KeyCtrlC} {
		events := make(chan keyboard.KeyEvent, 2)
		s := NewSampler(events, game.NewKeyMap("a"))
		events <- keyboard.KeyEvent{Key: k}
		events <- keyboard.KeyEvent{Rune: 'a'}
		if keys := s.Pressed(); len(keys) != 1 || !s.Quit() {
			t.Log(k, keys, s.Quit())
			t.Fail()
		}
	}

	events := make(chan keyboard.KeyEvent)
	close(events)
	s := NewSampler(events, game.NewKeyMap("a"))
	s.Pressed()
	if !s.Quit() {
		t.Fatal("closed input should quit")
	}
}
