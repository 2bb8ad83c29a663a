package game

import "testing"

func TestDoubleNeedsFirstKey(t *testing.T) {
	n := NewLiveNote(NoteSpec{Kind: Double, Key1: "A", Key2: "S"}, Point{}, 0)
	if n.ActiveKey() != "A" {
		t.Fatalf("expected A active, got %s", n.ActiveKey())
	}
	if n.Resolve() {
		t.Fatal("double resolved before its first key")
	}
	if !n.HitFirst() || n.HitFirst() {
		t.Fatal("first key should register exactly once")
	}
	if n.ActiveKey() != "S" {
		t.Fatalf("expected S active, got %s", n.ActiveKey())
	}
	if !n.Resolve() || n.Resolve() {
		t.Fatal("resolve should succeed exactly once")
	}
	if n.Expire() {
		t.Fatal("resolved note expired")
	}
}

func TestSingleNeverHitsFirst(t *testing.T) {
	n := NewLiveNote(NoteSpec{Key1: "A"}, Point{}, 0)
	if n.HitFirst() || n.FirstKeyHit {
		t.Fatal("single note took a first key hit")
	}
	if !n.Expire() || !n.Resolved {
		t.Fatal("expected expiry to resolve the note")
	}
	if n.Resolve() {
		t.Fatal("resolved twice")
	}
}
