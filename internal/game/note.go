package game

import "time"

// LiveNote is the runtime state of one spawned note.
type LiveNote struct {
	NoteSpec

	Pos       Point         // Centre of the note, X scrolls and Y is the lane
	SpawnedAt time.Duration // Play time at which the note was spawned

	// This is state
	FirstKeyHit bool // Double only, the first key has been hit
	Resolved    bool // Hit or missed, never reverts
}

func NewLiveNote(spec NoteSpec, pos Point, at time.Duration) *LiveNote {
	return &LiveNote{NoteSpec: spec, Pos: pos, SpawnedAt: at}
}

// ActiveKey is the key that currently has to be pressed.
func (n *LiveNote) ActiveKey() Key {
	if n.Kind == Double && n.FirstKeyHit {
		return n.Key2
	}
	return n.Key1
}

// HitFirst records the first key of a double note.
func (n *LiveNote) HitFirst() bool {
	if n.Kind != Double || n.FirstKeyHit || n.Resolved {
		return false
	}
	n.FirstKeyHit = true
	return true
}

// Resolve marks the note as judged. A double note only resolves after its first key.
func (n *LiveNote) Resolve() bool {
	if n.Resolved || (n.Kind == Double && !n.FirstKeyHit) {
		return false
	}
	n.Resolved = true
	return true
}

// Expire resolves the note as a miss regardless of partial progress.
func (n *LiveNote) Expire() bool {
	if n.Resolved {
		return false
	}
	n.Resolved = true
	return true
}
