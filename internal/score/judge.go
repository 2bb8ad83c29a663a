package score

import (
	"fmt"

	"git.lost.host/meutraa/scroller/internal/game"
)

type Outcome uint8

const (
	NoMatch     Outcome = iota // The press was not consumed by any note
	HitFirst                   // First key of a double note
	HitSecond                  // Second key of a double note, the note is complete
	HitComplete                // A single note
)

func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no match"
	case HitFirst:
		return "hit first"
	case HitSecond:
		return "hit second"
	case HitComplete:
		return "hit complete"
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// Hit reports whether the outcome is a successful press.
func (o Outcome) Hit() bool {
	return o != NoMatch
}

// Removes reports whether the note leaves the live set after this outcome.
func (o Outcome) Removes() bool {
	return o == HitSecond || o == HitComplete
}

type Verdict struct {
	Index   int // Index into the judged notes, -1 for NoMatch
	Outcome Outcome
}

// Window is the fixed hit window together with the note glyph layout.
type Window struct {
	Bounds game.Rect
	Glyphs game.Glyphs
	Dir    float64 // Direction of travel along X, +1 or -1
}

// Judge decides which note, if any, the key press applies to.
// Notes are scanned from the most recently spawned (the end of the slice)
// to the oldest and the first note that would change state wins.
// Judge does not mutate anything, see Apply.
func Judge(key game.Key, notes []*game.LiveNote, w Window) Verdict {
	for i := len(notes) - 1; i >= 0; i-- {
		note := notes[i]
		if nil == note || note.Resolved {
			continue
		}
		if !w.Glyphs.Active(note, w.Dir).Overlaps(w.Bounds) {
			continue
		}
		if key != note.ActiveKey() {
			continue
		}
		switch {
		case note.Kind == game.Single:
			return Verdict{Index: i, Outcome: HitComplete}
		case !note.FirstKeyHit:
			return Verdict{Index: i, Outcome: HitFirst}
		default:
			return Verdict{Index: i, Outcome: HitSecond}
		}
	}
	return Verdict{Index: -1, Outcome: NoMatch}
}

// Apply performs the state change of a verdict on its note.
func Apply(note *game.LiveNote, o Outcome) bool {
	switch o {
	case HitFirst:
		return note.HitFirst()
	case HitSecond, HitComplete:
		return note.Resolve()
	}
	return false
}
