package game

import (
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
)

var ErrInvalidSong = errors.New("invalid song")

type Kind uint8

const (
	Single Kind = iota
	Double
)

func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Double:
		return "double"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "single", "Single", "SINGLE":
		return Single, nil
	case "double", "Double", "DOUBLE":
		return Double, nil
	}
	return Single, errors.Errorf("unknown note kind %q", s)
}

// NoteSpec is one authored note. Time is the instant the note must sit on the hit line.
type NoteSpec struct {
	Time time.Duration
	Kind Kind
	Key1 Key
	Key2 Key // Double only
	Lane int
}

// Song is the authored note catalog for a single track.
// Notes stay sorted by Time; use Add or Normalize after editing the slice.
type Song struct {
	Name  string
	Audio string // Path of the audio track
	BPM   float64
	Lanes int
	Notes []NoteSpec
}

// Normalize enforces the catalog invariants: at least one lane, lanes clamped,
// keys upper cased and notes stably sorted by time.
func (s *Song) Normalize() {
	if s.Lanes < 1 {
		s.Lanes = 1
	}
	for i := range s.Notes {
		s.Notes[i] = s.normalizeNote(s.Notes[i])
	}
	s.sort()
}

// Clone copies the song so the copy's notes can be reordered freely.
func (s *Song) Clone() *Song {
	c := *s
	c.Notes = append([]NoteSpec(nil), s.Notes...)
	return &c
}

// Add inserts a note, keeping the catalog sorted.
func (s *Song) Add(n NoteSpec) {
	if s.Lanes < 1 {
		s.Lanes = 1
	}
	s.Notes = append(s.Notes, s.normalizeNote(n))
	s.sort()
}

func (s *Song) normalizeNote(n NoteSpec) NoteSpec {
	n.Key1 = NewKey(string(n.Key1))
	n.Key2 = NewKey(string(n.Key2))
	if n.Lane < 0 {
		n.Lane = 0
	} else if n.Lane > s.Lanes-1 {
		n.Lane = s.Lanes - 1
	}
	return n
}

func (s *Song) sort() {
	sort.SliceStable(s.Notes, func(i, j int) bool {
		return s.Notes[i].Time < s.Notes[j].Time
	})
}

// Sorted reports whether the notes are in ascending time order.
func (s *Song) Sorted() bool {
	return sort.SliceIsSorted(s.Notes, func(i, j int) bool {
		return s.Notes[i].Time < s.Notes[j].Time
	})
}

// Validate reports the first authoring error, wrapped around ErrInvalidSong.
func (s *Song) Validate() error {
	if s.Lanes < 1 {
		return errors.Wrapf(ErrInvalidSong, "%q has %d lanes", s.Name, s.Lanes)
	}
	if !s.Sorted() {
		return errors.Wrapf(ErrInvalidSong, "%q notes are not sorted by time", s.Name)
	}
	for i, n := range s.Notes {
		switch {
		case n.Time < 0:
			return errors.Wrapf(ErrInvalidSong, "note %d: negative time %v", i, n.Time)
		case n.Key1 == "":
			return errors.Wrapf(ErrInvalidSong, "note %d: missing key", i)
		case n.Kind == Double && n.Key2 == "":
			return errors.Wrapf(ErrInvalidSong, "note %d: double note needs a second key", i)
		case n.Kind == Single && n.Key2 != "":
			return errors.Wrapf(ErrInvalidSong, "note %d: single note has a second key %q", i, n.Key2)
		case n.Kind != Single && n.Kind != Double:
			return errors.Wrapf(ErrInvalidSong, "note %d: %v", i, n.Kind)
		case n.Lane < 0 || n.Lane >= s.Lanes:
			return errors.Wrapf(ErrInvalidSong, "note %d: lane %d outside [0, %d]", i, n.Lane, s.Lanes-1)
		}
	}
	return nil
}

// Length is the time of the last note, zero for an empty song.
func (s *Song) Length() time.Duration {
	if len(s.Notes) == 0 {
		return 0
	}
	return s.Notes[len(s.Notes)-1].Time
}

func (s *Song) DoubleCount() int {
	count := 0
	for _, n := range s.Notes {
		if n.Kind == Double {
			count++
		}
	}
	return count
}
