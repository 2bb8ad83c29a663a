package score

// Tally counts judgements for the running session. Nothing here is persisted.
type Tally struct {
	Hits    int // Completed notes
	Partial int // First keys of double notes
	Misses  int
	Presses int // Every press, consumed or not
	Stray   int // Presses that hit nothing
}

func (t *Tally) Record(o Outcome) {
	t.Presses++
	switch o {
	case NoMatch:
		t.Stray++
	case HitFirst:
		t.Partial++
	case HitSecond, HitComplete:
		t.Hits++
	}
}

func (t *Tally) Miss() {
	t.Misses++
}

// Judged is the number of notes that have been resolved either way.
func (t *Tally) Judged() int {
	return t.Hits + t.Misses
}

// Accuracy is the fraction of resolved notes that were hit, 1 before anything resolved.
func (t *Tally) Accuracy() float64 {
	if t.Judged() == 0 {
		return 1
	}
	return float64(t.Hits) / float64(t.Judged())
}
