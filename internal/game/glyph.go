package game

// Glyphs describes the key glyphs drawn on a note. A single note carries one
// glyph on its centre, a double note carries key1 ahead of the centre (towards
// the hit line) and key2 behind it, Spacing apart.
type Glyphs struct {
	Width, Height float64
	Spacing       float64
}

// Active returns the bounds of the glyph that must currently be hit.
// dir is the direction of travel along X, +1 or -1.
func (g Glyphs) Active(n *LiveNote, dir float64) Rect {
	c := n.Pos
	if n.Kind == Double {
		if n.FirstKeyHit {
			c.X -= dir * g.Spacing / 2
		} else {
			c.X += dir * g.Spacing / 2
		}
	}
	return RectAround(c, g.Width, g.Height)
}

// HalfExtent is half the width of the whole note along the scroll axis.
func (g Glyphs) HalfExtent(k Kind) float64 {
	if k == Double {
		return g.Spacing/2 + g.Width/2
	}
	return g.Width / 2
}
