package game

import "math"

type Point struct {
	X, Y float64
}

// Rect is an axis aligned box, Min inclusive and Max exclusive for overlap tests.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func RectAround(c Point, width, height float64) Rect {
	return Rect{
		MinX: c.X - width/2,
		MinY: c.Y - height/2,
		MaxX: c.X + width/2,
		MaxY: c.Y + height/2,
	}
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Overlaps reports whether the interiors intersect. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX && r.MaxX > o.MinX && r.MinY < o.MaxY && r.MaxY > o.MinY
}

func (r Rect) Finite() bool {
	for _, v := range [...]float64{r.MinX, r.MinY, r.MaxX, r.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
