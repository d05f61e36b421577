package draw

import "github.com/chewxy/math32"

// Point is a 2D point or vector in pixels.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float32) Point { return Point{p.X * s, p.Y * s} }

// Len returns the length of p.
func (p Point) Len() float32 { return math32.Sqrt(p.X*p.X + p.Y*p.Y) }

// LenSq returns the squared length of p.
func (p Point) LenSq() float32 { return p.X*p.X + p.Y*p.Y }

// Normalize returns p scaled to unit length. The zero vector is returned
// unchanged.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return p
	}
	return Point{p.X / l, p.Y / l}
}

// Perp returns p rotated by 90 degrees.
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{p.X - (p.X-q.X)*t, p.Y - (p.Y-q.Y)*t}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// RectFromMinSize returns the rectangle at min with the given size.
func RectFromMinSize(min Point, w, h float32) Rect {
	return Rect{Min: min, Max: Point{min.X + w, min.Y + h}}
}

// RectFromCenter returns the rectangle centered at c with the given size.
func RectFromCenter(c Point, w, h float32) Rect {
	return Rect{Min: Point{c.X - w/2, c.Y - h/2}, Max: Point{c.X + w/2, c.Y + h/2}}
}

// Width returns the rectangle width.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the rectangle height.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Center returns the rectangle center.
func (r Rect) Center() Point { return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2} }

// TL returns the top-left corner.
func (r Rect) TL() Point { return r.Min }

// TR returns the top-right corner.
func (r Rect) TR() Point { return Point{r.Max.X, r.Min.Y} }

// BR returns the bottom-right corner.
func (r Rect) BR() Point { return r.Max }

// BL returns the bottom-left corner.
func (r Rect) BL() Point { return Point{r.Min.X, r.Max.Y} }

// Corners returns the corners in top-left, top-right, bottom-right,
// bottom-left order.
func (r Rect) Corners() [4]Point {
	return [4]Point{r.TL(), r.TR(), r.BR(), r.BL()}
}

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float32) Rect {
	return Rect{Min: Point{r.Min.X + d, r.Min.Y + d}, Max: Point{r.Max.X - d, r.Max.Y - d}}
}

// Union returns the smallest rectangle containing r and p.
func (r Rect) Union(p Point) Rect {
	return Rect{
		Min: Point{math32.Min(r.Min.X, p.X), math32.Min(r.Min.Y, p.Y)},
		Max: Point{math32.Max(r.Max.X, p.X), math32.Max(r.Max.Y, p.Y)},
	}
}

// Transform is a uniform scale followed by a translation. It maps world
// coordinates (the circuit grid) to screen pixels.
type Transform struct {
	Scale  float32
	Offset Point
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{Scale: 1}

// Apply maps p through the transform.
func (t Transform) Apply(p Point) Point {
	return Point{p.X*t.Scale + t.Offset.X, p.Y*t.Scale + t.Offset.Y}
}

// Invert maps a transformed point back.
func (t Transform) Invert(p Point) Point {
	return Point{(p.X - t.Offset.X) / t.Scale, (p.Y - t.Offset.Y) / t.Scale}
}
