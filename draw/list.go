// Package draw builds the per-frame draw list consumed by the UI pipeline.
//
// A List accumulates screen-space vertices and u32 indices. Shapes are
// expressed in world coordinates and mapped through the list Transform as
// they are pushed, so the camera never touches the pipeline.
package draw

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/logicsim/atlas"
	"github.com/gogpu/logicsim/pipeline"
)

// TexCoords holds atlas texel coordinates for the corners of a quad in
// top-left, top-right, bottom-right, bottom-left order. Triangles use the
// first three.
type TexCoords [4][2]uint32

// Solid returns texture coordinates that all point into the white block.
func Solid(a *atlas.Atlas) TexCoords {
	uv := a.WhiteUV()
	return TexCoords{uv, uv, uv, uv}
}

// FromRect returns the corner texel coordinates of r.
func FromRect(r atlas.TexRect) TexCoords {
	return TexCoords(r.Corners())
}

// List is a draw list: vertices, u32 indices, bounds and the transform
// applied to pushed geometry.
//
// List is NOT safe for concurrent use.
type List struct {
	// Transform maps pushed points to screen pixels.
	Transform Transform

	Vertices []pipeline.Vertex
	Indices  []uint32

	bounds    Rect
	hasBounds bool

	atlas *atlas.Atlas
	solid TexCoords
}

// NewList returns an empty list drawing with atlas a.
func NewList(a *atlas.Atlas) *List {
	return &List{
		Transform: Identity,
		atlas:     a,
		solid:     Solid(a),
	}
}

// Atlas returns the atlas the list draws with.
func (l *List) Atlas() *atlas.Atlas { return l.atlas }

// Clear drops all geometry but keeps the allocated capacity and transform.
func (l *List) Clear() {
	l.Vertices = l.Vertices[:0]
	l.Indices = l.Indices[:0]
	l.bounds = Rect{}
	l.hasBounds = false
}

// Len returns the number of indices (three per triangle).
func (l *List) Len() int { return len(l.Indices) }

// Bounds returns the screen-space bounds of the pushed geometry and false
// if the list is empty.
func (l *List) Bounds() (Rect, bool) { return l.bounds, l.hasBounds }

// Append copies the geometry of other into l. Vertices of other are already
// in screen space and are not transformed again.
func (l *List) Append(other *List) {
	base := uint32(len(l.Vertices)) //nolint:gosec // vertex count fits uint32
	l.Vertices = append(l.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		l.Indices = append(l.Indices, base+idx)
	}
	if b, ok := other.Bounds(); ok {
		l.expand(b.Min)
		l.expand(b.Max)
	}
}

func (l *List) expand(p Point) {
	if !l.hasBounds {
		l.bounds = Rect{Min: p, Max: p}
		l.hasBounds = true
		return
	}
	l.bounds = l.bounds.Union(p)
}

func (l *List) push(p Point, uv [2]uint32, c pipeline.Color) {
	s := l.Transform.Apply(p)
	l.expand(s)
	l.Vertices = append(l.Vertices, pipeline.Vertex{
		Pos:   [2]float32{s.X, s.Y},
		UV:    uv,
		Color: c,
	})
}

// Tri pushes one triangle.
func (l *List) Tri(points [3]Point, tex TexCoords, c pipeline.Color) {
	i := uint32(len(l.Vertices)) //nolint:gosec // vertex count fits uint32
	for k, p := range points {
		l.push(p, tex[k], c)
	}
	l.Indices = append(l.Indices, i, i+1, i+2)
}

// Quad pushes a quad as two triangles. Points are in corner order matching
// tex.
func (l *List) Quad(points [4]Point, tex TexCoords, c pipeline.Color) {
	i := uint32(len(l.Vertices)) //nolint:gosec // vertex count fits uint32
	for k, p := range points {
		l.push(p, tex[k], c)
	}
	l.Indices = append(l.Indices, i, i+1, i+2, i, i+2, i+3)
}

// Rect pushes a textured rectangle.
func (l *List) Rect(r Rect, tex TexCoords, c pipeline.Color) {
	l.Quad(r.Corners(), tex, c)
}

// FillRect pushes a solid rectangle.
func (l *List) FillRect(r Rect, c pipeline.Color) {
	l.Quad(r.Corners(), l.solid, c)
}

// Line pushes a solid segment of width w from a to b. Degenerate segments
// are skipped.
func (l *List) Line(a, b Point, w float32, c pipeline.Color) {
	d := b.Sub(a)
	if d.LenSq() == 0 {
		return
	}
	p := d.Perp().Normalize().Mul(w * 0.5)
	l.Quad([4]Point{
		b.Sub(p),
		b.Add(p),
		a.Add(p),
		a.Sub(p),
	}, l.solid, c)
}

// Polyline pushes connected segments through points.
func (l *List) Polyline(points []Point, w float32, c pipeline.Color) {
	for i := 1; i < len(points); i++ {
		l.Line(points[i-1], points[i], w, c)
	}
}

// Curve pushes a quadratic Bezier from a to b with control point ctrl,
// flattened into detail segments.
func (l *List) Curve(a, ctrl, b Point, detail int, w float32, c pipeline.Color) {
	prev := a
	for step := 1; step <= detail; step++ {
		t := float32(step) / float32(detail)
		p := lerpQuad(a, ctrl, b, t)
		l.Line(prev, p, w, c)
		prev = p
	}
}

// CubicCurve pushes a cubic Bezier flattened into detail segments.
func (l *List) CubicCurve(a, c0, c1, b Point, detail int, w float32, c pipeline.Color) {
	prev := a
	for step := 1; step <= detail; step++ {
		t := float32(step) / float32(detail)
		p := lerpCube(a, c0, c1, b, t)
		l.Line(prev, p, w, c)
		prev = p
	}
}

// Circle pushes a filled circle as a triangle fan of detail segments.
func (l *List) Circle(center Point, r float32, detail int, c pipeline.Color) {
	l.CircleSection(center, r, detail, 0, 1, c)
}

// CircleOutline pushes a circle outline of width w.
func (l *List) CircleOutline(center Point, r, w float32, detail int, c pipeline.Color) {
	l.CircleOutlineSection(center, r, w, detail, 0, 1, c)
}

// CircleSection pushes a filled pie slice. from and to are fractions of a
// full turn; angle 0 points down (+y) and increases toward +x.
func (l *List) CircleSection(center Point, r float32, detail int, from, to float32, c pipeline.Color) {
	prev := arcPoint(center, r, from)
	span := to - from
	for step := 1; step <= detail; step++ {
		p := arcPoint(center, r, from+span*float32(step)/float32(detail))
		l.Tri([3]Point{prev, p, center}, l.solid, c)
		prev = p
	}
}

// CircleOutlineSection pushes an arc of width w.
func (l *List) CircleOutlineSection(center Point, r, w float32, detail int, from, to float32, c pipeline.Color) {
	prev := arcPoint(center, r, from)
	span := to - from
	for step := 1; step <= detail; step++ {
		p := arcPoint(center, r, from+span*float32(step)/float32(detail))
		l.Line(prev, p, w, c)
		prev = p
	}
}

// RectOutline pushes the four edges of r with width w.
func (l *List) RectOutline(r Rect, w float32, c pipeline.Color) {
	l.Line(r.TL(), r.TR(), w, c)
	l.Line(r.TR(), r.BR(), w, c)
	l.Line(r.BL(), r.BR(), w, c)
	l.Line(r.TL(), r.BL(), w, c)
}

// RoundedRect pushes a filled rectangle with corner radius rad.
func (l *List) RoundedRect(r Rect, rad float32, detail int, c pipeline.Color) {
	rad = clampRadius(r, rad)
	if rad == 0 {
		l.FillRect(r, c)
		return
	}
	inner := r.Inset(rad)
	l.FillRect(inner, c)
	l.FillRect(Rect{Min: Point{r.Min.X, inner.Min.Y}, Max: inner.BL()}, c)
	l.FillRect(Rect{Min: Point{inner.Min.X, r.Min.Y}, Max: inner.TR()}, c)
	l.FillRect(Rect{Min: inner.TR(), Max: Point{r.Max.X, inner.Max.Y}}, c)
	l.FillRect(Rect{Min: inner.BL(), Max: Point{inner.Max.X, r.Max.Y}}, c)

	l.CircleSection(inner.TL(), rad, detail, 0.50, 0.75, c)
	l.CircleSection(inner.TR(), rad, detail, 0.25, 0.50, c)
	l.CircleSection(inner.BR(), rad, detail, 0.00, 0.25, c)
	l.CircleSection(inner.BL(), rad, detail, 0.75, 1.00, c)
}

// RoundedRectOutline pushes the outline of a rounded rectangle.
func (l *List) RoundedRectOutline(r Rect, w, rad float32, detail int, c pipeline.Color) {
	rad = clampRadius(r, rad)
	if rad == 0 {
		l.RectOutline(r, w, c)
		return
	}
	inner := r.Inset(rad)
	l.CircleOutlineSection(inner.TL(), rad, w, detail, 0.50, 0.75, c)
	l.CircleOutlineSection(inner.TR(), rad, w, detail, 0.25, 0.50, c)
	l.CircleOutlineSection(inner.BR(), rad, w, detail, 0.00, 0.25, c)
	l.CircleOutlineSection(inner.BL(), rad, w, detail, 0.75, 1.00, c)
	l.Line(Point{inner.Min.X, r.Min.Y}, Point{inner.Max.X, r.Min.Y}, w, c)
	l.Line(Point{r.Max.X, inner.Min.Y}, Point{r.Max.X, inner.Max.Y}, w, c)
	l.Line(Point{inner.Min.X, r.Max.Y}, Point{inner.Max.X, r.Max.Y}, w, c)
	l.Line(Point{r.Min.X, inner.Min.Y}, Point{r.Min.X, inner.Max.Y}, w, c)
}

// Text pushes one quad per glyph of s with its top-left corner at pos and
// returns the advance width in world units. Runes missing from the atlas
// are drawn as '?'.
func (l *List) Text(pos Point, s string, scale float32, c pipeline.Color) float32 {
	x := pos.X
	fallback, _ := l.atlas.Glyph('?')
	for _, r := range s {
		g, ok := l.atlas.Glyph(r)
		if !ok {
			g = fallback
		}
		if r != ' ' {
			cell := RectFromMinSize(Point{x, pos.Y}, float32(g.Rect.W)*scale, float32(g.Rect.H)*scale)
			l.Rect(cell, FromRect(g.Rect), c)
		}
		x += g.Advance * scale
	}
	return x - pos.X
}

// TextCentered draws s centered on center.
func (l *List) TextCentered(center Point, s string, scale float32, c pipeline.Color) {
	w, h := l.atlas.Measure(s)
	l.Text(Point{center.X - w*scale/2, center.Y - h*scale/2}, s, scale, c)
}

func clampRadius(r Rect, rad float32) float32 {
	limit := math32.Min(r.Width(), r.Height()) / 2
	if rad > limit {
		rad = limit
	}
	if rad < 0 {
		rad = 0
	}
	return rad
}

func arcPoint(center Point, r, turn float32) Point {
	angle := turn * 2 * math32.Pi
	return Point{center.X + math32.Sin(angle)*r, center.Y + math32.Cos(angle)*r}
}

func lerpQuad(p0, p1, p2 Point, t float32) Point {
	return p0.Lerp(p1, t).Lerp(p1.Lerp(p2, t), t)
}

func lerpCube(p0, p1, p2, p3 Point, t float32) Point {
	return lerpQuad(p0, p1, p2, t).Lerp(lerpQuad(p1, p2, p3, t), t)
}
