package app

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/logicsim/draw"
)

// CellSize is the size of one grid cell in pixels at zoom 1.
const CellSize = 16

// Zoom limits.
const (
	MinZoom = 0.25
	MaxZoom = 8
)

// Camera maps world coordinates (grid cells) to screen pixels.
type Camera struct {
	// Offset is the screen position of the world origin.
	Offset draw.Point

	// Zoom multiplies CellSize.
	Zoom float32

	// Scale is the display scale factor.
	Scale float32
}

// NewCamera returns a camera at zoom 1 with the world origin at offset.
func NewCamera(offset draw.Point, scale float32) Camera {
	if scale <= 0 {
		scale = 1
	}
	return Camera{Offset: offset, Zoom: 1, Scale: scale}
}

// Transform returns the world to screen transform.
func (c Camera) Transform() draw.Transform {
	return draw.Transform{Scale: c.Zoom * c.Scale * CellSize, Offset: c.Offset}
}

// ToWorld maps a screen position to world coordinates.
func (c Camera) ToWorld(p draw.Point) draw.Point {
	return c.Transform().Invert(p)
}

// ToScreen maps a world position to screen pixels.
func (c Camera) ToScreen(p draw.Point) draw.Point {
	return c.Transform().Apply(p)
}

// Pan moves the view by a screen-space delta.
func (c *Camera) Pan(d draw.Point) {
	c.Offset = c.Offset.Add(d)
}

// ZoomAt multiplies the zoom by factor keeping the world point under the
// screen position p fixed. The zoom is clamped to [MinZoom, MaxZoom].
func (c *Camera) ZoomAt(p draw.Point, factor float32) {
	if factor <= 0 {
		return
	}
	anchor := c.ToWorld(p)
	c.Zoom = math32.Max(MinZoom, math32.Min(MaxZoom, c.Zoom*factor))
	moved := c.ToScreen(anchor)
	c.Offset = c.Offset.Add(p.Sub(moved))
}

// Snap rounds a world position to the nearest grid cell.
func Snap(p draw.Point) (x, y int) {
	return int(math32.Round(p.X)), int(math32.Round(p.Y))
}
