// Package atlas builds the square RGBA font/icon atlas bound at slot 1 of
// the UI pipeline.
//
// The atlas always starts with a small fully white block used for solid
// fills, followed by one cell per printable ASCII glyph rasterized from a
// golang.org/x/image font face. All coordinates are integer texels.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Errors returned by New.
var (
	// ErrAtlasFull is returned when the glyphs do not fit in the atlas.
	ErrAtlasFull = errors.New("atlas: glyphs do not fit")

	// ErrInvalidSize is returned for a non-positive atlas size.
	ErrInvalidSize = errors.New("atlas: invalid size")
)

// DefaultSize is the default atlas edge length in texels.
const DefaultSize = 256

// whiteBlock is the edge length of the white block at texel (0, 0).
const whiteBlock = 2

// glyphPadding separates glyph cells so that filtering never bleeds.
const glyphPadding = 1

// firstGlyph and lastGlyph bound the rasterized rune range.
const (
	firstGlyph = ' '
	lastGlyph  = '~'
)

// TexRect is a rectangle of texels.
type TexRect struct {
	X, Y, W, H uint32
}

// Corners returns the texel coordinates of the top-left, top-right,
// bottom-right and bottom-left corners.
func (r TexRect) Corners() [4][2]uint32 {
	return [4][2]uint32{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
	}
}

// Center returns the texel coordinate of the rectangle center.
func (r TexRect) Center() [2]uint32 {
	return [2]uint32{r.X + r.W/2, r.Y + r.H/2}
}

// Glyph describes one rasterized rune.
type Glyph struct {
	// Rect is the glyph cell in the atlas.
	Rect TexRect

	// Advance is the horizontal pen advance in pixels at scale 1.
	Advance float32
}

// Atlas is an immutable font/icon texture.
type Atlas struct {
	img        *image.RGBA
	size       uint32
	white      TexRect
	glyphs     map[rune]Glyph
	lineHeight float32
}

type config struct {
	size int
	face font.Face
}

// Option configures New.
type Option func(*config)

// WithSize sets the atlas edge length in texels.
func WithSize(size int) Option {
	return func(c *config) { c.size = size }
}

// WithFace sets the font face used for glyphs. The default is
// basicfont.Face7x13.
func WithFace(face font.Face) Option {
	return func(c *config) { c.face = face }
}

// New rasterizes the atlas.
func New(opts ...Option) (*Atlas, error) {
	cfg := config{size: DefaultSize, face: basicfont.Face7x13}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, cfg.size)
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.size, cfg.size))
	a := &Atlas{
		img:    img,
		size:   uint32(cfg.size), //nolint:gosec // checked positive above
		white:  TexRect{W: whiteBlock, H: whiteBlock},
		glyphs: make(map[rune]Glyph, lastGlyph-firstGlyph+1),
	}
	for y := 0; y < whiteBlock; y++ {
		for x := 0; x < whiteBlock; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
		}
	}

	metrics := cfg.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	cellH := ascent + metrics.Descent.Ceil()
	a.lineHeight = float32(cellH)

	p := shelfPacker{size: cfg.size, x: whiteBlock + glyphPadding}
	p.rowH = whiteBlock
	mask := image.NewAlpha(img.Bounds())
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		adv, ok := cfg.face.GlyphAdvance(r)
		if !ok {
			continue
		}
		cellW := adv.Ceil()
		if cellW <= 0 {
			cellW = 1
		}
		x, y, ok := p.place(cellW, cellH)
		if !ok {
			return nil, fmt.Errorf("%w: rune %q in %dx%d", ErrAtlasFull, r, cfg.size, cfg.size)
		}
		d := font.Drawer{
			Dst:  mask,
			Src:  image.Opaque,
			Face: cfg.face,
			Dot:  fixed.P(x, y+ascent),
		}
		d.DrawString(string(r))
		a.glyphs[r] = Glyph{
			Rect:    TexRect{X: uint32(x), Y: uint32(y), W: uint32(cellW), H: uint32(cellH)}, //nolint:gosec // bounded by size
			Advance: float32(adv) / 64,
		}
	}

	// Glyph texels are premultiplied white: coverage in every channel.
	for i, cov := range mask.Pix {
		if cov == 0 {
			continue
		}
		o := i * 4
		img.Pix[o+0] = cov
		img.Pix[o+1] = cov
		img.Pix[o+2] = cov
		img.Pix[o+3] = cov
	}
	return a, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Atlas {
	a, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Size returns the atlas edge length in texels.
func (a *Atlas) Size() uint32 { return a.size }

// White returns the fully white block used for untextured geometry.
func (a *Atlas) White() TexRect { return a.white }

// WhiteUV returns a texel coordinate inside the white block.
func (a *Atlas) WhiteUV() [2]uint32 { return a.white.Center() }

// Glyph returns the glyph for r.
func (a *Atlas) Glyph(r rune) (Glyph, bool) {
	g, ok := a.glyphs[r]
	return g, ok
}

// LineHeight returns the glyph cell height in pixels at scale 1.
func (a *Atlas) LineHeight() float32 { return a.lineHeight }

// Measure returns the size of s in pixels at scale 1. Runes without a glyph
// advance by the width of '?'.
func (a *Atlas) Measure(s string) (w, h float32) {
	fallback := a.glyphs['?']
	for _, r := range s {
		g, ok := a.glyphs[r]
		if !ok {
			g = fallback
		}
		w += g.Advance
	}
	return w, a.lineHeight
}

// Image returns the atlas pixels (premultiplied RGBA). Callers must not
// modify it.
func (a *Atlas) Image() *image.RGBA { return a.img }

// Sample returns the texel at normalized coordinate (u, v) with nearest
// filtering and clamp-to-edge addressing. Channels are premultiplied and
// in [0, 1].
func (a *Atlas) Sample(u, v float32) [4]float32 {
	x := clampTexel(u, a.size)
	y := clampTexel(v, a.size)
	o := y*a.img.Stride + x*4
	px := a.img.Pix[o : o+4 : o+4]
	return [4]float32{
		float32(px[0]) / 255,
		float32(px[1]) / 255,
		float32(px[2]) / 255,
		float32(px[3]) / 255,
	}
}

func clampTexel(t float32, size uint32) int {
	f := math.Floor(float64(t) * float64(size))
	switch {
	case f < 0 || math.IsNaN(f):
		return 0
	case f >= float64(size):
		return int(size) - 1
	}
	return int(f)
}

// shelfPacker places rectangles left to right in rows.
type shelfPacker struct {
	size int
	x, y int
	rowH int
}

func (p *shelfPacker) place(w, h int) (int, int, bool) {
	if p.x+w > p.size {
		p.y += p.rowH + glyphPadding
		p.x = 0
		p.rowH = 0
	}
	if p.x+w > p.size || p.y+h > p.size {
		return 0, 0, false
	}
	x, y := p.x, p.y
	p.x += w + glyphPadding
	if h > p.rowH {
		p.rowH = h
	}
	return x, y, true
}
