package atlas

import (
	"errors"
	"testing"
)

func TestNewDefault(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Size() != DefaultSize {
		t.Errorf("Size = %d, want %d", a.Size(), DefaultSize)
	}
	b := a.Image().Bounds()
	if b.Dx() != DefaultSize || b.Dy() != DefaultSize {
		t.Errorf("image bounds = %v, want square %d", b, DefaultSize)
	}
}

func TestWhiteBlockSamplesOpaqueWhite(t *testing.T) {
	a := MustNew()
	uv := a.WhiteUV()
	s := float32(a.Size())
	got := a.Sample(float32(uv[0])/s, float32(uv[1])/s)
	if got != [4]float32{1, 1, 1, 1} {
		t.Errorf("white texel = %v, want (1, 1, 1, 1)", got)
	}
	if w := a.White(); w.W != 2 || w.H != 2 {
		t.Errorf("white block %dx%d, want 2x2", w.W, w.H)
	}
	for _, c := range a.White().Corners() {
		if c[0] > whiteBlock || c[1] > whiteBlock {
			t.Errorf("white corner %v outside white block", c)
		}
	}
}

func TestGlyphsCoverPrintableASCII(t *testing.T) {
	a := MustNew()
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		g, ok := a.Glyph(r)
		if !ok {
			t.Fatalf("missing glyph %q", r)
		}
		if g.Rect.X+g.Rect.W > a.Size() || g.Rect.Y+g.Rect.H > a.Size() {
			t.Errorf("glyph %q rect %+v outside atlas", r, g.Rect)
		}
	}
	if _, ok := a.Glyph('é'); ok {
		t.Error("non-ASCII glyph should be absent")
	}
}

func TestGlyphHasCoverage(t *testing.T) {
	a := MustNew()
	g, _ := a.Glyph('M')
	img := a.Image()
	var covered int
	for y := g.Rect.Y; y < g.Rect.Y+g.Rect.H; y++ {
		for x := g.Rect.X; x < g.Rect.X+g.Rect.W; x++ {
			c := img.RGBAAt(int(x), int(y))
			if c.A > 0 {
				covered++
				if c.R != c.A || c.G != c.A || c.B != c.A {
					t.Fatalf("glyph texel %v is not premultiplied white", c)
				}
			}
		}
	}
	if covered == 0 {
		t.Error("glyph 'M' has no coverage")
	}
}

func TestMeasure(t *testing.T) {
	a := MustNew()
	w, h := a.Measure("abc")
	if w != 21 || h != 13 {
		t.Errorf("Measure(abc) = (%v, %v), want (21, 13)", w, h)
	}
	fw, _ := a.Measure("é")
	qw, _ := a.Measure("?")
	if fw != qw {
		t.Errorf("unknown rune width = %v, want fallback %v", fw, qw)
	}
}

func TestSampleClampsToEdge(t *testing.T) {
	a := MustNew()
	if got := a.Sample(-1, -1); got != [4]float32{1, 1, 1, 1} {
		t.Errorf("Sample(-1,-1) = %v, want white corner texel", got)
	}
	// Bottom-right corner texel is never written.
	if got := a.Sample(2, 2); got != [4]float32{} {
		t.Errorf("Sample(2,2) = %v, want transparent", got)
	}
}

func TestAtlasTooSmall(t *testing.T) {
	if _, err := New(WithSize(16)); !errors.Is(err, ErrAtlasFull) {
		t.Errorf("New(16) error = %v, want ErrAtlasFull", err)
	}
	if _, err := New(WithSize(0)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("New(0) error = %v, want ErrInvalidSize", err)
	}
}
