// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/logicsim/atlas"
	"github.com/gogpu/logicsim/draw"
	"github.com/gogpu/logicsim/pipeline"
)

func setup(t *testing.T, w, h int) (*image.RGBA, *draw.List, pipeline.Locals) {
	t.Helper()
	a := atlas.MustNew()
	return image.NewRGBA(image.Rect(0, 0, w, h)),
		draw.NewList(a),
		pipeline.NewLocals(float32(w), float32(h), a.Size())
}

func TestWhiteQuadCoverage(t *testing.T) {
	dst, list, locals := setup(t, 40, 30)
	list.FillRect(draw.Rect{Min: draw.Pt(10, 10), Max: draw.Pt(20, 20)}, pipeline.White)

	if err := Render(dst, list, locals, list.Atlas()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			inside := x >= 10 && x < 20 && y >= 10 && y < 20
			got := At(dst, x, y)
			switch {
			case inside && got != pipeline.White:
				t.Fatalf("pixel (%d,%d) = %s, want white", x, y, got)
			case !inside && got != pipeline.Transparent:
				t.Fatalf("pixel (%d,%d) = %s, want transparent", x, y, got)
			}
		}
	}
}

func TestSharedEdgeCoveredOnce(t *testing.T) {
	dst, list, locals := setup(t, 16, 16)
	half := pipeline.Pack(128, 128, 128, 128)
	list.FillRect(draw.Rect{Min: draw.Pt(0, 0), Max: draw.Pt(8, 8)}, half)

	if err := Render(dst, list, locals, list.Atlas()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := At(dst, x, y); got != half {
				t.Fatalf("pixel (%d,%d) = %s, want %s", x, y, got, half)
			}
		}
	}
}

func TestWindingIndependent(t *testing.T) {
	a := atlas.MustNew()
	locals := pipeline.NewLocals(8, 8, a.Size())
	uv := a.WhiteUV()
	cw := []pipeline.Vertex{
		pipeline.V(0, 0, uv[0], uv[1], pipeline.Red),
		pipeline.V(8, 0, uv[0], uv[1], pipeline.Red),
		pipeline.V(0, 8, uv[0], uv[1], pipeline.Red),
	}

	r := New()
	defer r.Close()
	d1 := image.NewRGBA(image.Rect(0, 0, 8, 8))
	d2 := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if err := r.RenderMesh(d1, cw, []uint32{0, 1, 2}, locals, a); err != nil {
		t.Fatal(err)
	}
	if err := r.RenderMesh(d2, cw, []uint32{0, 2, 1}, locals, a); err != nil {
		t.Fatal(err)
	}
	if string(d1.Pix) != string(d2.Pix) {
		t.Error("winding order changed the result")
	}
	if At(d1, 1, 1) != pipeline.Red {
		t.Errorf("pixel (1,1) = %s, want red", At(d1, 1, 1))
	}
}

func TestBlendOverPremultiplied(t *testing.T) {
	dst, list, locals := setup(t, 4, 4)
	Clear(dst, pipeline.Blue)
	list.FillRect(draw.Rect{Max: draw.Pt(4, 4)}, pipeline.Red.WithAlpha(255).Premultiply())
	list.FillRect(draw.Rect{Max: draw.Pt(4, 4)}, pipeline.Transparent)

	if err := Render(dst, list, locals, list.Atlas()); err != nil {
		t.Fatal(err)
	}
	if got := At(dst, 2, 2); got != pipeline.Red {
		t.Errorf("opaque red over blue = %s, want red", got)
	}
}

func TestGlyphTextured(t *testing.T) {
	dst, list, locals := setup(t, 32, 32)
	list.Text(draw.Pt(4, 4), "M", 1, pipeline.White)
	if err := Render(dst, list, locals, list.Atlas()); err != nil {
		t.Fatal(err)
	}
	var lit int
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if At(dst, x, y).A() > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("glyph produced no coverage")
	}
	if lit >= 7*13 {
		t.Errorf("glyph covered %d pixels, expected a partial cell", lit)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	a := atlas.MustNew()
	locals := pipeline.NewLocals(200, 150, a.Size())
	list := draw.NewList(a)
	list.Circle(draw.Pt(100, 75), 60, 32, pipeline.Green)
	list.RoundedRectOutline(draw.Rect{Min: draw.Pt(20, 20), Max: draw.Pt(180, 130)}, 3, 12, 6, pipeline.Hex("#FFAA00C0"))
	list.Text(draw.Pt(60, 70), "logic", 2, pipeline.White)

	serial := image.NewRGBA(image.Rect(0, 0, 200, 150))
	par := image.NewRGBA(image.Rect(0, 0, 200, 150))
	if err := Render(serial, list, locals, a); err != nil {
		t.Fatal(err)
	}
	if err := Render(par, list, locals, a, WithParallel(4)); err != nil {
		t.Fatal(err)
	}
	if string(serial.Pix) != string(par.Pix) {
		t.Error("parallel render differs from serial render")
	}
}

func TestIndexOutOfRange(t *testing.T) {
	a := atlas.MustNew()
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	err := New().RenderMesh(dst, []pipeline.Vertex{{}}, []uint32{0, 0, 3}, pipeline.NewLocals(4, 4, a.Size()), a)
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestClear(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 3, 2))
	Clear(dst, pipeline.Hex("#10203040"))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := At(dst, x, y); got != pipeline.Hex("#10203040") {
				t.Fatalf("pixel (%d,%d) = %s", x, y, got)
			}
		}
	}
}
