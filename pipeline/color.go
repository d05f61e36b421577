package pipeline

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrInvalidHex is returned when a color string is not "RRGGBB" or "RRGGBBAA".
var ErrInvalidHex = errors.New("pipeline: invalid hex color")

// Color is a packed 32-bit color with 8 bits per channel, red in the most
// significant byte and alpha in the least significant byte (0xRRGGBBAA).
type Color uint32

// Common colors.
const (
	Transparent Color = 0x00000000
	Black       Color = 0x000000FF
	White       Color = 0xFFFFFFFF
	Red         Color = 0xFF0000FF
	Green       Color = 0x00FF00FF
	Blue        Color = 0x0000FFFF
)

// Pack assembles a Color from 8-bit channels.
func Pack(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// PackFloat assembles a Color from channels in [0, 1]. Each channel is
// multiplied by 255, rounded to the nearest integer and clamped.
func PackFloat(c [4]float32) Color {
	return Pack(toByte(c[0]), toByte(c[1]), toByte(c[2]), toByte(c[3]))
}

func toByte(v float32) uint8 {
	f := math.Round(float64(v) * 255)
	switch {
	case f <= 0 || math.IsNaN(f):
		return 0
	case f >= 255:
		return 255
	}
	return uint8(f)
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 24) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 16) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c >> 8) }

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c) }

// Unpack expands the color to four channels in [0, 1], each byte divided
// by 255. This is the color part of the vertex stage.
func (c Color) Unpack() [4]float32 {
	return [4]float32{
		float32((c>>24)&0xFF) / 255,
		float32((c>>16)&0xFF) / 255,
		float32((c>>8)&0xFF) / 255,
		float32(c&0xFF) / 255,
	}
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	return c&^0xFF | Color(a)
}

// Premultiply returns c with the color channels multiplied by alpha.
// Draw lists carry premultiplied colors so that the fragment product can be
// blended with the premultiplied source-over operator.
func (c Color) Premultiply() Color {
	a := uint32(c.A())
	if a == 0xFF {
		return c
	}
	mul := func(v uint8) uint8 { return uint8((uint32(v)*a + 127) / 255) }
	return Pack(mul(c.R()), mul(c.G()), mul(c.B()), uint8(a))
}

// Lerp interpolates between c and other channel by channel.
func (c Color) Lerp(other Color, t float32) Color {
	a, b := c.Unpack(), other.Unpack()
	var out [4]float32
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return PackFloat(out)
}

// RGBA implements the color.Color interface. Channels are interpreted as
// already premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R())
	g = uint32(c.G())
	b = uint32(c.B())
	a = uint32(c.A())
	return r | r<<8, g | g<<8, b | b<<8, a | a<<8
}

// FromColor converts any color.Color to a packed premultiplied Color.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Pack(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
}

// String returns the color as "#RRGGBBAA".
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseHex parses "RRGGBB" or "RRGGBBAA", optionally prefixed with '#'.
func ParseHex(s string) (Color, error) {
	raw := s
	if s != "" && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 && len(s) != 8 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, raw)
	}
	var v uint32
	for i := 0; i < len(s); i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidHex, raw)
		}
		v = v<<4 | d
	}
	if len(s) == 6 {
		v = v<<8 | 0xFF
	}
	return Color(v), nil
}

// Hex parses "RRGGBB" or "RRGGBBAA" (optionally prefixed with '#').
// Malformed input yields opaque black.
func Hex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		return Black
	}
	return c
}

func hexDigit(c byte) (uint32, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint32(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return uint32(c-'A') + 10, true
	}
	return 0, false
}
