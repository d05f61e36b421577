// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import "github.com/gogpu/logicsim/draw"

// Event is an input event delivered by a Host. Concrete events are plain
// structs; consumers switch on the type.
type Event interface{}

// Button identifies a pointer button.
type Button uint8

// Pointer buttons.
const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonBack
	ButtonForward
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	}
	return "other"
}

// Key is a named, non-character key.
type Key uint8

// Named keys.
const (
	KeyUnknown Key = iota
	KeyShift
	KeyCommand
	KeyOption
	KeyBackspace
	KeyEnter
	KeyEsc
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyTab
	KeySpace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Hover reports the pointer position in screen pixels.
type Hover struct {
	Pos draw.Point
}

// Press reports a pointer button going down.
type Press struct {
	Pos    draw.Point
	Button Button
}

// Release reports a pointer button going up.
type Release struct {
	Pos    draw.Point
	Button Button
}

// Click is synthesized from a Press and a Release that are close in space
// and time. Pos is the press position.
type Click struct {
	Pos    draw.Point
	Button Button
}

// Scroll reports a wheel or touchpad scroll in pixels.
type Scroll struct {
	Delta draw.Point
}

// Zoom reports a pinch or magnify gesture around Pos. Delta is the relative
// scale change (0.1 zooms in by 10%).
type Zoom struct {
	Pos   draw.Point
	Delta float32
}

// KeyPress reports a named key going down.
type KeyPress struct {
	Key Key
}

// KeyRelease reports a named key going up.
type KeyRelease struct {
	Key Key
}

// Type reports one typed character.
type Type struct {
	Rune rune
}

// Paste delivers clipboard text.
type Paste struct {
	Text string
}

// Resize reports a new surface size in pixels.
type Resize struct {
	Width, Height int
}
