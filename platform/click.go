// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import "time"

// Click synthesis limits.
const (
	// ClickMaxDistSq is the exclusive bound on the squared pointer travel
	// between press and release.
	ClickMaxDistSq = 5

	// ClickMaxDuration is the exclusive bound on the press duration.
	ClickMaxDuration = 2 * time.Second
)

// ClickDetector turns Press/Release pairs into Click events: same button,
// squared distance below ClickMaxDistSq, released within ClickMaxDuration.
//
// The zero value is ready to use.
type ClickDetector struct {
	pressed bool
	press   Press
	at      time.Time
}

// Process passes ev through and appends a Click before a qualifying
// Release. now is the time ev happened.
func (d *ClickDetector) Process(dst []Event, ev Event, now time.Time) []Event {
	switch e := ev.(type) {
	case Press:
		d.pressed = true
		d.press = e
		d.at = now
	case Release:
		if d.pressed {
			if click, ok := d.check(e, now); ok {
				dst = append(dst, click)
			}
			d.pressed = false
		}
	}
	return append(dst, ev)
}

func (d *ClickDetector) check(r Release, now time.Time) (Click, bool) {
	if r.Button != d.press.Button {
		return Click{}, false
	}
	if r.Pos.Sub(d.press.Pos).LenSq() >= ClickMaxDistSq {
		return Click{}, false
	}
	if now.Sub(d.at) >= ClickMaxDuration {
		return Click{}, false
	}
	return Click{Pos: d.press.Pos, Button: r.Button}, true
}
