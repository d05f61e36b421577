package project

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/logicsim/pipeline"
	"github.com/gogpu/logicsim/sim"
)

// Theme holds the UI colors. Colors are straight (not premultiplied)
// 0xRRGGBBAA values written as "#RRGGBBAA".
type Theme struct {
	Background pipeline.Color `toml:"background"`
	Grid       pipeline.Color `toml:"grid"`
	Body       pipeline.Color `toml:"body"`
	Outline    pipeline.Color `toml:"outline"`
	Text       pipeline.Color `toml:"text"`
	WireOn     pipeline.Color `toml:"wire_on"`
	WireOff    pipeline.Color `toml:"wire_off"`
	WireFloat  pipeline.Color `toml:"wire_float"`
	Selection  pipeline.Color `toml:"selection"`
	Panel      pipeline.Color `toml:"panel"`
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background: pipeline.Hex("#1E1F24"),
		Grid:       pipeline.Hex("#3A3C44"),
		Body:       pipeline.Hex("#2C2F38"),
		Outline:    pipeline.Hex("#9AA0AE"),
		Text:       pipeline.Hex("#E8E8EC"),
		WireOn:     pipeline.Hex("#3DDC5A"),
		WireOff:    pipeline.Hex("#1F5A2A"),
		WireFloat:  pipeline.Hex("#7A7A7A"),
		Selection:  pipeline.Hex("#F2B33D"),
		Panel:      pipeline.Hex("#15161A"),
	}
}

// Settings are the user preferences persisted between sessions.
type Settings struct {
	// ScaleFactor multiplies UI sizes for high density displays.
	ScaleFactor float32 `toml:"scale_factor"`

	// StepsPerFrame is the number of simulation steps run per rendered frame.
	StepsPerFrame int `toml:"steps_per_frame"`

	// HalfPeriod is the number of steps between clock edges.
	HalfPeriod int `toml:"half_period"`

	// Workers is the number of goroutines evaluating each step.
	Workers int `toml:"workers"`

	// LastProject and LastScene reopen the previous session.
	LastProject string `toml:"last_project,omitempty"`
	LastScene   string `toml:"last_scene,omitempty"`

	Theme Theme `toml:"theme"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{
		ScaleFactor:   1,
		StepsPerFrame: 1,
		HalfPeriod:    sim.DefaultHalfPeriod,
		Workers:       1,
		Theme:         DefaultTheme(),
	}
}

// Normalize replaces out of range values with defaults.
func (s *Settings) Normalize() {
	d := DefaultSettings()
	if s.ScaleFactor <= 0 || s.ScaleFactor > 8 {
		s.ScaleFactor = d.ScaleFactor
	}
	if s.StepsPerFrame < 0 {
		s.StepsPerFrame = d.StepsPerFrame
	}
	if s.HalfPeriod < 1 {
		s.HalfPeriod = d.HalfPeriod
	}
	if s.Workers < 1 {
		s.Workers = d.Workers
	}
}

// SimOptions returns the simulation options implied by the settings.
func (s Settings) SimOptions() []sim.Option {
	return []sim.Option{sim.WithHalfPeriod(s.HalfPeriod), sim.WithWorkers(s.Workers)}
}

// MarshalSettings encodes s as TOML.
func MarshalSettings(s Settings) ([]byte, error) {
	return toml.Marshal(s)
}

// UnmarshalSettings decodes TOML into settings. Keys missing from data keep
// their default values.
func UnmarshalSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), err
	}
	s.Normalize()
	return s, nil
}
