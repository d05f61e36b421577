package project

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/logicsim/sim"
)

// Scene errors.
var (
	// ErrUnknownComponent is returned for an ID not present in the scene.
	ErrUnknownComponent = errors.New("project: unknown component")

	// ErrUnknownPin is returned when a wire refers to a pin the component
	// does not have.
	ErrUnknownPin = errors.New("project: unknown pin")

	// ErrDuplicateID is returned when two components share an ID.
	ErrDuplicateID = errors.New("project: duplicate component id")

	// ErrSceneNotFound is returned for a scene name missing from a project.
	ErrSceneNotFound = errors.New("project: scene not found")
)

// Pin addresses one pin of a placed component.
type Pin struct {
	Component ID   `yaml:"component"`
	Output    bool `yaml:"output,omitempty"`
	Index     int  `yaml:"index"`
}

// Wire connects two pins.
type Wire struct {
	From Pin `yaml:"from"`
	To   Pin `yaml:"to"`
}

// Placed is a component placed on the grid.
type Placed struct {
	ID   ID       `yaml:"id"`
	Kind sim.Kind `yaml:"kind"`

	// X and Y are grid cell coordinates of the component origin.
	X int `yaml:"x"`
	Y int `yaml:"y"`

	// Rotation is a multiple of 90 degrees clockwise, 0..3.
	Rotation int    `yaml:"rotation,omitempty"`
	Label    string `yaml:"label,omitempty"`

	// Inputs overrides the input count of multi-input gates.
	Inputs int `yaml:"inputs,omitempty"`

	// On is the stored value of an Input component.
	On bool `yaml:"on,omitempty"`
}

// InputCount returns the number of input pins.
func (p *Placed) InputCount() int {
	lo, hi := p.Kind.InputRange()
	if p.Inputs > 0 && lo != hi {
		return p.Inputs
	}
	return lo
}

// OutputCount returns the number of output pins.
func (p *Placed) OutputCount() int {
	if n := p.Kind.Outputs(); n > 0 {
		return n
	}
	return 0
}

// HasPin reports whether pin belongs to the component pin set.
func (p *Placed) HasPin(pin Pin) bool {
	if pin.Component != p.ID || pin.Index < 0 {
		return false
	}
	if pin.Output {
		return pin.Index < p.OutputCount()
	}
	return pin.Index < p.InputCount()
}

// Scene is one editable circuit.
type Scene struct {
	Name       string   `yaml:"name"`
	Components []Placed `yaml:"components"`
	Wires      []Wire   `yaml:"wires"`

	// Seq feeds ID generation for new components.
	Seq uint64 `yaml:"seq"`
}

// NewScene returns an empty scene.
func NewScene(name string) *Scene {
	return &Scene{Name: name}
}

// Component returns the component with the given ID.
func (s *Scene) Component(id ID) (*Placed, bool) {
	for i := range s.Components {
		if s.Components[i].ID == id {
			return &s.Components[i], true
		}
	}
	return nil, false
}

// Add places a new component and returns its ID.
func (s *Scene) Add(kind sim.Kind, x, y int) ID {
	var id ID
	for {
		s.Seq++
		id = NewID(fmt.Sprintf("%s/%d", s.Name, s.Seq))
		if _, taken := s.Component(id); !taken {
			break
		}
	}
	s.Components = append(s.Components, Placed{ID: id, Kind: kind, X: x, Y: y})
	return id
}

// Remove deletes a component and every wire attached to it.
func (s *Scene) Remove(id ID) bool {
	i := slices.IndexFunc(s.Components, func(p Placed) bool { return p.ID == id })
	if i < 0 {
		return false
	}
	s.Components = slices.Delete(s.Components, i, i+1)
	s.Wires = slices.DeleteFunc(s.Wires, func(w Wire) bool {
		return w.From.Component == id || w.To.Component == id
	})
	return true
}

// Connect adds a wire between two existing pins. Connecting a pin to itself
// or repeating an existing wire is a no-op.
func (s *Scene) Connect(from, to Pin) error {
	for _, pin := range []Pin{from, to} {
		p, ok := s.Component(pin.Component)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownComponent, pin.Component)
		}
		if !p.HasPin(pin) {
			return fmt.Errorf("%w: %s %+v", ErrUnknownPin, p.Kind, pin)
		}
	}
	if from == to {
		return nil
	}
	for _, w := range s.Wires {
		if (w.From == from && w.To == to) || (w.From == to && w.To == from) {
			return nil
		}
	}
	s.Wires = append(s.Wires, Wire{From: from, To: to})
	return nil
}

// Disconnect removes every wire touching pin and returns how many were
// removed.
func (s *Scene) Disconnect(pin Pin) int {
	n := len(s.Wires)
	s.Wires = slices.DeleteFunc(s.Wires, func(w Wire) bool { return w.From == pin || w.To == pin })
	return n - len(s.Wires)
}

// Clone returns a deep copy of the scene.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Components = slices.Clone(s.Components)
	c.Wires = slices.Clone(s.Wires)
	return &c
}

// Project is a named collection of scenes.
type Project struct {
	Name   string   `yaml:"name"`
	Scenes []*Scene `yaml:"scenes"`
}

// New returns a project with one empty scene named "main".
func New(name string) *Project {
	return &Project{Name: name, Scenes: []*Scene{NewScene("main")}}
}

// Scene returns the named scene. An empty name selects the first scene.
func (p *Project) Scene(name string) (*Scene, error) {
	if name == "" && len(p.Scenes) > 0 {
		return p.Scenes[0], nil
	}
	for _, s := range p.Scenes {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in project %q", ErrSceneNotFound, name, p.Name)
}

// SceneNames lists the scenes in order.
func (p *Project) SceneNames() []string {
	names := make([]string, len(p.Scenes))
	for i, s := range p.Scenes {
		names[i] = s.Name
	}
	return names
}

// Marshal encodes the project as YAML.
func Marshal(p *Project) ([]byte, error) {
	return yaml.Marshal(p)
}

// Unmarshal decodes a YAML project.
func Unmarshal(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("project: decode: %w", err)
	}
	return &p, nil
}
