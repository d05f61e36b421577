package project

import (
	"fmt"

	"github.com/gogpu/logicsim/sim"
)

// Mapping relates scene elements to the compiled circuit.
type Mapping struct {
	// Components maps placed component IDs to circuit component ids.
	Components map[ID]sim.ComponentID

	pins   map[Pin]sim.NetID
	driven map[sim.NetID]bool
}

// Net returns the net a pin is connected to.
func (m Mapping) Net(p Pin) (sim.NetID, bool) {
	n, ok := m.pins[p]
	return n, ok
}

// Component returns the circuit id of a placed component.
func (m Mapping) Component(id ID) (sim.ComponentID, bool) {
	c, ok := m.Components[id]
	return c, ok
}

// Driven reports whether some component output drives net n.
func (m Mapping) Driven(n sim.NetID) bool {
	return m.driven[n]
}

// unionFind is a disjoint set over pin slots.
type unionFind []int

func newUnionFind(n int) unionFind {
	u := make(unionFind, n)
	for i := range u {
		u[i] = i
	}
	return u
}

func (u unionFind) find(i int) int {
	for u[i] != i {
		u[i] = u[u[i]]
		i = u[i]
	}
	return i
}

func (u unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u[rb] = ra
	}
}

// Compile turns the scene into a circuit. Pins joined by wires (directly or
// through other pins) share one net; unconnected pins get a net of their
// own. Input components start with their stored On value.
func (s *Scene) Compile(opts ...sim.Option) (*sim.Circuit, Mapping, error) {
	type slots struct {
		in, out int // first slot of inputs and outputs
	}
	index := make(map[ID]int, len(s.Components))
	offsets := make([]slots, len(s.Components))
	total := 0
	for i := range s.Components {
		p := &s.Components[i]
		if _, dup := index[p.ID]; dup {
			return nil, Mapping{}, fmt.Errorf("%w: %s in scene %q", ErrDuplicateID, p.ID, s.Name)
		}
		index[p.ID] = i
		offsets[i] = slots{in: total, out: total + p.InputCount()}
		total += p.InputCount() + p.OutputCount()
	}

	slot := func(pin Pin) (int, error) {
		i, ok := index[pin.Component]
		if !ok {
			return 0, fmt.Errorf("%w: %s in scene %q", ErrUnknownComponent, pin.Component, s.Name)
		}
		if !s.Components[i].HasPin(pin) {
			return 0, fmt.Errorf("%w: %+v in scene %q", ErrUnknownPin, pin, s.Name)
		}
		if pin.Output {
			return offsets[i].out + pin.Index, nil
		}
		return offsets[i].in + pin.Index, nil
	}

	uf := newUnionFind(total)
	for _, w := range s.Wires {
		a, err := slot(w.From)
		if err != nil {
			return nil, Mapping{}, err
		}
		b, err := slot(w.To)
		if err != nil {
			return nil, Mapping{}, err
		}
		uf.union(a, b)
	}

	b := sim.New(opts...)
	nets := make(map[int]sim.NetID, total)
	netOf := func(slot int) sim.NetID {
		root := uf.find(slot)
		n, ok := nets[root]
		if !ok {
			n = b.Net()
			nets[root] = n
		}
		return n
	}

	m := Mapping{
		Components: make(map[ID]sim.ComponentID, len(s.Components)),
		pins:       make(map[Pin]sim.NetID, total),
		driven:     make(map[sim.NetID]bool),
	}
	for i := range s.Components {
		p := &s.Components[i]
		inputs := make([]sim.NetID, p.InputCount())
		for k := range inputs {
			inputs[k] = netOf(offsets[i].in + k)
			m.pins[Pin{Component: p.ID, Index: k}] = inputs[k]
		}
		outputs := make([]sim.NetID, p.OutputCount())
		for k := range outputs {
			outputs[k] = netOf(offsets[i].out + k)
			m.pins[Pin{Component: p.ID, Output: true, Index: k}] = outputs[k]
			m.driven[outputs[k]] = true
		}
		m.Components[p.ID] = b.Add(p.Kind, inputs, outputs)
	}

	c, err := b.Build()
	if err != nil {
		return nil, Mapping{}, fmt.Errorf("project: compile scene %q: %w", s.Name, err)
	}
	for _, p := range s.Components {
		if p.Kind == sim.Input && p.On {
			_ = c.SetInput(m.Components[p.ID], true)
		}
	}
	return c, m, nil
}
