package sim

import (
	"github.com/pkg/errors"

	"github.com/gogpu/logicsim"
	"github.com/gogpu/logicsim/internal/parallel"
)

type component struct {
	kind    Kind
	inputs  []NetID
	outputs []NetID

	// state is the value of an Input or the Q bit of a flip-flop.
	state bool
	// clk is the clock level a flip-flop saw on its last evaluation.
	clk bool
}

// Circuit is a runnable circuit.
//
// A Circuit is NOT safe for concurrent use. Runner serializes access for
// callers that step it in the background.
type Circuit struct {
	comps  []component
	fanout [][]int32

	// cur is the current frame of net states. Evaluation writes next and
	// Step commits the written outputs back into cur.
	cur, next []bool

	dirty   *parallel.Bitset
	order   []int
	changed []NetID

	steps      uint64
	halfPeriod int
	pool       *parallel.Pool
}

// Close stops the worker goroutines, if any.
func (c *Circuit) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Len returns the number of components.
func (c *Circuit) Len() int { return len(c.comps) }

// NetCount returns the number of nets, constants included.
func (c *Circuit) NetCount() int { return len(c.cur) }

// HalfPeriod returns the number of steps between clock edges.
func (c *Circuit) HalfPeriod() int { return c.halfPeriod }

// Steps returns the number of steps executed since Build or Reset.
func (c *Circuit) Steps() uint64 { return c.steps }

// Kind returns the kind of component id, or Invalid.
func (c *Circuit) Kind(id ComponentID) Kind {
	if !c.valid(id) {
		return Invalid
	}
	return c.comps[id].kind
}

// Pins returns the input and output nets of component id. The slices must
// not be modified.
func (c *Circuit) Pins(id ComponentID) (inputs, outputs []NetID) {
	if !c.valid(id) {
		return nil, nil
	}
	return c.comps[id].inputs, c.comps[id].outputs
}

// Net returns the current state of net id. Unknown nets read false.
func (c *Circuit) Net(id NetID) bool {
	if id < 0 || int(id) >= len(c.cur) {
		return false
	}
	return c.cur[id]
}

// Output returns the value shown by component id: the input net of an
// Output component, the first output net of every other kind.
func (c *Circuit) Output(id ComponentID) bool {
	if !c.valid(id) {
		return false
	}
	comp := &c.comps[id]
	if comp.kind == Output {
		return c.cur[comp.inputs[0]]
	}
	return c.cur[comp.outputs[0]]
}

// SetInput sets the value of an Input component. The change reaches its
// output net on the next Step.
func (c *Circuit) SetInput(id ComponentID, v bool) error {
	if !c.valid(id) {
		return errors.Wrapf(ErrUnknownComponent, "id %d", id)
	}
	comp := &c.comps[id]
	if comp.kind != Input {
		return errors.Wrapf(ErrNotInput, "component %d is %s", id, comp.kind)
	}
	if comp.state != v {
		comp.state = v
		c.dirty.Set(int(id))
	}
	return nil
}

// Input returns the value set on an Input component.
func (c *Circuit) Input(id ComponentID) bool {
	if !c.valid(id) {
		return false
	}
	return c.comps[id].state
}

// Toggle flips the value of an Input component.
func (c *Circuit) Toggle(id ComponentID) error {
	if !c.valid(id) {
		return errors.Wrapf(ErrUnknownComponent, "id %d", id)
	}
	return c.SetInput(id, !c.comps[id].state)
}

// Changed returns the nets whose state changed during the last Step, in
// ascending driver order. The slice is reused by the next Step.
func (c *Circuit) Changed() []NetID { return c.changed }

// Stable reports whether the next Step would evaluate nothing.
func (c *Circuit) Stable() bool { return c.dirty.Empty() }

// Pending returns the number of components scheduled for the next Step.
func (c *Circuit) Pending() int { return c.dirty.Count() }

// Step advances the simulation by one unit delay.
func (c *Circuit) Step() {
	c.order = c.dirty.AppendTo(c.order[:0])
	c.dirty.Clear()

	if c.pool != nil && len(c.order) > 1 {
		order := c.order
		c.pool.Range(len(order), func(lo, hi int) {
			for _, i := range order[lo:hi] {
				c.eval(i)
			}
		})
	} else {
		for _, i := range c.order {
			c.eval(i)
		}
	}

	c.changed = c.changed[:0]
	for _, i := range c.order {
		comp := &c.comps[i]
		if comp.kind == Clock {
			c.dirty.Set(i)
		}
		for _, n := range comp.outputs {
			if c.next[n] == c.cur[n] {
				continue
			}
			c.cur[n] = c.next[n]
			c.changed = append(c.changed, n)
			for _, f := range c.fanout[n] {
				c.dirty.Set(int(f))
			}
		}
	}
	c.steps++
}

// StepN runs n steps.
func (c *Circuit) StepN(n int) {
	for range n {
		c.Step()
	}
}

// Settle steps until no component is scheduled. It returns ErrUnstable if
// the circuit still changes after maxSteps steps, which is always the case
// for circuits with a clock or a combinational loop.
func (c *Circuit) Settle(maxSteps int) error {
	for range maxSteps {
		if c.dirty.Empty() {
			return nil
		}
		c.Step()
	}
	if c.dirty.Empty() {
		return nil
	}
	logicsim.Logger().Debug("sim: circuit unstable", "steps", maxSteps, "pending", c.dirty.Count())
	return errors.Wrapf(ErrUnstable, "still changing after %d steps", maxSteps)
}

// Tick steps until the next rising clock edge. Clock outputs are high when
// it returns; flip-flops capture on the following step.
func (c *Circuit) Tick() {
	period := uint64(2 * c.halfPeriod) //nolint:gosec // half period is positive
	half := uint64(c.halfPeriod)       //nolint:gosec // half period is positive
	for {
		c.Step()
		if c.steps%period == half {
			return
		}
	}
}

// Reset clears every net and component state and schedules all components,
// as after Build.
func (c *Circuit) Reset() {
	clear(c.cur)
	clear(c.next)
	c.cur[True] = true
	c.next[True] = true
	for i := range c.comps {
		c.comps[i].state = false
		c.comps[i].clk = false
		c.dirty.Set(i)
	}
	c.changed = c.changed[:0]
	c.steps = 0
}

// clockLevel is the clock output after step t.
func (c *Circuit) clockLevel(t uint64) bool {
	return (t/uint64(c.halfPeriod))%2 == 1 //nolint:gosec // half period is positive
}

// eval computes the next frame outputs of component i. It reads only cur
// and writes only the component's own outputs and state.
func (c *Circuit) eval(i int) {
	comp := &c.comps[i]
	switch comp.kind {
	case Input:
		c.next[comp.outputs[0]] = comp.state
	case Output:
	case Clock:
		c.next[comp.outputs[0]] = c.clockLevel(c.steps + 1)
	case DFlipFlop:
		d, clk := c.cur[comp.inputs[0]], c.cur[comp.inputs[1]]
		if clk && !comp.clk {
			comp.state = d
		}
		comp.clk = clk
		c.next[comp.outputs[0]] = comp.state
		c.next[comp.outputs[1]] = !comp.state
	default:
		c.next[comp.outputs[0]] = comp.kind.eval(comp.inputs, c.cur)
	}
}

func (c *Circuit) valid(id ComponentID) bool {
	return id >= 0 && int(id) < len(c.comps)
}
