package sim

import (
	"github.com/pkg/errors"

	"github.com/gogpu/logicsim/internal/parallel"
)

// NetID identifies a net.
type NetID int32

// Constant nets present in every circuit.
const (
	False NetID = 0
	True  NetID = 1
)

// firstNet is the first id handed out by Builder.Net.
const firstNet = 2

// ComponentID identifies a component in a circuit. Ids are assigned by
// Builder.Add in call order starting at 0.
type ComponentID int

// DefaultHalfPeriod is the number of steps between clock edges.
const DefaultHalfPeriod = 8

type options struct {
	workers    int
	halfPeriod int
}

// Option configures a circuit.
type Option func(*options)

// WithWorkers evaluates the dirty components of each step on n goroutines.
// n <= 1 evaluates on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithHalfPeriod sets the number of steps between clock edges.
// Values below 1 select DefaultHalfPeriod.
func WithHalfPeriod(n int) Option {
	return func(o *options) { o.halfPeriod = n }
}

type decl struct {
	kind    Kind
	inputs  []NetID
	outputs []NetID
}

// Builder collects nets and components and validates them into a Circuit.
type Builder struct {
	opts  options
	nets  int
	decls []decl
}

// New returns an empty Builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		opts: options{halfPeriod: DefaultHalfPeriod},
		nets: firstNet,
	}
	for _, opt := range opts {
		opt(&b.opts)
	}
	if b.opts.halfPeriod < 1 {
		b.opts.halfPeriod = DefaultHalfPeriod
	}
	return b
}

// Net allocates a new net.
func (b *Builder) Net() NetID {
	id := NetID(b.nets) //nolint:gosec // net count fits int32
	b.nets++
	return id
}

// Nets returns the number of nets allocated so far, constants included.
func (b *Builder) Nets() int { return b.nets }

// Add appends a component and returns its id. Pins are validated by Build.
func (b *Builder) Add(kind Kind, inputs, outputs []NetID) ComponentID {
	b.decls = append(b.decls, decl{
		kind:    kind,
		inputs:  append([]NetID(nil), inputs...),
		outputs: append([]NetID(nil), outputs...),
	})
	return ComponentID(len(b.decls) - 1)
}

// Build validates the collected components and returns a runnable circuit.
// The Builder may be reused afterwards; the circuit does not share its
// memory.
func (b *Builder) Build() (*Circuit, error) {
	driver := make([]int, b.nets)
	for i := range driver {
		driver[i] = -1
	}

	comps := make([]component, len(b.decls))
	fanout := make([][]int32, b.nets)
	for i, s := range b.decls {
		if !s.kind.Valid() {
			return nil, errors.Wrapf(ErrUnknownKind, "component %d: kind %d", i, uint8(s.kind))
		}
		lo, hi := s.kind.InputRange()
		if len(s.inputs) < lo || len(s.inputs) > hi {
			return nil, errors.Wrapf(ErrPinCount, "component %d (%s): %d inputs, want %d..%d", i, s.kind, len(s.inputs), lo, hi)
		}
		if len(s.outputs) != s.kind.Outputs() {
			return nil, errors.Wrapf(ErrPinCount, "component %d (%s): %d outputs, want %d", i, s.kind, len(s.outputs), s.kind.Outputs())
		}
		for _, n := range s.inputs {
			if n < 0 || int(n) >= b.nets {
				return nil, errors.Wrapf(ErrUnknownNet, "component %d (%s): input net %d", i, s.kind, n)
			}
		}
		for _, n := range s.outputs {
			if n < 0 || int(n) >= b.nets {
				return nil, errors.Wrapf(ErrUnknownNet, "component %d (%s): output net %d", i, s.kind, n)
			}
			if n < firstNet {
				return nil, errors.Wrapf(ErrConstantDriven, "component %d (%s): net %d", i, s.kind, n)
			}
			if d := driver[n]; d >= 0 {
				return nil, errors.Wrapf(ErrMultipleDrivers, "net %d: components %d and %d", n, d, i)
			}
			driver[n] = i
		}

		comps[i] = component{
			kind:    s.kind,
			inputs:  append([]NetID(nil), s.inputs...),
			outputs: append([]NetID(nil), s.outputs...),
		}
		for _, n := range s.inputs {
			fo := fanout[n]
			// A component reading the same net twice is listed once.
			if len(fo) == 0 || fo[len(fo)-1] != int32(i) { //nolint:gosec // component count fits int32
				fanout[n] = append(fo, int32(i)) //nolint:gosec // component count fits int32
			}
		}
	}

	c := &Circuit{
		comps:      comps,
		fanout:     fanout,
		cur:        make([]bool, b.nets),
		next:       make([]bool, b.nets),
		dirty:      parallel.NewBitset(len(comps)),
		halfPeriod: b.opts.halfPeriod,
	}
	c.cur[True] = true
	c.next[True] = true
	for i := range comps {
		c.dirty.Set(i)
	}
	if b.opts.workers > 1 && len(comps) > 1 {
		c.pool = parallel.NewPool(b.opts.workers)
	}
	return c, nil
}
