// Package sim is the circuit simulation engine.
//
// A circuit is a set of nets (wires carrying one boolean each) and
// components reading input nets and driving output nets. Net 0 is the
// constant false and net 1 the constant true.
//
// Simulation is synchronous and event driven. Each Step evaluates the
// components whose inputs changed during the previous step (all components on
// the first step). Components read the current frame of net states and write
// the next frame, which then becomes current. A change on a component input
// is therefore visible on its outputs one step later (unit delay), and the
// result of a step does not depend on evaluation order or worker count.
//
// Circuits are built with a Builder:
//
//	b := sim.New()
//	a, bb, out := b.Net(), b.Net(), b.Net()
//	in1 := b.Add(sim.Input, nil, []sim.NetID{a})
//	in2 := b.Add(sim.Input, nil, []sim.NetID{bb})
//	b.Add(sim.And, []sim.NetID{a, bb}, []sim.NetID{out})
//	c, err := b.Build()
package sim
