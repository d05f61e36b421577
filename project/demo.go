package project

import "github.com/gogpu/logicsim/sim"

// DemoName is the name the demo project is saved under.
const DemoName = "demo"

// Demo returns the bundled example project: a half adder, an SR latch built
// from two NOR gates and a clock driven blinker with a toggle flip-flop.
func Demo() *Project {
	return &Project{
		Name:   DemoName,
		Scenes: []*Scene{demoHalfAdder(), demoLatch(), demoBlinker()},
	}
}

func out(id ID, i int) Pin { return Pin{Component: id, Output: true, Index: i} }

func in(id ID, i int) Pin { return Pin{Component: id, Index: i} }

func label(s *Scene, id ID, text string) {
	if p, ok := s.Component(id); ok {
		p.Label = text
	}
}

func mustConnect(s *Scene, from, to Pin) {
	if err := s.Connect(from, to); err != nil {
		panic(err)
	}
}

func demoHalfAdder() *Scene {
	s := NewScene("half adder")
	a := s.Add(sim.Input, 0, 2)
	b := s.Add(sim.Input, 0, 8)
	xor := s.Add(sim.Xor, 8, 2)
	and := s.Add(sim.And, 8, 8)
	sum := s.Add(sim.Output, 16, 2)
	carry := s.Add(sim.Output, 16, 8)
	label(s, a, "A")
	label(s, b, "B")
	label(s, sum, "SUM")
	label(s, carry, "CARRY")

	mustConnect(s, out(a, 0), in(xor, 0))
	mustConnect(s, out(b, 0), in(xor, 1))
	mustConnect(s, out(a, 0), in(and, 0))
	mustConnect(s, out(b, 0), in(and, 1))
	mustConnect(s, out(xor, 0), in(sum, 0))
	mustConnect(s, out(and, 0), in(carry, 0))
	return s
}

func demoLatch() *Scene {
	s := NewScene("sr latch")
	set := s.Add(sim.Input, 0, 2)
	reset := s.Add(sim.Input, 0, 10)
	top := s.Add(sim.Nor, 8, 2)
	bottom := s.Add(sim.Nor, 8, 10)
	q := s.Add(sim.Output, 16, 2)
	nq := s.Add(sim.Output, 16, 10)
	label(s, set, "S")
	label(s, reset, "R")
	label(s, q, "Q")
	label(s, nq, "!Q")

	// Q = NOR(R, !Q), !Q = NOR(S, Q)
	mustConnect(s, out(reset, 0), in(top, 0))
	mustConnect(s, out(bottom, 0), in(top, 1))
	mustConnect(s, out(set, 0), in(bottom, 0))
	mustConnect(s, out(top, 0), in(bottom, 1))
	mustConnect(s, out(top, 0), in(q, 0))
	mustConnect(s, out(bottom, 0), in(nq, 0))
	return s
}

func demoBlinker() *Scene {
	s := NewScene("blinker")
	clk := s.Add(sim.Clock, 0, 4)
	ff := s.Add(sim.DFlipFlop, 8, 4)
	led := s.Add(sim.Output, 16, 4)
	label(s, clk, "CLK")
	label(s, led, "LED")

	// !Q feeds D: the flip-flop toggles on every rising edge.
	mustConnect(s, out(ff, 1), in(ff, 0))
	mustConnect(s, out(clk, 0), in(ff, 1))
	mustConnect(s, out(ff, 0), in(led, 0))
	return s
}
