package project

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/logicsim/pipeline"
	"github.com/gogpu/logicsim/sim"
)

func TestNewIDIsFNV1a(t *testing.T) {
	// Reference values of 64-bit FNV-1a.
	assert.Equal(t, ID(0xcbf29ce484222325), NewID(""))
	assert.Equal(t, ID(0xaf63dc4c8601ec8c), NewID("a"))
	assert.NotEqual(t, NewID("scene/1"), NewID("scene/2"))

	text, err := NewID("a").MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "af63dc4c8601ec8c", string(text))

	var id ID
	require.NoError(t, id.UnmarshalText(text))
	assert.Equal(t, NewID("a"), id)
	assert.Error(t, id.UnmarshalText([]byte("not hex")))
}

func TestSettingsTOMLRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.ScaleFactor = 1.5
	s.StepsPerFrame = 4
	s.LastProject = "demo"
	s.Theme.WireOn = pipeline.Hex("#00FF00FF")

	data, err := MarshalSettings(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scale_factor = 1.5")
	assert.Contains(t, string(data), "#00FF00FF")

	got, err := UnmarshalSettings(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSettingsPartialAndInvalid(t *testing.T) {
	got, err := UnmarshalSettings([]byte("steps_per_frame = 3\nhalf_period = -2\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, got.StepsPerFrame)
	assert.Equal(t, sim.DefaultHalfPeriod, got.HalfPeriod, "invalid value normalized")
	assert.Equal(t, DefaultTheme(), got.Theme, "missing keys keep defaults")

	_, err = UnmarshalSettings([]byte("scale_factor = [oops"))
	assert.Error(t, err)
}

func TestSceneEditing(t *testing.T) {
	s := NewScene("edit")
	a := s.Add(sim.Input, 0, 0)
	g := s.Add(sim.Not, 4, 0)
	assert.NotEqual(t, a, g)

	require.NoError(t, s.Connect(out(a, 0), in(g, 0)))
	require.NoError(t, s.Connect(in(g, 0), out(a, 0)), "reverse duplicate is a no-op")
	assert.Len(t, s.Wires, 1)

	err := s.Connect(out(a, 0), in(g, 3))
	assert.True(t, errors.Is(err, ErrUnknownPin), "err = %v", err)
	err = s.Connect(out(a, 0), in(ID(1), 0))
	assert.True(t, errors.Is(err, ErrUnknownComponent), "err = %v", err)

	assert.True(t, s.Remove(g))
	assert.Empty(t, s.Wires, "wires of removed component are dropped")
	assert.False(t, s.Remove(g))

	clone := s.Clone()
	clone.Add(sim.Output, 1, 1)
	assert.Len(t, s.Components, 1, "clone is independent")
}

func TestCompileHalfAdder(t *testing.T) {
	s, err := Demo().Scene("half adder")
	require.NoError(t, err)

	c, m, err := s.Compile()
	require.NoError(t, err)

	find := func(lbl string) ID {
		for _, p := range s.Components {
			if p.Label == lbl {
				return p.ID
			}
		}
		t.Fatalf("no component labeled %q", lbl)
		return 0
	}
	a, b := m.Components[find("A")], m.Components[find("B")]
	sum, carry := m.Components[find("SUM")], m.Components[find("CARRY")]

	for i := range 4 {
		va, vb := i&2 != 0, i&1 != 0
		require.NoError(t, c.SetInput(a, va))
		require.NoError(t, c.SetInput(b, vb))
		require.NoError(t, c.Settle(16))
		assert.Equal(t, va != vb, c.Output(sum), "sum(%v,%v)", va, vb)
		assert.Equal(t, va && vb, c.Output(carry), "carry(%v,%v)", va, vb)
	}

	// The A output pin and both gate inputs it feeds share one driven net.
	na, ok := m.Net(out(find("A"), 0))
	require.True(t, ok)
	assert.True(t, m.Driven(na))
	for _, p := range s.Components {
		if p.Kind == sim.Xor || p.Kind == sim.And {
			n, _ := m.Net(in(p.ID, 0))
			assert.Equal(t, na, n)
		}
	}
}

func TestCompileUnconnectedPins(t *testing.T) {
	s := NewScene("loose")
	g := s.Add(sim.And, 0, 0)
	o := s.Add(sim.Output, 4, 0)
	c, m, err := s.Compile()
	require.NoError(t, err)
	require.NoError(t, c.Settle(4))

	n0, _ := m.Net(in(g, 0))
	n1, _ := m.Net(in(g, 1))
	assert.NotEqual(t, n0, n1, "unconnected pins get distinct nets")
	assert.False(t, m.Driven(n0))

	no, _ := m.Net(in(o, 0))
	assert.False(t, m.Driven(no))
}

func TestCompileErrors(t *testing.T) {
	s := NewScene("bad")
	a := s.Add(sim.Input, 0, 0)
	b := s.Add(sim.Input, 0, 4)
	s.Wires = append(s.Wires, Wire{From: out(a, 0), To: out(b, 0)})
	_, _, err := s.Compile()
	assert.True(t, errors.Is(err, sim.ErrMultipleDrivers), "err = %v", err)

	s.Wires = []Wire{{From: out(a, 0), To: in(ID(5), 0)}}
	_, _, err = s.Compile()
	assert.True(t, errors.Is(err, ErrUnknownComponent), "err = %v", err)

	s.Wires = nil
	s.Components = append(s.Components, s.Components[0])
	_, _, err = s.Compile()
	assert.True(t, errors.Is(err, ErrDuplicateID), "err = %v", err)
}

func TestCompileRestoresInputValues(t *testing.T) {
	s := NewScene("on")
	a := s.Add(sim.Input, 0, 0)
	o := s.Add(sim.Output, 4, 0)
	require.NoError(t, s.Connect(out(a, 0), in(o, 0)))
	p, _ := s.Component(a)
	p.On = true

	c, m, err := s.Compile()
	require.NoError(t, err)
	require.NoError(t, c.Settle(4))
	assert.True(t, c.Output(m.Components[o]))
}

func TestDemoBlinkerToggles(t *testing.T) {
	s, err := Demo().Scene("blinker")
	require.NoError(t, err)
	c, m, err := s.Compile(sim.WithHalfPeriod(2))
	require.NoError(t, err)

	var led ID
	for _, p := range s.Components {
		if p.Kind == sim.Output {
			led = p.ID
		}
	}
	var seen []bool
	for range 4 {
		c.Tick()
		c.StepN(2)
		seen = append(seen, c.Output(m.Components[led]))
	}
	assert.Equal(t, []bool{true, false, true, false}, seen)
}

func TestProjectYAMLRoundTrip(t *testing.T) {
	p := Demo()
	data, err := Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: xor")

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = got.Scene("nope")
	assert.True(t, errors.Is(err, ErrSceneNotFound))
	first, err := got.Scene("")
	require.NoError(t, err)
	assert.Equal(t, "half adder", first.Name)
	assert.Equal(t, []string{"half adder", "sr latch", "blinker"}, got.SceneNames())
}

func TestStore(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	settings, err := st.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings, "missing file yields defaults")

	settings.StepsPerFrame = 7
	require.NoError(t, st.SaveSettings(settings))
	got, err := st.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 7, got.StepsPerFrame)

	require.NoError(t, st.SaveProject("b", New("ignored")))
	require.NoError(t, st.SaveProject(DemoName, Demo()))
	names, err := st.ListProjects()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", DemoName}, names)

	loaded, err := st.LoadProject(DemoName)
	require.NoError(t, err)
	assert.Equal(t, Demo(), loaded)

	_, err = st.LoadProject("missing")
	assert.True(t, errors.Is(err, ErrProjectNotFound))

	assert.True(t, errors.Is(st.RenameProject("b", DemoName), ErrProjectExists))
	require.NoError(t, st.RenameProject("b", "c"))
	renamed, err := st.LoadProject("c")
	require.NoError(t, err)
	assert.Equal(t, "c", renamed.Name)

	require.NoError(t, st.DeleteProject("c"))
	assert.True(t, errors.Is(st.DeleteProject("c"), ErrProjectNotFound))
	assert.True(t, errors.Is(st.SaveProject("../x", New("x")), ErrInvalidName))
}

func TestStoreCorruptSettings(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(st.SettingsPath(), []byte("= = ="), 0o600))

	got, err := st.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), got)
}

func TestSceneDisconnect(t *testing.T) {
	s := NewScene("t")
	a := s.Add(sim.Input, 0, 0)
	n := s.Add(sim.Not, 4, 0)
	o := s.Add(sim.Output, 10, 0)
	src := Pin{Component: a, Output: true}
	require.NoError(t, s.Connect(src, Pin{Component: n}))
	require.NoError(t, s.Connect(Pin{Component: n, Output: true}, Pin{Component: o}))
	require.NoError(t, s.Connect(src, Pin{Component: o}))

	assert.Equal(t, 2, s.Disconnect(src))
	require.Len(t, s.Wires, 1)
	assert.Equal(t, Pin{Component: n, Output: true}, s.Wires[0].From)
	assert.Zero(t, s.Disconnect(src))

	c, m, err := s.Compile()
	require.NoError(t, err)
	defer c.Close()
	net, ok := m.Net(Pin{Component: n})
	require.True(t, ok)
	assert.False(t, m.Driven(net), "disconnected input floats")
}
