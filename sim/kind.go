package sim

import (
	"fmt"
	"strings"
)

// Kind identifies the behavior of a component.
type Kind uint8

// Component kinds.
const (
	Invalid Kind = iota
	Input
	Output
	Buffer
	Not
	And
	Or
	Nand
	Nor
	Xor
	Xnor
	Clock
	DFlipFlop
	kindCount
)

// MaxGateInputs bounds the input count of the multi-input gates.
const MaxGateInputs = 8

var kindNames = [kindCount]string{
	Invalid:   "invalid",
	Input:     "input",
	Output:    "output",
	Buffer:    "buffer",
	Not:       "not",
	And:       "and",
	Or:        "or",
	Nand:      "nand",
	Nor:       "nor",
	Xor:       "xor",
	Xnor:      "xnor",
	Clock:     "clock",
	DFlipFlop: "dflipflop",
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, 0, kindCount-1)
	for k := Input; k < kindCount; k++ {
		ks = append(ks, k)
	}
	return ks
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k > Invalid && k < kindCount }

// String returns the lower case kind name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind returns the kind named s (case insensitive).
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k := Input; k < kindCount; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return Invalid, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// InputRange returns the allowed number of input pins.
func (k Kind) InputRange() (lo, hi int) {
	switch k {
	case Input, Clock:
		return 0, 0
	case Output, Buffer, Not:
		return 1, 1
	case And, Or, Nand, Nor, Xor, Xnor:
		return 2, MaxGateInputs
	case DFlipFlop:
		return 2, 2
	}
	return 0, -1
}

// Outputs returns the number of output pins.
func (k Kind) Outputs() int {
	switch {
	case !k.Valid():
		return -1
	case k == Output:
		return 0
	case k == DFlipFlop:
		return 2
	}
	return 1
}

// DefaultInputs returns the input count used when placing a new component.
func (k Kind) DefaultInputs() int {
	lo, _ := k.InputRange()
	return lo
}

// Stateful reports whether the kind keeps internal state between steps.
func (k Kind) Stateful() bool {
	return k == Input || k == Clock || k == DFlipFlop
}

// eval computes a combinational gate output from the states of its input
// nets.
func (k Kind) eval(in []NetID, nets []bool) bool {
	switch k {
	case Buffer:
		return nets[in[0]]
	case Not:
		return !nets[in[0]]
	case And, Nand:
		v := true
		for _, n := range in {
			v = v && nets[n]
		}
		return v != (k == Nand)
	case Or, Nor:
		v := false
		for _, n := range in {
			v = v || nets[n]
		}
		return v != (k == Nor)
	case Xor, Xnor:
		v := false
		for _, n := range in {
			v = v != nets[n]
		}
		return v != (k == Xnor)
	}
	return false
}
