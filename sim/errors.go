package sim

import "errors"

// Validation and runtime errors.
var (
	// ErrUnknownKind is returned for a component kind outside the Kind set.
	ErrUnknownKind = errors.New("sim: unknown component kind")

	// ErrPinCount is returned when a component has the wrong number of pins.
	ErrPinCount = errors.New("sim: wrong pin count")

	// ErrUnknownNet is returned for a net id that was not allocated.
	ErrUnknownNet = errors.New("sim: unknown net")

	// ErrConstantDriven is returned when an output drives net 0 or net 1.
	ErrConstantDriven = errors.New("sim: output drives a constant net")

	// ErrMultipleDrivers is returned when two outputs drive the same net.
	ErrMultipleDrivers = errors.New("sim: net has multiple drivers")

	// ErrUnstable is returned by Settle when the circuit keeps changing.
	ErrUnstable = errors.New("sim: circuit did not settle")

	// ErrNotInput is returned by SetInput and Toggle for non-input components.
	ErrNotInput = errors.New("sim: component is not an input")

	// ErrUnknownComponent is returned for an out of range component id.
	ErrUnknownComponent = errors.New("sim: unknown component")
)
