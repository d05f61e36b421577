package project

import (
	"fmt"
	"hash/fnv"
	"strconv"
)

// ID identifies a placed component. IDs are stable across saves.
type ID uint64

// NewID derives an ID from a key with 64-bit FNV-1a.
func NewID(key string) ID {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return ID(h.Sum64())
}

// String returns the ID as 16 hex digits.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 16, 64)
	if err != nil {
		return fmt.Errorf("project: invalid id %q: %w", text, err)
	}
	*id = ID(v)
	return nil
}
