package parallel

import (
	"math/bits"
	"sync/atomic"
)

// Bitset is a fixed-size set of small integers backed by an atomic bitmap.
//
// Set and Has are lock-free and may be called from several goroutines.
// Clear, Each and AppendTo must not race with writers.
type Bitset struct {
	words []atomic.Uint64
	n     int
}

// NewBitset returns an empty set able to hold 0..n-1.
func NewBitset(n int) *Bitset {
	if n < 0 {
		n = 0
	}
	return &Bitset{
		words: make([]atomic.Uint64, (n+63)/64),
		n:     n,
	}
}

// Len returns the capacity of the set.
func (b *Bitset) Len() int { return b.n }

// Set adds i. Out of range values are ignored.
func (b *Bitset) Set(i int) {
	if i < 0 || i >= b.n {
		return
	}
	b.words[i/64].Or(1 << (uint(i) & 63))
}

// Has reports whether i is in the set.
func (b *Bitset) Has(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	return b.words[i/64].Load()&(1<<(uint(i)&63)) != 0
}

// Empty reports whether no bit is set.
func (b *Bitset) Empty() bool {
	for i := range b.words {
		if b.words[i].Load() != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of members.
func (b *Bitset) Count() int {
	total := 0
	for i := range b.words {
		total += bits.OnesCount64(b.words[i].Load())
	}
	return total
}

// Clear removes every member.
func (b *Bitset) Clear() {
	for i := range b.words {
		b.words[i].Store(0)
	}
}

// Each calls fn for every member in ascending order.
func (b *Bitset) Each(fn func(i int)) {
	for w := range b.words {
		word := b.words[w].Load()
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			fn(w*64 + bit)
			word &= word - 1
		}
	}
}

// AppendTo appends the members in ascending order to dst.
func (b *Bitset) AppendTo(dst []int) []int {
	b.Each(func(i int) { dst = append(dst, i) })
	return dst
}
