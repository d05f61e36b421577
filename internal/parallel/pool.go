// Package parallel provides the small concurrency primitives shared by the
// CPU rasterizer and the simulation engine: a chunked worker pool and an
// atomic bitset.
package parallel

import (
	"runtime"
	"sync"
)

// chunk is one contiguous slice [lo, hi) of a Range call.
type chunk struct {
	lo, hi int
	fn     func(lo, hi int)
	wg     *sync.WaitGroup
}

// Pool runs index ranges split into contiguous chunks on a fixed set of
// goroutines. Callers own disjoint data per index, so chunks never share
// writes.
//
// Pool is safe for concurrent use. After Close, Range runs on the calling
// goroutine.
type Pool struct {
	workers int
	chunks  chan chunk

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		chunks:  make(chan chunk, workers),
	}
	p.wg.Add(workers)
	for range workers {
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for c := range p.chunks {
		c.fn(c.lo, c.hi)
		c.wg.Done()
	}
}

// Range splits [0, n) into at most Workers contiguous chunks and calls fn
// once per chunk. It returns after every chunk is done.
func (p *Pool) Range(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	parts := min(p.workers, n)
	if parts == 1 {
		fn(0, n)
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	wg.Add(parts)
	for i := range parts {
		p.chunks <- chunk{lo: i * n / parts, hi: (i + 1) * n / parts, fn: fn, wg: &wg}
	}
	wg.Wait()
}

// Close stops the workers. It waits for running chunks and is safe to call
// more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.chunks)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}
