package sim

import (
	"context"
	"sync"
	"time"

	"github.com/gogpu/logicsim"
)

// DefaultStepsPerSecond is the Runner rate used when none is given.
const DefaultStepsPerSecond = 240

// Runner steps a circuit in the background at a fixed rate. The UI and the
// runner share the circuit through Do, which holds the runner mutex.
type Runner struct {
	mu     sync.Mutex
	c      *Circuit
	period time.Duration
	paused bool
}

// NewRunner returns a Runner stepping c stepsPerSecond times per second.
func NewRunner(c *Circuit, stepsPerSecond int) *Runner {
	if stepsPerSecond <= 0 {
		stepsPerSecond = DefaultStepsPerSecond
	}
	return &Runner{c: c, period: time.Second / time.Duration(stepsPerSecond)}
}

// Do calls fn with exclusive access to the circuit.
func (r *Runner) Do(fn func(c *Circuit)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.c)
}

// Swap replaces the circuit and returns the previous one.
func (r *Runner) Swap(c *Circuit) *Circuit {
	r.mu.Lock()
	defer r.mu.Unlock()
	old := r.c
	r.c = c
	return old
}

// SetPaused stops or resumes stepping without leaving Run.
func (r *Runner) SetPaused(p bool) {
	r.mu.Lock()
	r.paused = p
	r.mu.Unlock()
}

// Paused reports whether stepping is paused.
func (r *Runner) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// Run steps the circuit until ctx is done and returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	logicsim.Logger().Info("sim: runner started", "period", r.period)
	for {
		select {
		case <-ctx.Done():
			logicsim.Logger().Info("sim: runner stopped")
			return ctx.Err()
		case <-ticker.C:
			r.mu.Lock()
			if !r.paused && r.c != nil {
				r.c.Step()
			}
			r.mu.Unlock()
		}
	}
}
