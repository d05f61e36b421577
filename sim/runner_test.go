package sim

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerSteps(t *testing.T) {
	c, in, _, _, _ := notChain(t)
	r := NewRunner(c, 1000)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	r.Do(func(c *Circuit) {
		require.NoError(t, c.SetInput(in, true))
	})

	err := <-done
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "err = %v", err)

	r.Do(func(c *Circuit) {
		assert.Positive(t, c.Steps())
		assert.True(t, c.Input(in))
	})
}

func TestRunnerPaused(t *testing.T) {
	c, _, _, _, _ := notChain(t)
	r := NewRunner(c, 1000)
	r.SetPaused(true)
	assert.True(t, r.Paused())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_ = r.Run(ctx)

	r.Do(func(c *Circuit) {
		assert.Zero(t, c.Steps())
	})
}

func TestRunnerSwap(t *testing.T) {
	c1, _, _, _, _ := notChain(t)
	c2, _, _, _, _ := notChain(t)
	r := NewRunner(c1, 0)
	assert.Same(t, c1, r.Swap(c2))
	r.Do(func(c *Circuit) { assert.Same(t, c2, c) })
}
