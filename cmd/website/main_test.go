package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danehillard/dhp/cmd/website/internal/backfill"
	"github.com/stretchr/testify/assert"
)

type countingBackfill struct {
	runs atomic.Int32
}

func (c *countingBackfill) Run() backfill.Summary {
	c.runs.Add(1)
	return backfill.Summary{}
}

func TestDerivativeBackfillStopsWhenContextCancelled(t *testing.T) {
	counter := &countingBackfill{}
	previous := backfillService
	backfillService = counter
	t.Cleanup(func() { backfillService = previous })

	ctx, cancel := context.WithCancel(context.Background())
	setupDerivativeBackfill(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool { return counter.runs.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(50 * time.Millisecond)

	stopped := counter.runs.Load()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, stopped, counter.runs.Load())
}
