package queue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingRefresher struct {
	calls atomic.Int64
	done  chan struct{}
}

func (r *countingRefresher) RefreshCatalog(context.Context) error {
	r.calls.Add(1)
	select {
	case r.done <- struct{}{}:
	default:
	}
	return nil
}

func TestDispatcher_RunsRefresher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresher := &countingRefresher{done: make(chan struct{}, 1)}
	d := NewDispatcher(refresher, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue()

	select {
	case <-refresher.done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresher was not invoked")
	}
	if refresher.calls.Load() == 0 {
		t.Fatal("expected at least one refresh")
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// No worker running: the buffer fills and further enqueues must be
	// dropped rather than block.
	d := NewDispatcher(&countingRefresher{done: make(chan struct{}, 1)}, zerolog.Nop())

	finished := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer*4; i++ {
			d.Enqueue()
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked with a full buffer")
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	refresher := &countingRefresher{done: make(chan struct{}, 1)}
	d := NewDispatcher(refresher, zerolog.Nop())
	d.Start(ctx)

	cancel()
	// Give the worker a beat to observe cancellation, then verify new
	// work is ignored.
	time.Sleep(50 * time.Millisecond)
	before := refresher.calls.Load()
	d.Enqueue()
	time.Sleep(50 * time.Millisecond)

	if got := refresher.calls.Load(); got != before {
		t.Fatalf("worker still running after cancel: %d -> %d", before, got)
	}
}
