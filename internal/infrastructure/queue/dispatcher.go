package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/prostore/catalog-api/internal/core/ports"
)

const channelBuffer = 16

// Dispatcher re-warms the catalog cache in the background after
// mutations. Requests are coalesced: an enqueue while the buffer is
// full is dropped, since a refresh is already pending and each refresh
// recomputes the full view.
type Dispatcher struct {
	jobs      chan struct{}
	refresher ports.CatalogRefresher
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher feeding the given refresher.
func NewDispatcher(refresher ports.CatalogRefresher, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		jobs:      make(chan struct{}, channelBuffer),
		refresher: refresher,
		log:       log,
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	go d.run(ctx)
}

// Enqueue requests a catalog re-warm. Never blocks the request path.
func (d *Dispatcher) Enqueue() {
	select {
	case d.jobs <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-d.jobs:
			if !ok {
				return
			}
			if err := d.refresher.RefreshCatalog(ctx); err != nil {
				d.log.Error().Err(err).Msg("catalog refresh failed")
			}
		}
	}
}
