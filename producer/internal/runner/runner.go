// Package runner schedules the periodic fetch-and-publish cycles for both
// feeds.
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/dataflow-systems/integration-stack/common/logging"
	"github.com/dataflow-systems/integration-stack/producer/internal/fetch"
	"github.com/dataflow-systems/integration-stack/producer/internal/publish"
)

// Runner drives the two feed cycles on independent intervals. A failed
// cycle is logged and skipped; the next tick tries again.
type Runner struct {
	client           *fetch.Client
	feeds            *publish.Feeds
	customerInterval time.Duration
	productInterval  time.Duration
	logger           *logging.Logger
}

// New creates a Runner.
func New(client *fetch.Client, feeds *publish.Feeds, customerInterval, productInterval time.Duration, logger *logging.Logger) *Runner {
	return &Runner{
		client:           client,
		feeds:            feeds,
		customerInterval: customerInterval,
		productInterval:  productInterval,
		logger:           logger,
	}
}

// Run executes both feed loops until ctx is cancelled. Each loop runs one
// cycle immediately, then on its interval.
func (r *Runner) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		r.loop(ctx, r.customerInterval, r.customerCycle)
	}()
	go func() {
		defer wg.Done()
		r.loop(ctx, r.productInterval, r.productCycle)
	}()

	wg.Wait()
}

func (r *Runner) loop(ctx context.Context, interval time.Duration, cycle func(context.Context)) {
	cycle(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cycle(ctx)
		}
	}
}

func (r *Runner) customerCycle(ctx context.Context) {
	r.logger.Info("starting customer fetch and publish cycle")

	records, err := r.client.Customers(ctx)
	if err != nil {
		r.logger.Error("customer fetch failed, skipping cycle", logging.Err(err))
		return
	}

	if _, err := r.feeds.Customers(ctx, records); err != nil {
		r.logger.Error("customer publish failed", logging.Err(err))
	}
}

func (r *Runner) productCycle(ctx context.Context) {
	r.logger.Info("starting inventory fetch and publish cycle")

	records, err := r.client.Products(ctx)
	if err != nil {
		r.logger.Error("product fetch failed, skipping cycle", logging.Err(err))
		return
	}

	if _, err := r.feeds.Inventory(ctx, records); err != nil {
		r.logger.Error("product publish failed", logging.Err(err))
	}
}
