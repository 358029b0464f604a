// Package consumer drives the aggregator: it pulls events from the bus,
// routes them into the buffer and triggers scheduled flushes.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dataflow-systems/integration-stack/aggregator/internal/buffer"
	"github.com/dataflow-systems/integration-stack/aggregator/internal/dispatch"
	"github.com/dataflow-systems/integration-stack/aggregator/internal/metrics"
	"github.com/dataflow-systems/integration-stack/aggregator/internal/scheduler"
	"github.com/dataflow-systems/integration-stack/common/logging"
	"github.com/dataflow-systems/integration-stack/common/messaging"
	"github.com/dataflow-systems/integration-stack/common/models"
)

// State is the consumer lifecycle state.
type State int32

const (
	StateStarting State = iota
	StateRunning
	StateShuttingDown
	StateStopped
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting_down"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Consumer owns the buffer and runs the single-threaded pull loop. Flush
// checks happen between message pulls only; while no messages arrive no
// flush fires beyond the mandatory startup flush. Dispatch blocks the loop
// for its duration, which is the system's accepted backpressure point.
type Consumer struct {
	source         messaging.Source
	buf            *buffer.Buffer
	dispatcher     *dispatch.Dispatcher
	sched          *scheduler.Scheduler
	customerTopic  string
	inventoryTopic string
	logger         *logging.Logger

	mu    sync.RWMutex
	state State

	now func() time.Time
}

// New wires a Consumer. The buffer is owned here and shared with the
// dispatcher by handle; there is no ambient global state.
func New(source messaging.Source, buf *buffer.Buffer, dispatcher *dispatch.Dispatcher,
	sched *scheduler.Scheduler, customerTopic, inventoryTopic string, logger *logging.Logger) *Consumer {
	return &Consumer{
		source:         source,
		buf:            buf,
		dispatcher:     dispatcher,
		sched:          sched,
		customerTopic:  customerTopic,
		inventoryTopic: inventoryTopic,
		logger:         logger,
		state:          StateStarting,
		now:            time.Now,
	}
}

// State returns the current lifecycle state.
func (c *Consumer) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Consumer) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Run executes the consumer loop until ctx is cancelled. On shutdown the
// subscription is released without a final flush; the unflushed tail is
// accepted data loss. Returns nil on clean shutdown and an error only when
// the event pull fails for a reason other than cancellation.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("starting integration consumer",
		logging.Topic(c.customerTopic),
		"inventory_topic", c.inventoryTopic,
		"flush_interval", c.sched.Interval().String())

	// Flush whatever state exists before consuming, unconditionally.
	c.dispatcher.Flush(ctx)
	c.sched.Reset(c.now())

	c.setState(StateRunning)

	for {
		ev, err := c.source.Fetch(ctx)
		if err != nil {
			return c.stop(err)
		}

		c.route(ev)

		if c.sched.ShouldFlush(c.now()) {
			c.dispatcher.Flush(ctx)
			c.sched.Reset(c.now())
		}
	}
}

// route appends the event's payload to the matching collection. Unknown
// topics are ignored; payloads that cannot be deserialized are skipped.
func (c *Consumer) route(ev messaging.Event) {
	switch ev.Topic {
	case c.customerTopic:
		var rec models.CustomerRecord
		if err := json.Unmarshal(ev.Value, &rec); err != nil {
			c.logger.Debug("skipping undecodable customer payload", logging.Err(err))
			metrics.DecodeErrors.WithLabelValues(ev.Topic).Inc()
			return
		}
		c.buf.AppendCustomer(rec)
		metrics.RecordsConsumed.WithLabelValues(ev.Topic).Inc()
		nc, _ := c.buf.Len()
		c.logger.Debug("added customer record", "name", rec.Name, "total", nc)

	case c.inventoryTopic:
		var rec models.InventoryRecord
		if err := json.Unmarshal(ev.Value, &rec); err != nil {
			c.logger.Debug("skipping undecodable inventory payload", logging.Err(err))
			metrics.DecodeErrors.WithLabelValues(ev.Topic).Inc()
			return
		}
		c.buf.AppendInventory(rec)
		metrics.RecordsConsumed.WithLabelValues(ev.Topic).Inc()
		_, ni := c.buf.Len()
		c.logger.Debug("added product record", "name", rec.Name, "total", ni)

	default:
		c.logger.Debug("ignoring event from unrecognized topic", logging.Topic(ev.Topic))
		metrics.UnknownTopics.Inc()
	}
}

// stop releases the subscription and settles the terminal state. A
// cancelled context or a closed source is a clean shutdown.
func (c *Consumer) stop(cause error) error {
	c.setState(StateShuttingDown)
	c.logger.Info("shutting down consumer")

	if err := c.source.Close(); err != nil {
		c.logger.Warn("error closing event source", logging.Err(err))
	}

	c.setState(StateStopped)

	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) || errors.Is(cause, io.EOF) {
		return nil
	}
	return fmt.Errorf("event pull failed: %w", cause)
}
