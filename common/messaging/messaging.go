// Package messaging defines the message bus abstractions used by the
// pipeline. Services depend on these interfaces rather than on a concrete
// broker client; the kafka subpackage provides the production
// implementation.
package messaging

import (
	"context"
	"time"
)

// Event is a single message pulled from the bus.
type Event struct {
	// Topic the message was consumed from.
	Topic string

	// Key is the optional partition key the producer published with.
	Key []byte

	// Value is the raw payload. Deserialization is the consumer's concern;
	// the bus carries whatever the producer wrote.
	Value []byte

	// Time is the broker timestamp of the message.
	Time time.Time
}

// Source yields events from one or more subscribed topics.
type Source interface {
	// Fetch blocks until the next event is available or ctx is cancelled.
	// A cancelled or deadline-exceeded ctx surfaces as the ctx error so
	// callers can distinguish shutdown from transport failure.
	Fetch(ctx context.Context) (Event, error)

	// Close releases the subscription.
	Close() error
}

// Publisher publishes messages to a single topic.
type Publisher interface {
	// Publish sends one message with the given partition key.
	Publish(ctx context.Context, key, value []byte) error

	// Close flushes and releases the underlying writer.
	Close() error
}
