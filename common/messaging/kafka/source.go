// Package kafka implements the messaging interfaces on top of
// segmentio/kafka-go.
package kafka

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/dataflow-systems/integration-stack/common/messaging"
)

// Source consumes from a set of topics as one consumer group member.
type Source struct {
	reader *kafkago.Reader
}

// NewSource creates a consumer-group source over the given topics. Offsets
// are committed automatically; a group without committed offsets starts
// from the latest message, so records published before the first run are
// never replayed.
func NewSource(brokers []string, groupID string, topics ...string) *Source {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		GroupTopics: topics,
		StartOffset: kafkago.LastOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
	})

	return &Source{reader: reader}
}

// Fetch blocks for the next message. ReadMessage commits the offset as part
// of consumer-group handling, so delivery is at-most-once from the
// aggregator's point of view.
func (s *Source) Fetch(ctx context.Context) (messaging.Event, error) {
	msg, err := s.reader.ReadMessage(ctx)
	if err != nil {
		return messaging.Event{}, err
	}

	return messaging.Event{
		Topic: msg.Topic,
		Key:   msg.Key,
		Value: msg.Value,
		Time:  msg.Time,
	}, nil
}

// Close releases the group subscription.
func (s *Source) Close() error {
	return s.reader.Close()
}
