// Package publish serializes fetched records onto their bus topics, one
// message per record, keyed by record id.
package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dataflow-systems/integration-stack/common/logging"
	"github.com/dataflow-systems/integration-stack/common/messaging"
	"github.com/dataflow-systems/integration-stack/common/models"
)

// Feeds publishes to the two pipeline topics.
type Feeds struct {
	customers messaging.Publisher
	inventory messaging.Publisher
	logger    *logging.Logger
}

// New creates the feed publishers.
func New(customers, inventory messaging.Publisher, logger *logging.Logger) *Feeds {
	return &Feeds{customers: customers, inventory: inventory, logger: logger}
}

// Customers publishes each record to the customer topic with key
// customer_<id>. Returns the number published; a mid-batch failure aborts
// the remainder.
func (f *Feeds) Customers(ctx context.Context, records []models.CustomerRecord) (int, error) {
	for i, rec := range records {
		value, err := json.Marshal(rec)
		if err != nil {
			return i, fmt.Errorf("failed to serialize customer %d: %w", rec.ID, err)
		}
		key := []byte(fmt.Sprintf("customer_%d", rec.ID))
		if err := f.customers.Publish(ctx, key, value); err != nil {
			return i, fmt.Errorf("failed to publish customer %d: %w", rec.ID, err)
		}
	}
	f.logger.Info("published customer records", logging.Records(len(records)))
	return len(records), nil
}

// Inventory publishes each record to the inventory topic with key
// product_<id>.
func (f *Feeds) Inventory(ctx context.Context, records []models.InventoryRecord) (int, error) {
	for i, rec := range records {
		value, err := json.Marshal(rec)
		if err != nil {
			return i, fmt.Errorf("failed to serialize product %d: %w", rec.ID, err)
		}
		key := []byte(fmt.Sprintf("product_%d", rec.ID))
		if err := f.inventory.Publish(ctx, key, value); err != nil {
			return i, fmt.Errorf("failed to publish product %d: %w", rec.ID, err)
		}
	}
	f.logger.Info("published product records", logging.Records(len(records)))
	return len(records), nil
}
