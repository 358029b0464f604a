// Package buffer holds the aggregator's in-memory record collections.
package buffer

import (
	"sync"
	"time"

	"github.com/dataflow-systems/integration-stack/common/models"
)

// RetentionWindow is the number of most-recent records each collection
// keeps after a snapshot. Retained records appear again in the next batch.
const RetentionWindow = 100

// Buffer accumulates customer and inventory records between flushes. One
// mutex guards both collections; an append and a snapshot never interleave.
type Buffer struct {
	mu        sync.Mutex
	customers []models.CustomerRecord
	inventory []models.InventoryRecord

	now func() time.Time
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{now: time.Now}
}

// AppendCustomer stamps the record's ReceivedAt and appends it. Payload
// fields are stored exactly as received; malformed data is upstream's
// problem.
func (b *Buffer) AppendCustomer(rec models.CustomerRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec.ReceivedAt = b.now()
	b.customers = append(b.customers, rec)
}

// AppendInventory stamps the record's ReceivedAt and appends it.
func (b *Buffer) AppendInventory(rec models.InventoryRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec.ReceivedAt = b.now()
	b.inventory = append(b.inventory, rec)
}

// SnapshotAndRetain atomically copies both collections and trims each to
// the retention window: emptied if it held RetentionWindow records or
// fewer, otherwise cut to the trailing RetentionWindow records. The
// returned slices are the pre-trim copies and are safe to use without
// further locking.
func (b *Buffer) SnapshotAndRetain() ([]models.CustomerRecord, []models.InventoryRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()

	customers := make([]models.CustomerRecord, len(b.customers))
	copy(customers, b.customers)
	inventory := make([]models.InventoryRecord, len(b.inventory))
	copy(inventory, b.inventory)

	b.customers = retainTail(b.customers)
	b.inventory = retainTail(b.inventory)

	return customers, inventory
}

// Len returns the current sizes of the customer and inventory collections.
func (b *Buffer) Len() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.customers), len(b.inventory)
}

// retainTail returns a fresh slice holding the trailing RetentionWindow
// elements, or an empty slice when records fit inside the window. The
// result never aliases the snapshot copies.
func retainTail[T any](records []T) []T {
	if len(records) <= RetentionWindow {
		return nil
	}
	tail := make([]T, RetentionWindow)
	copy(tail, records[len(records)-RetentionWindow:])
	return tail
}
