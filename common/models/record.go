// Package models defines the record types flowing through the integration
// pipeline: the two upstream feeds and the merged batch sent downstream.
package models

import "time"

// StatusActive is the customer status counted in batch summaries.
const StatusActive = "active"

// CustomerRecord is a CRM record as published on the customer topic.
// Fields are passed through as received; ReceivedAt is stamped by the
// aggregator's buffer at ingestion time.
type CustomerRecord struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	CreatedDate string    `json:"created_date"`
	ReceivedAt  time.Time `json:"received_at,omitzero"`
}

// InventoryRecord is a product record as published on the inventory topic.
// The upstream schema is inconsistent: the producer feed carries the stock
// level as "quantity" while the mock inventory API calls it "stock". Both
// are kept optional and passed through untouched.
type InventoryRecord struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Quantity   *int      `json:"quantity,omitempty"`
	Stock      *int      `json:"stock,omitempty"`
	Category   string    `json:"category"`
	ReceivedAt time.Time `json:"received_at,omitzero"`
}

// BatchSummary is the aggregate header of a merged batch.
type BatchSummary struct {
	TotalCustomers  int `json:"total_customers"`
	TotalProducts   int `json:"total_products"`
	ActiveCustomers int `json:"active_customers"`
}

// MergedBatch is the payload POSTed to the analytics endpoint: summary
// counts plus the full record lists snapshotted at merge time.
type MergedBatch struct {
	Timestamp string            `json:"timestamp"`
	Summary   BatchSummary      `json:"summary"`
	Customers []CustomerRecord  `json:"customers"`
	Inventory []InventoryRecord `json:"inventory"`
}

// AnalyticsAck is the response body returned by the analytics receiver on
// success. The aggregator only depends on the HTTP status code; the body is
// decoded for logging.
type AnalyticsAck struct {
	Status             string `json:"status"`
	Message            string `json:"message"`
	CustomersProcessed int    `json:"customers_processed"`
	InventoryProcessed int    `json:"inventory_processed"`
	TotalRecords       int    `json:"total_records"`
	ProcessedAt        string `json:"processed_at"`
}

// ActiveCustomerCount returns the number of records with status "active".
func ActiveCustomerCount(customers []CustomerRecord) int {
	n := 0
	for _, c := range customers {
		if c.Status == StatusActive {
			n++
		}
	}
	return n
}

// NewMergedBatch builds a batch from snapshotted records, with the merge
// timestamp set to now in RFC 3339.
func NewMergedBatch(now time.Time, customers []CustomerRecord, inventory []InventoryRecord) MergedBatch {
	return MergedBatch{
		Timestamp: now.Format(time.RFC3339),
		Summary: BatchSummary{
			TotalCustomers:  len(customers),
			TotalProducts:   len(inventory),
			ActiveCustomers: ActiveCustomerCount(customers),
		},
		Customers: customers,
		Inventory: inventory,
	}
}

// IsEmpty reports whether the batch carries no records at all.
func (b MergedBatch) IsEmpty() bool {
	return len(b.Customers) == 0 && len(b.Inventory) == 0
}
