package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMergedBatchSummary(t *testing.T) {
	customers := []CustomerRecord{
		{ID: 1, Status: "active"},
		{ID: 2, Status: "inactive"},
		{ID: 3, Status: "active"},
		{ID: 4, Status: "pending"},
	}
	inventory := []InventoryRecord{{ID: 101}, {ID: 102}}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	batch := NewMergedBatch(now, customers, inventory)

	assert.Equal(t, "2025-06-01T12:00:00Z", batch.Timestamp)
	assert.Equal(t, 4, batch.Summary.TotalCustomers)
	assert.Equal(t, 2, batch.Summary.TotalProducts)
	assert.Equal(t, 2, batch.Summary.ActiveCustomers)
	assert.LessOrEqual(t, batch.Summary.ActiveCustomers, batch.Summary.TotalCustomers)
	assert.False(t, batch.IsEmpty())
}

func TestEmptyBatch(t *testing.T) {
	batch := NewMergedBatch(time.Now(), nil, nil)
	assert.True(t, batch.IsEmpty())
	assert.Zero(t, batch.Summary.TotalCustomers)
	assert.Zero(t, batch.Summary.ActiveCustomers)
}

func TestActiveCustomerCountOnlyMatchesExactStatus(t *testing.T) {
	customers := []CustomerRecord{
		{Status: "active"},
		{Status: "Active"},
		{Status: ""},
		{Status: "activeX"},
	}
	assert.Equal(t, 1, ActiveCustomerCount(customers))
}

func TestInventoryRecordCarriesEitherStockSpelling(t *testing.T) {
	var fromProducer InventoryRecord
	require.NoError(t, json.Unmarshal(
		[]byte(`{"id":101,"name":"Laptop","price":999.99,"quantity":50,"category":"Electronics"}`),
		&fromProducer))
	require.NotNil(t, fromProducer.Quantity)
	assert.Equal(t, 50, *fromProducer.Quantity)
	assert.Nil(t, fromProducer.Stock)

	var fromMockAPI InventoryRecord
	require.NoError(t, json.Unmarshal(
		[]byte(`{"id":101,"name":"Laptop","price":999.99,"stock":50,"category":"Electronics"}`),
		&fromMockAPI))
	require.NotNil(t, fromMockAPI.Stock)
	assert.Nil(t, fromMockAPI.Quantity)
}

func TestWireFormatOmitsUnsetReceivedAt(t *testing.T) {
	body, err := json.Marshal(CustomerRecord{ID: 1, Name: "John Doe", Status: "active"})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "received_at")

	stamped := CustomerRecord{ID: 1, ReceivedAt: time.Now()}
	body, err = json.Marshal(stamped)
	require.NoError(t, err)
	assert.Contains(t, string(body), "received_at")
}
