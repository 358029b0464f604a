package dispatch

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflow-systems/integration-stack/aggregator/internal/buffer"
	"github.com/dataflow-systems/integration-stack/common/logging"
	"github.com/dataflow-systems/integration-stack/common/models"
)

func quietLogger() *logging.Logger {
	return &logging.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestFlushWithEmptyBufferMakesNoCall(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	d := New(buffer.New(), srv.URL, time.Second, quietLogger())
	d.Flush(context.Background())

	assert.Zero(t, calls.Load())
}

func TestFlushSendsMergedBatch(t *testing.T) {
	var got models.MergedBatch
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/analytics/data", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(models.AnalyticsAck{Status: "success"})
	}))
	defer srv.Close()

	buf := buffer.New()
	buf.AppendCustomer(models.CustomerRecord{ID: 1, Name: "John Doe", Status: "active"})
	buf.AppendCustomer(models.CustomerRecord{ID: 2, Name: "Bob Johnson", Status: "inactive"})
	laptop := 50
	buf.AppendInventory(models.InventoryRecord{ID: 101, Name: "Laptop", Price: 999.99, Quantity: &laptop})

	d := New(buf, srv.URL, time.Second, quietLogger())
	d.Flush(context.Background())

	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, 2, got.Summary.TotalCustomers)
	assert.Equal(t, 1, got.Summary.TotalProducts)
	assert.Equal(t, 1, got.Summary.ActiveCustomers)
	require.Len(t, got.Customers, 2)
	assert.Equal(t, "John Doe", got.Customers[0].Name)
	require.Len(t, got.Inventory, 1)
	assert.Equal(t, 999.99, got.Inventory[0].Price)
	assert.NotEmpty(t, got.Timestamp)

	// Delivery succeeded, buffer was within the window: fully drained.
	nc, ni := buf.Len()
	assert.Zero(t, nc)
	assert.Zero(t, ni)
}

func TestFlushTrimsEvenWhenDeliveryFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	buf := buffer.New()
	for i := 0; i < 105; i++ {
		buf.AppendCustomer(models.CustomerRecord{ID: int64(i)})
	}

	d := New(buf, srv.URL, time.Second, quietLogger())

	// Must not panic or return an error; failure is logged and swallowed.
	d.Flush(context.Background())

	// The trim happened before the outcome was known.
	nc, _ := buf.Len()
	assert.Equal(t, buffer.RetentionWindow, nc)

	customers, _ := buf.SnapshotAndRetain()
	require.Len(t, customers, buffer.RetentionWindow)
	assert.Equal(t, int64(5), customers[0].ID)
}

func TestFlushSurvivesUnreachableSink(t *testing.T) {
	buf := buffer.New()
	buf.AppendCustomer(models.CustomerRecord{ID: 1})

	d := New(buf, "http://127.0.0.1:0", 100*time.Millisecond, quietLogger())
	d.Flush(context.Background())

	nc, _ := buf.Len()
	assert.Zero(t, nc)
}
