package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflow-systems/integration-stack/common/logging"
	"github.com/dataflow-systems/integration-stack/common/models"
)

func quietLogger() *logging.Logger {
	return &logging.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func writePage(w http.ResponseWriter, data interface{}, pageNum, totalPages, total int) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":        data,
		"page":        pageNum,
		"limit":       100,
		"total":       total,
		"total_pages": totalPages,
	})
}

func TestCustomersWalksAllPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/customers", r.URL.Path)
		switch r.URL.Query().Get("page") {
		case "1":
			writePage(w, []models.CustomerRecord{
				{ID: 1, Name: "John Doe", Status: "active"},
				{ID: 2, Name: "Jane Smith", Status: "active"},
			}, 1, 2, 3)
		case "2":
			writePage(w, []models.CustomerRecord{
				{ID: 3, Name: "Bob Johnson", Status: "inactive"},
			}, 2, 2, 3)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, 3, time.Millisecond, quietLogger())
	records, err := c.Customers(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "John Doe", records[0].Name)
	assert.Equal(t, int64(3), records[2].ID)
}

func TestCustomersRetriesTransientFailure(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			http.Error(w, `{"error":"CRM system temporarily unavailable"}`, http.StatusInternalServerError)
			return
		}
		writePage(w, []models.CustomerRecord{{ID: 1, Name: "John Doe"}}, 1, 1, 1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, 3, time.Millisecond, quietLogger())
	records, err := c.Customers(context.Background())
	require.NoError(t, err)

	assert.Len(t, records, 1)
	assert.Equal(t, int64(2), attempts.Load())
}

func TestCustomersGivesUpAfterMaxRetries(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, 2, time.Millisecond, quietLogger())
	_, err := c.Customers(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch customers")
	// Initial attempt plus two retries.
	assert.Equal(t, int64(3), attempts.Load())
}

func TestProductsMapsStockToQuantity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		writePage(w, []map[string]interface{}{
			{"id": 101, "name": "Laptop", "stock": 50, "price": 999.99, "category": "Electronics"},
		}, 1, 1, 1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, 3, time.Millisecond, quietLogger())
	records, err := c.Products(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "Laptop", rec.Name)
	require.NotNil(t, rec.Quantity)
	assert.Equal(t, 50, *rec.Quantity)

	// The republished record says "quantity", not "stock".
	body, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"quantity":50`)
	assert.NotContains(t, string(body), "stock")
}

func TestFetchStopsOnCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, srv.URL, 10, time.Second, quietLogger())
	_, err := c.Customers(ctx)
	require.Error(t, err)
}

func TestUndecodablePageIsPermanent(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		fmt.Fprint(w, "{broken")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, 5, time.Millisecond, quietLogger())
	_, err := c.Customers(context.Background())

	require.Error(t, err)
	assert.Equal(t, int64(1), attempts.Load())
}
