// Package dispatch builds merged batches from buffer snapshots and
// delivers them to the analytics endpoint.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dataflow-systems/integration-stack/aggregator/internal/buffer"
	"github.com/dataflow-systems/integration-stack/aggregator/internal/metrics"
	"github.com/dataflow-systems/integration-stack/common/logging"
	"github.com/dataflow-systems/integration-stack/common/models"
)

// DefaultTimeout bounds a single analytics POST.
const DefaultTimeout = 30 * time.Second

// maxErrorBody limits how much of a failure response body is logged.
const maxErrorBody = 512

// Dispatcher merges buffered records and POSTs the batch downstream.
//
// Delivery is fire-and-forget: a single attempt, failures logged and
// swallowed. The snapshot trims the buffer before the outcome is known, so
// records beyond the retention window are lost if the POST fails.
type Dispatcher struct {
	buf     *buffer.Buffer
	baseURL string
	client  *http.Client
	logger  *logging.Logger

	now func() time.Time
}

// New creates a Dispatcher posting to {baseURL}/analytics/data. A zero
// timeout falls back to DefaultTimeout.
func New(buf *buffer.Buffer, baseURL string, timeout time.Duration, logger *logging.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		buf:     buf,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		now:     time.Now,
	}
}

// Flush snapshots the buffer, trims it to the retention window, and sends
// the merged batch. With nothing buffered no HTTP call is made. Flush never
// returns an error; the next scheduled flush is the only retry mechanism.
func (d *Dispatcher) Flush(ctx context.Context) {
	customers, inventory := d.buf.SnapshotAndRetain()

	remC, remI := d.buf.Len()
	metrics.BufferedRecords.WithLabelValues("customers").Set(float64(remC))
	metrics.BufferedRecords.WithLabelValues("inventory").Set(float64(remI))

	batch := models.NewMergedBatch(d.now(), customers, inventory)
	if batch.IsEmpty() {
		d.logger.Debug("no data to merge, waiting for more records")
		metrics.FlushAttempts.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return
	}

	body, err := json.Marshal(batch)
	if err != nil {
		d.logger.Error("failed to serialize merged batch", logging.Err(err))
		metrics.FlushAttempts.WithLabelValues(metrics.OutcomeFailure).Inc()
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/analytics/data", bytes.NewReader(body))
	if err != nil {
		d.logger.Error("failed to build analytics request", logging.Err(err))
		metrics.FlushAttempts.WithLabelValues(metrics.OutcomeFailure).Inc()
		return
	}
	req.Header.Set("Content-Type", "application/json")

	start := d.now()
	resp, err := d.client.Do(req)
	metrics.DispatchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		d.logger.Error("error sending merged data to analytics", logging.Err(err))
		metrics.FlushAttempts.WithLabelValues(metrics.OutcomeFailure).Inc()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		d.logger.Error("analytics rejected merged data",
			logging.Status(resp.StatusCode),
			"body", string(detail))
		metrics.FlushAttempts.WithLabelValues(metrics.OutcomeFailure).Inc()
		return
	}

	// The ack body is informational only; delivery success is the status code.
	var ack models.AnalyticsAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err == nil {
		d.logger.Info("sent merged data to analytics",
			"customers", batch.Summary.TotalCustomers,
			"products", batch.Summary.TotalProducts,
			"active_customers", batch.Summary.ActiveCustomers,
			"processed_at", ack.ProcessedAt)
	} else {
		d.logger.Info("sent merged data to analytics",
			"customers", batch.Summary.TotalCustomers,
			"products", batch.Summary.TotalProducts,
			"active_customers", batch.Summary.ActiveCustomers)
	}
	metrics.FlushAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
}
