package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dataflow-systems/integration-stack/common/httputil"
	"github.com/dataflow-systems/integration-stack/common/models"
)

// ReceiveAnalytics serves POST /analytics/data, the downstream sink the
// aggregator delivers merged batches to. The body content is counted and
// logged; nothing is persisted.
func (h *Handler) ReceiveAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var batch models.MergedBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "No data provided")
		return
	}

	customersCount := len(batch.Customers)
	inventoryCount := len(batch.Inventory)

	h.logger.InfoContext(r.Context(), "analytics received merged data",
		"customers", customersCount,
		"inventory", inventoryCount,
		"timestamp", batch.Timestamp)
	h.logger.InfoContext(r.Context(), "data summary",
		"total_customers", batch.Summary.TotalCustomers,
		"active_customers", batch.Summary.ActiveCustomers,
		"total_products", batch.Summary.TotalProducts)

	httputil.WriteJSON(w, http.StatusOK, models.AnalyticsAck{
		Status:             "success",
		Message:            "Analytics data processed successfully",
		CustomersProcessed: customersCount,
		InventoryProcessed: inventoryCount,
		TotalRecords:       customersCount + inventoryCount,
		ProcessedAt:        h.now().Format(time.RFC3339),
	})
}

// AnalyticsStatus serves GET /analytics/status.
func (h *Handler) AnalyticsStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"endpoint": "/analytics/data",
		"methods":  []string{http.MethodPost},
		"message":  "Analytics service is ready to receive data",
	})
}
