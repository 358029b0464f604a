package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dataflow-systems/integration-stack/common/httputil"
)

// ListProducts serves GET /products with pagination and a simulated 0.5%
// outage rate.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.failureRoll() < productFailureRate {
		httputil.WriteError(w, http.StatusInternalServerError, "Inventory system temporarily unavailable")
		return
	}

	p := httputil.ParsePagination(r)
	total := h.products.Len()
	start, end := p.Bounds(total)
	page, total := h.products.List(start, end)

	httputil.WriteJSON(w, http.StatusOK, ListResponse{
		Data:       page,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: p.TotalPages(total),
	})
}

// GetProduct serves GET /products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/products/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, ok := h.products.Get(id)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, product)
}
