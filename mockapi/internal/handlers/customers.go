package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dataflow-systems/integration-stack/common/httputil"
)

// ListCustomers serves GET /customers with pagination and a simulated 5%
// outage rate, and POST /customers for record creation.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listCustomers(w, r)
	case http.MethodPost:
		h.createCustomer(w, r)
	default:
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	if h.failureRoll() < customerFailureRate {
		httputil.WriteError(w, http.StatusInternalServerError, "CRM system temporarily unavailable")
		return
	}

	p := httputil.ParsePagination(r)
	total := h.customers.Len()
	start, end := p.Bounds(total)
	page, total := h.customers.List(start, end)

	httputil.WriteJSON(w, http.StatusOK, ListResponse{
		Data:       page,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: p.TotalPages(total),
	})
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer := h.customers.Create(req.Name, req.Email)
	h.logger.InfoContext(r.Context(), "created customer", "id", customer.ID, "name", customer.Name)
	httputil.WriteJSON(w, http.StatusCreated, customer)
}

// GetCustomer serves GET /customers/{id}.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/customers/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	customer, ok := h.customers.Get(id)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "Customer not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, customer)
}
