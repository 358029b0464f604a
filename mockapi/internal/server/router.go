// Package server wires the mock API routes and middleware.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dataflow-systems/integration-stack/common/middleware"
	"github.com/dataflow-systems/integration-stack/mockapi/internal/handlers"
)

// NewRouter builds the mock API handler chain: request IDs and permissive
// CORS around the mux.
func NewRouter(h *handlers.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", h.Home)
	mux.HandleFunc("/customers", h.ListCustomers)
	mux.HandleFunc("/customers/", h.GetCustomer)
	mux.HandleFunc("/products", h.ListProducts)
	mux.HandleFunc("/products/", h.GetProduct)
	mux.HandleFunc("/analytics/data", h.ReceiveAnalytics)
	mux.HandleFunc("/analytics/status", h.AnalyticsStatus)
	mux.HandleFunc("/health", h.Health)
	mux.Handle("/metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = middleware.CORS(middleware.DefaultCORS())(handler)
	handler = middleware.RequestID(handler)
	return handler
}
