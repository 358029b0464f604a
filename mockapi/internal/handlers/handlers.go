// Package handlers implements the mock CRM, inventory and analytics
// endpoints the pipeline integrates with.
package handlers

import (
	"math/rand"
	"time"

	"github.com/dataflow-systems/integration-stack/common/logging"
	"github.com/dataflow-systems/integration-stack/mockapi/internal/data"
)

// Simulated upstream outage rates.
const (
	customerFailureRate = 0.05
	productFailureRate  = 0.005
)

// Handler serves the mock upstream endpoints. failureRoll is injectable so
// tests can pin the simulated outages on or off.
type Handler struct {
	customers *data.CustomerStore
	products  *data.ProductStore
	logger    *logging.Logger

	failureRoll func() float64
	now         func() time.Time
}

// ListResponse is the paginated envelope both listing endpoints share.
type ListResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int         `json:"total"`
	TotalPages int         `json:"total_pages"`
}

// New creates a Handler over the given stores.
func New(customers *data.CustomerStore, products *data.ProductStore, logger *logging.Logger) *Handler {
	return &Handler{
		customers:   customers,
		products:    products,
		logger:      logger,
		failureRoll: rand.Float64,
		now:         time.Now,
	}
}
