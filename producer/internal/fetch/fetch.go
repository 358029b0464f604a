// Package fetch pulls customer and product records from the upstream
// CRM/inventory APIs, walking pagination and retrying transient failures
// with exponential backoff.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/dataflow-systems/integration-stack/common/logging"
	"github.com/dataflow-systems/integration-stack/common/models"
)

// Client fetches from the mock upstream APIs.
type Client struct {
	crmURL       string
	inventoryURL string
	http         *http.Client
	maxRetries   int
	retryDelay   time.Duration
	logger       *logging.Logger
}

// wireProduct is the inventory API's schema, which names the stock level
// "stock". The producer republishes it as "quantity"; both spellings exist
// in the wild and the aggregator accepts either.
type wireProduct struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Stock    int     `json:"stock"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type page[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewClient creates a fetch client. maxRetries and retryDelay come from the
// MAX_RETRIES / RETRY_DELAY configuration and bound the per-page retry.
func NewClient(crmURL, inventoryURL string, maxRetries int, retryDelay time.Duration, logger *logging.Logger) *Client {
	return &Client{
		crmURL:       strings.TrimRight(crmURL, "/"),
		inventoryURL: strings.TrimRight(inventoryURL, "/"),
		http:         &http.Client{Timeout: 10 * time.Second},
		maxRetries:   maxRetries,
		retryDelay:   retryDelay,
		logger:       logger,
	}
}

// Customers fetches every customer page from the CRM API.
func (c *Client) Customers(ctx context.Context) ([]models.CustomerRecord, error) {
	records, err := fetchAll[models.CustomerRecord](ctx, c, c.crmURL+"/customers")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers from CRM: %w", err)
	}
	c.logger.Info("fetched customers from CRM", logging.Records(len(records)))
	return records, nil
}

// Products fetches every product page from the inventory API and maps the
// stock field onto quantity for downstream consumption.
func (c *Client) Products(ctx context.Context) ([]models.InventoryRecord, error) {
	wire, err := fetchAll[wireProduct](ctx, c, c.inventoryURL+"/products")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products from inventory: %w", err)
	}

	records := make([]models.InventoryRecord, 0, len(wire))
	for _, p := range wire {
		quantity := p.Stock
		records = append(records, models.InventoryRecord{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Quantity: &quantity,
			Category: p.Category,
		})
	}
	c.logger.Info("fetched products from inventory", logging.Records(len(records)))
	return records, nil
}

// fetchAll walks the paginated listing at baseURL until total_pages is
// exhausted. Each page request is retried independently.
func fetchAll[T any](ctx context.Context, c *Client, baseURL string) ([]T, error) {
	var records []T

	for pageNum := 1; ; pageNum++ {
		p, err := fetchPage[T](ctx, c, fmt.Sprintf("%s?page=%d", baseURL, pageNum))
		if err != nil {
			return nil, err
		}
		records = append(records, p.Data...)

		if pageNum >= p.TotalPages || len(p.Data) == 0 {
			return records, nil
		}
	}
}

// fetchPage requests one page, retrying non-2xx and transport errors with
// exponential backoff until maxRetries attempts are exhausted.
func fetchPage[T any](ctx context.Context, c *Client, url string) (page[T], error) {
	var result page[T]

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			c.logger.Warn("upstream request failed, will retry", "url", url, logging.Err(err))
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
			c.logger.Warn("upstream returned error, will retry",
				"url", url, logging.Status(resp.StatusCode), "body", string(detail))
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode page: %w", err))
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryDelay
	policy.Multiplier = 2

	err := backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx))
	return result, err
}
