// Package data holds the mock upstream datasets: an in-memory CRM customer
// store and an inventory product store, seeded to roughly a thousand
// records each for scalability testing.
package data

import (
	"fmt"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/dataflow-systems/integration-stack/common/models"
)

// SeedSize is the number of records each store is seeded with.
const SeedSize = 1000

var categories = []string{"Electronics", "Education", "Furniture", "Clothing", "Sports"}

// Customer is a CRM record as served by the mock API. It carries no
// received_at; that field only exists downstream.
type Customer struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CreatedDate string `json:"created_date"`
	Status      string `json:"status"`
}

// Product is an inventory record as served by the mock API. Note the field
// is "stock" here while the producer feed publishes "quantity"; the
// inconsistency is part of the simulated upstream landscape.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Stock    int     `json:"stock"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// CustomerStore is a mutable, lock-guarded customer dataset.
type CustomerStore struct {
	mu        sync.RWMutex
	customers []Customer
}

// ProductStore is a read-mostly product dataset.
type ProductStore struct {
	mu       sync.RWMutex
	products []Product
}

// SeedCustomers builds the customer dataset: the five well-known fixtures
// followed by generated records. Seeding gofakeit makes the dataset
// reproducible in tests.
func SeedCustomers(seed int64) *CustomerStore {
	faker := gofakeit.New(seed)

	customers := []Customer{
		{ID: 1, Name: "John Doe", Email: "john@example.com", CreatedDate: "2024-01-15", Status: "active"},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", CreatedDate: "2024-02-10", Status: "active"},
		{ID: 3, Name: "Bob Johnson", Email: "bob@example.com", CreatedDate: "2024-03-05", Status: "inactive"},
		{ID: 4, Name: "Alice Brown", Email: "alice@example.com", CreatedDate: "2024-04-12", Status: "active"},
		{ID: 5, Name: "Charlie Wilson", Email: "charlie@example.com", CreatedDate: "2024-05-08", Status: "active"},
	}

	for i := int64(len(customers) + 1); i <= SeedSize; i++ {
		status := models.StatusActive
		if faker.Bool() {
			status = "inactive"
		}
		customers = append(customers, Customer{
			ID:          i,
			Name:        faker.Name(),
			Email:       fmt.Sprintf("customer%d@example.com", i),
			CreatedDate: fmt.Sprintf("2024-%02d-%02d", faker.Number(1, 12), faker.Number(1, 28)),
			Status:      status,
		})
	}

	return &CustomerStore{customers: customers}
}

// SeedProducts builds the product dataset: five fixtures plus generated
// records.
func SeedProducts(seed int64) *ProductStore {
	faker := gofakeit.New(seed)

	products := []Product{
		{ID: 101, Name: "Laptop", Stock: 50, Price: 999.99, Category: "Electronics"},
		{ID: 102, Name: "Phone", Stock: 75, Price: 699.99, Category: "Electronics"},
		{ID: 103, Name: "Book", Stock: 200, Price: 29.99, Category: "Education"},
		{ID: 104, Name: "Chair", Stock: 25, Price: 149.99, Category: "Furniture"},
		{ID: 105, Name: "Desk", Stock: 15, Price: 299.99, Category: "Furniture"},
	}

	for i := int64(106); i <= SeedSize; i++ {
		products = append(products, Product{
			ID:       i,
			Name:     faker.ProductName(),
			Stock:    faker.Number(1, 100),
			Price:    faker.Price(10.0, 999.99),
			Category: categories[faker.Number(0, len(categories)-1)],
		})
	}

	return &ProductStore{products: products}
}

// List returns the slice of customers in [start, end) of the full dataset
// and the total count.
func (s *CustomerStore) List(start, end int) ([]Customer, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.customers)
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	page := make([]Customer, end-start)
	copy(page, s.customers[start:end])
	return page, total
}

// Get returns the customer with the given id.
func (s *CustomerStore) Get(id int64) (Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

// Create appends a new active customer with the next free id and today's
// created_date, returning the stored record.
func (s *CustomerStore) Create(name, email string) Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for _, c := range s.customers {
		if c.ID > maxID {
			maxID = c.ID
		}
	}

	customer := Customer{
		ID:          maxID + 1,
		Name:        name,
		Email:       email,
		CreatedDate: time.Now().Format("2006-01-02"),
		Status:      models.StatusActive,
	}
	s.customers = append(s.customers, customer)
	return customer
}

// Len returns the number of customers.
func (s *CustomerStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers)
}

// List returns the slice of products in [start, end) and the total count.
func (s *ProductStore) List(start, end int) ([]Product, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.products)
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	page := make([]Product, end-start)
	copy(page, s.products[start:end])
	return page, total
}

// Get returns the product with the given id.
func (s *ProductStore) Get(id int64) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Len returns the number of products.
func (s *ProductStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
