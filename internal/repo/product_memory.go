package repo

import (
	"strings"
	"sync"
	"time"

	"github.com/avelez-dev/stock-locator/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// All access is serialized behind a mutex so concurrent stock-outs against the
// same barcode cannot lose updates.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

// GetByBarcode retrieves a product by its barcode.
func (r *InMemoryProductRepository) GetByBarcode(barcode string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(barcode)
}

func (r *InMemoryProductRepository) getLocked(barcode string) (models.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Upsert creates the product if the barcode is new, otherwise overwrites its
// mutable fields. last_updated is refreshed either way.
func (r *InMemoryProductRepository) Upsert(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	for i, p := range r.products {
		if p.Barcode == product.Barcode {
			product.ID = p.ID
			r.products[i] = product
			return product, nil
		}
	}

	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// DecrementQuantity reduces stock by amount, rejecting the call when not
// enough stock is available.
func (r *InMemoryProductRepository) DecrementQuantity(barcode string, amount int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.Barcode == barcode {
			if p.Quantity < amount {
				return models.Product{}, ErrInsufficientStock
			}
			p.Quantity -= amount
			p.LastUpdated = time.Now().UTC().Format(time.RFC3339)
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Query != "" {
		q := strings.ToLower(pf.Query)
		if !strings.Contains(strings.ToLower(p.Barcode), q) &&
			!strings.Contains(strings.ToLower(p.Location), q) &&
			!strings.Contains(strings.ToLower(p.Name), q) {
			return false
		}
	}
	if pf.Location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(pf.Location)) {
		return false
	}
	return true
}

func (r *InMemoryProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Product
	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	// If offset is greater than the number of filtered products, return empty slice
	if pf.Offset != nil && *pf.Offset > len(filtered) {
		return []models.Product{}, len(filtered), nil
	}

	start := 0
	if pf.Offset != nil {
		start = clamp(*pf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if pf.Limit != nil && *pf.Limit > 0 {
		end = clamp(start+*pf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
	r.nextID = 1
}
