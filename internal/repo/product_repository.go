package repo

import (
	"errors"

	"github.com/avelez-dev/stock-locator/internal/models"
)

// ProductRepository defines the interface for product data operations.
// Products are keyed by their unique barcode.
type ProductRepository interface {
	GetByBarcode(barcode string) (models.Product, error)
	Filter(pf ProductFilter) ([]models.Product, int, error)
	Upsert(product models.Product) (models.Product, error)
	DecrementQuantity(barcode string, amount int) (models.Product, error)
}

// ErrProductNotFound is returned when no product exists for a barcode.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock is returned when a decrement would drive quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")
