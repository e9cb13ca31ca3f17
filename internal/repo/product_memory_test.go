package repo

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/avelez-dev/stock-locator/internal/models"
)

func TestUpsertThenGetByBarcode(t *testing.T) {
	r := NewInMemoryProductRepository()

	created, err := r.Upsert(models.Product{Barcode: "B-1", Name: "Drill", Location: "A1", Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected an id to be assigned")
	}
	if created.LastUpdated == "" {
		t.Error("expected last_updated to be set")
	}

	got, err := r.GetByBarcode("B-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Drill" || got.Location != "A1" || got.Quantity != 5 {
		t.Errorf("unexpected product: %+v", got)
	}
}

func TestUpsertOverwritesExistingBarcode(t *testing.T) {
	r := NewInMemoryProductRepository()

	first, _ := r.Upsert(models.Product{Barcode: "B-2", Location: "A1", Quantity: 1})
	second, err := r.Upsert(models.Product{Barcode: "B-2", Location: "C3", Quantity: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected id %d to be kept, got %d", first.ID, second.ID)
	}
	if second.Location != "C3" || second.Quantity != 8 {
		t.Errorf("expected fields to be overwritten, got %+v", second)
	}
	if second.LastUpdated < first.LastUpdated {
		t.Errorf("expected last_updated to advance, got %s then %s", first.LastUpdated, second.LastUpdated)
	}

	_, total, _ := r.Filter(ProductFilter{})
	if total != 1 {
		t.Errorf("expected a single record per barcode, got %d", total)
	}
}

func TestGetByBarcode_NotFound(t *testing.T) {
	r := NewInMemoryProductRepository()

	_, err := r.GetByBarcode("unknown-barcode")
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDecrementQuantity(t *testing.T) {
	r := NewInMemoryProductRepository()
	r.Upsert(models.Product{Barcode: "B-3", Quantity: 5})

	p, err := r.DecrementQuantity("B-3", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", p.Quantity)
	}

	_, err = r.DecrementQuantity("B-3", 10)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}

	got, _ := r.GetByBarcode("B-3")
	if got.Quantity != 2 {
		t.Errorf("expected quantity to remain 2 after rejection, got %d", got.Quantity)
	}

	_, err = r.DecrementQuantity("missing", 1)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestConcurrentDecrements(t *testing.T) {
	const n = 50

	r := NewInMemoryProductRepository()
	r.Upsert(models.Product{Barcode: "B-CONC", Quantity: n})

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.DecrementQuantity("B-CONC", 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected decrement failure: %v", err)
	}

	got, _ := r.GetByBarcode("B-CONC")
	if got.Quantity != 0 {
		t.Errorf("expected quantity 0 after %d concurrent decrements, got %d", n, got.Quantity)
	}
}

func TestConcurrentDecrements_NeverNegative(t *testing.T) {
	const n = 40
	const stock = 25

	r := NewInMemoryProductRepository()
	r.Upsert(models.Product{Barcode: "B-OVER", Quantity: stock})

	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.DecrementQuantity("B-OVER", 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientStock):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if succeeded != stock {
		t.Errorf("expected exactly %d successful decrements, got %d", stock, succeeded)
	}
	if rejected != n-stock {
		t.Errorf("expected %d rejections, got %d", n-stock, rejected)
	}

	got, _ := r.GetByBarcode("B-OVER")
	if got.Quantity != 0 {
		t.Errorf("expected quantity 0, got %d", got.Quantity)
	}
}

func TestFilter(t *testing.T) {
	r := NewInMemoryProductRepository()
	for i := 1; i <= 5; i++ {
		r.Upsert(models.Product{Barcode: fmt.Sprintf("F-%d", i), Location: "Aisle 1"})
	}
	r.Upsert(models.Product{Barcode: "X-9", Location: "Back room"})

	products, total, err := r.Filter(ProductFilter{Query: "f-"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 || len(products) != 5 {
		t.Errorf("expected 5 matches, got total=%d len=%d", total, len(products))
	}

	offset, limit := 2, 2
	products, total, _ = r.Filter(ProductFilter{Query: "f-", Offset: &offset, Limit: &limit})
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(products) != 2 || products[0].Barcode != "F-3" {
		t.Errorf("unexpected page: %+v", products)
	}

	products, total, _ = r.Filter(ProductFilter{Location: "back"})
	if total != 1 || products[0].Barcode != "X-9" {
		t.Errorf("expected the back room product, got %+v", products)
	}
}
