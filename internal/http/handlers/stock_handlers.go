package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/avelez-dev/stock-locator/internal/redissvc"
	repo "github.com/avelez-dev/stock-locator/internal/repo"
	"github.com/go-chi/chi/v5"
)

// StockOutHandler godoc
// @Summary Check out stock for a product
// @Description Decrements the product quantity by the given amount (default 1). Rejects the call when not enough stock is available.
// @Tags inventory
// @Accept json
// @Produce json
// @Param barcode path string true "Product barcode"
// @Param request body StockOutRequest false "Amount to check out"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /product/{barcode}/out [post]
func StockOutHandler(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")

	// An empty body means the implicit default of 1.
	var req StockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		errorJSON(w, http.StatusBadRequest, "invalid input")
		return
	}

	amount := 1
	if req.Amount != nil {
		amount = *req.Amount
	}
	if amount <= 0 {
		errorJSON(w, http.StatusBadRequest, "amount must be greater than zero")
		return
	}

	product, err := productRepo.DecrementQuantity(barcode, amount)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			errorJSON(w, http.StatusNotFound, "product not found")
		case errors.Is(err, repo.ErrInsufficientStock):
			errorJSON(w, http.StatusBadRequest, "insufficient stock")
		default:
			errorJSON(w, http.StatusInternalServerError, "could not update stock")
		}
		return
	}

	if cache != nil {
		cache.Invalidate(redissvc.ProductKey(barcode))
	}

	if product.Quantity == 0 {
		log.Printf("⚠️ Product %s (%s) is now out of stock", product.Barcode, product.Name)
	}

	if err := writeJSON(w, http.StatusOK, toProductResponse(product)); err != nil {
		log.Printf("failed to write stock-out response: %v", err)
	}
}
