package handlers

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	models "github.com/avelez-dev/stock-locator/internal/models"
	"github.com/avelez-dev/stock-locator/internal/redissvc"
	repo "github.com/avelez-dev/stock-locator/internal/repo"
	"github.com/go-chi/chi/v5"
)

// HealthCheckHandler godoc
// @Summary Service health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "healthy", Service: "stock-locator"}
	if cache != nil {
		resp.Redis = "connected"
		if err := cache.Rdb().Ping(cache.Ctx()).Err(); err != nil {
			resp.Redis = "disconnected"
		}
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("failed to write health response: %v", err)
	}
}

// CreateOrUpdateProductHandler godoc
// @Summary Create or update a product by barcode
// @Description Creates the product on first sight of the barcode, overwrites its mutable fields afterwards
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to upsert"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /product [post]
func CreateOrUpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid input")
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		if err := writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validationErrors,
		}); err != nil {
			log.Printf("failed to write validation response: %v", err)
		}
		return
	}

	quantity := 0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	product := models.Product{
		Name:     req.Name,
		Barcode:  req.Barcode,
		Location: req.Location,
		Quantity: quantity,
	}
	saved, err := productRepo.Upsert(product)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "could not save product")
		return
	}

	if cache != nil {
		cache.Invalidate(redissvc.ProductKey(saved.Barcode))
	}

	if err := writeJSON(w, http.StatusCreated, toProductResponse(saved)); err != nil {
		log.Printf("failed to write product response: %v", err)
	}
}

// GetProductByBarcodeHandler godoc
// @Summary Get product by barcode
// @Tags products
// @Produce json
// @Param barcode path string true "Product barcode"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Router /product/{barcode} [get]
func GetProductByBarcodeHandler(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")

	if cache != nil {
		var cached ProductResponse
		hit, err := cache.GetJSON(redissvc.ProductKey(barcode), &cached)
		if err != nil {
			log.Printf("cache lookup failed for %s: %v", barcode, err)
		}
		if hit {
			if err := writeJSON(w, http.StatusOK, cached); err != nil {
				log.Printf("failed to write product response: %v", err)
			}
			return
		}
	}

	product, err := productRepo.GetByBarcode(barcode)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			errorJSON(w, http.StatusNotFound, "product not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "could not fetch product")
		return
	}

	resp := toProductResponse(product)
	if cache != nil {
		if err := cache.SetJSON(redissvc.ProductKey(barcode), resp); err != nil {
			log.Printf("cache store failed for %s: %v", barcode, err)
		}
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("failed to write product response: %v", err)
	}
}

// ListProductsHandler godoc
// @Summary List and search products
// @Tags products
// @Produce json
// @Param q query string false "Substring filter on barcode, location or name"
// @Param location query string false "Substring filter on location"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {object} ErrorResponse
// @Router /products [get]
func ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repo.ProductFilter{
		Query:    q.Get("q"),
		Location: q.Get("location"),
		Offset:   parseIntPtr(q.Get("offset")),
		Limit:    parseIntPtr(q.Get("limit")),
	}

	if filter.Limit != nil && *filter.Limit <= 0 {
		errorJSON(w, http.StatusBadRequest, "limit must be greater than zero")
		return
	}
	if filter.Offset != nil && *filter.Offset < 0 {
		errorJSON(w, http.StatusBadRequest, "offset must be zero or positive")
		return
	}

	cacheKey := redissvc.ListKey(hashQuery(filter))
	if cache != nil {
		var cached ProductsSearchResult
		hit, err := cache.GetJSON(cacheKey, &cached)
		if err != nil {
			log.Printf("cache lookup failed for list: %v", err)
		}
		if hit {
			if err := writeJSON(w, http.StatusOK, cached); err != nil {
				log.Printf("failed to write list response: %v", err)
			}
			return
		}
	}

	products, total, err := productRepo.Filter(filter)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "could not fetch products")
		return
	}

	resp := ProductsSearchResult{
		Data: make([]ProductResponse, len(products)),
		Meta: Meta{TotalCount: total},
	}
	for i, p := range products {
		resp.Data[i] = toProductResponse(p)
	}

	if cache != nil {
		if err := cache.SetJSON(cacheKey, resp); err != nil {
			log.Printf("cache store failed for list: %v", err)
		}
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("failed to write list response: %v", err)
	}
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		Barcode:     p.Barcode,
		Location:    p.Location,
		Quantity:    p.Quantity,
		LastUpdated: p.LastUpdated,
	}
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func hashQuery(pf repo.ProductFilter) string {
	offset, limit := -1, -1
	if pf.Offset != nil {
		offset = *pf.Offset
	}
	if pf.Limit != nil {
		limit = *pf.Limit
	}
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%d|%d", pf.Query, pf.Location, offset, limit)))
	return hex.EncodeToString(sum[:8])
}
