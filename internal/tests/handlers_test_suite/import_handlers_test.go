package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/avelez-dev/stock-locator/internal/http"
	handler "github.com/avelez-dev/stock-locator/internal/http/handlers"
)

func importCSV(r http.Handler, url, csvContent string) *httptest.ResponseRecorder {
	buf, contentType := multipartCSV(csvContent, "products.csv")
	req := httptest.NewRequest(http.MethodPost, url, buf)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportProductsHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	csvContent := "barcode,name,location,quantity\n" +
		"IMP-1,Drill,A1,4\n" +
		"IMP-2,Saw,B2,2\n"

	w := importCSV(r, "/products/import", csvContent)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.ImportedProductsCount != 2 {
		t.Errorf("expected 2 imported, got %d", resp.ImportedProductsCount)
	}
	if len(resp.Errors) != 0 {
		t.Errorf("expected no errors, got %v", resp.Errors)
	}

	gw := getProduct(r, "IMP-2")
	if gw.Code != http.StatusOK {
		t.Fatalf("expected imported product to exist, got %d", gw.Code)
	}
}

func TestImportProductsHandler_SkipMode(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Barcode: "IMP-DUP", Location: "A1", Quantity: intPtr(9)})

	csvContent := "barcode,name,location,quantity\n" +
		"IMP-DUP,Tape,Z9,1\n" +
		"IMP-NEW,Glue,Z8,2\n"

	w := importCSV(r, "/products/import", csvContent)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.ImportedProductsCount != 1 {
		t.Errorf("expected 1 imported, got %d", resp.ImportedProductsCount)
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("expected 1 error for the duplicate, got %d", len(resp.Errors))
	}

	// Existing record must be untouched in skip mode.
	gw := getProduct(r, "IMP-DUP")
	var existing handler.ProductResponse
	if err := json.NewDecoder(gw.Body).Decode(&existing); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if existing.Quantity != 9 || existing.Location != "A1" {
		t.Errorf("expected skipped product to keep its fields, got %+v", existing)
	}
}

func TestImportProductsHandler_UpdateMode(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Barcode: "IMP-UPD", Location: "A1", Quantity: intPtr(9)})

	csvContent := "barcode,name,location,quantity\n" +
		"IMP-UPD,Tape,Z9,1\n"

	w := importCSV(r, "/products/import?mode=update", csvContent)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.ImportedProductsCount != 1 {
		t.Errorf("expected 1 imported, got %d", resp.ImportedProductsCount)
	}

	gw := getProduct(r, "IMP-UPD")
	var updated handler.ProductResponse
	if err := json.NewDecoder(gw.Body).Decode(&updated); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if updated.Location != "Z9" || updated.Quantity != 1 {
		t.Errorf("expected updated fields, got %+v", updated)
	}
}

func TestImportProductsHandler_InvalidRows(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	csvContent := "barcode,name,location,quantity\n" +
		",NoBarcode,A1,4\n" +
		"IMP-NEG,Negative,A2,-5\n" +
		"IMP-OK,Fine,A3,1\n"

	w := importCSV(r, "/products/import", csvContent)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.ImportedProductsCount != 1 {
		t.Errorf("expected 1 imported, got %d", resp.ImportedProductsCount)
	}
	if len(resp.Errors) != 2 {
		t.Errorf("expected 2 row errors, got %d", len(resp.Errors))
	}
}

func TestImportProductsHandler_MissingColumn(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	w := importCSV(r, "/products/import", "name,quantity\nDrill,4\n")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestImportProductsHandler_MissingFile(t *testing.T) {
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodPost, "/products/import", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
}
