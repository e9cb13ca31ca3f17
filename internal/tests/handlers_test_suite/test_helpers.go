package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	handler "github.com/avelez-dev/stock-locator/internal/http/handlers"
	"github.com/avelez-dev/stock-locator/internal/repo"
)

var productRepo *repo.InMemoryProductRepository

func init() {
	setupTestRepos()
}

func setupTestRepos() {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	metricsRepo := repo.NewInMemoryMetricsRepository()
	handler.SetMetricsRepo(metricsRepo)
	metricsRepo.SetRepositories(productRepo)
}

func clearAllProducts() {
	productRepo.Clear()
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/product", bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getProduct(r http.Handler, barcode string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/product/"+barcode, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// stockOut posts to the stock-out endpoint. A nil request sends no body,
// which exercises the implicit default amount.
func stockOut(r http.Handler, barcode string, request *handler.StockOutRequest) *httptest.ResponseRecorder {
	var req *http.Request
	if request == nil {
		req = httptest.NewRequest(http.MethodPost, "/product/"+barcode+"/out", nil)
	} else {
		body, _ := json.Marshal(request)
		req = httptest.NewRequest(http.MethodPost, "/product/"+barcode+"/out", bytes.NewReader(body))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func intPtr(v int) *int {
	return &v
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
