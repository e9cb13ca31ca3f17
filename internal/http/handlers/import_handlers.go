package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	models "github.com/avelez-dev/stock-locator/internal/models"
	"github.com/avelez-dev/stock-locator/internal/redissvc"
)

type csvRow struct {
	Barcode  string
	Name     string
	Location string
	Quantity int
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"barcode", "location", "quantity"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", required)
		}
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := csvRow{
			Barcode:  record[index["barcode"]],
			Location: record[index["location"]],
			Quantity: parseInt(record[index["quantity"]]),
		}
		if i, ok := index["name"]; ok {
			row.Name = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func validateRow(r csvRow) error {
	if strings.TrimSpace(r.Barcode) == "" {
		return errors.New("missing barcode")
	}
	if r.Quantity < 0 {
		return errors.New("invalid quantity")
	}
	return nil
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Bulk-loads products from a CSV file with barcode, name, location and quantity columns
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {object} ErrorResponse
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	var imported int
	var errorsList []ProductValidationError

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if err := validateRow(rec); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}

		if mode == "skip" {
			if _, err := productRepo.GetByBarcode(rec.Barcode); err == nil {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: barcode '%s' already exists", rowNum, rec.Barcode)})
				continue
			}
		}

		product := models.Product{
			Barcode:  rec.Barcode,
			Name:     rec.Name,
			Location: rec.Location,
			Quantity: rec.Quantity,
		}
		if _, err := productRepo.Upsert(product); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		if cache != nil {
			cache.Invalidate(redissvc.ProductKey(rec.Barcode))
		}
		imported++
	}

	err = writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})

	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}
