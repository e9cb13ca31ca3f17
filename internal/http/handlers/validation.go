package handlers

import (
	"strings"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Barcode) == "" {
		errs = append(errs, ProductValidationError{Field: "Barcode", Description: "Barcode is required"})
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		errs = append(errs, ProductValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	return errs
}
