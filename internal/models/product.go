package models

// Product represents an inventory item tracked by its barcode.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Barcode     string `json:"barcode"`
	Location    string `json:"location"`
	Quantity    int    `json:"quantity"`
	LastUpdated string `json:"last_updated,omitempty"`
}
