package handlers

type ProductRequest struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
	Quantity *int   `json:"quantity,omitempty"`
}

type ProductResponse struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Barcode     string `json:"barcode"`
	Location    string `json:"location"`
	Quantity    int    `json:"quantity"`
	LastUpdated string `json:"last_updated"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type StockOutRequest struct {
	Amount *int `json:"amount,omitempty"` // defaults to 1 when omitted
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error  string                   `json:"error"`
	Fields []ProductValidationError `json:"fields,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Redis   string `json:"redis,omitempty"`
}

type CacheClearResult struct {
	Message     string `json:"message"`
	KeysDeleted int    `json:"keys_deleted"`
}

type RedisStats struct {
	Connected bool `json:"connected"`
	TotalKeys int  `json:"total_keys"`
}

type DatabaseStats struct {
	OpenConnections int `json:"open_connections"`
	IdleConnections int `json:"idle_connections"`
}

type ServiceStats struct {
	Redis    RedisStats    `json:"redis"`
	Database DatabaseStats `json:"database"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
