package repo

type LocationSummary struct {
	Location     string `json:"location"`
	ProductCount int    `json:"product_count"`
}

type Metrics struct {
	TotalProducts   int             `json:"total_products"`
	TotalUnits      int             `json:"total_units"`
	OutOfStockCount int             `json:"out_of_stock_count"`
	BusiestLocation LocationSummary `json:"busiest_location"`
}

type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
