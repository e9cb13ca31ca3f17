package repo

type InMemoryMetricsRepository struct {
	products *InMemoryProductRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (r *InMemoryMetricsRepository) SetRepositories(products *InMemoryProductRepository) {
	r.products = products
}

func (r *InMemoryMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	var m Metrics
	if r.products == nil {
		return m, nil
	}

	products, _, err := r.products.Filter(ProductFilter{})
	if err != nil {
		return m, err
	}

	locations := make(map[string]int)
	for _, p := range products {
		m.TotalProducts++
		m.TotalUnits += p.Quantity
		if p.Quantity == 0 {
			m.OutOfStockCount++
		}
		if p.Location != "" {
			locations[p.Location]++
		}
	}

	for loc, count := range locations {
		if count > m.BusiestLocation.ProductCount {
			m.BusiestLocation = LocationSummary{Location: loc, ProductCount: count}
		}
	}

	return m, nil
}
