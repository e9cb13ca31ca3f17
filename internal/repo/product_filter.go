package repo

// ProductFilter narrows listing results. Query matches barcode, location or
// name with case-insensitive contains semantics; Location matches location only.
type ProductFilter struct {
	Query    string
	Location string
	Offset   *int
	Limit    *int
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
