package domain

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
)

// FilterState holds the user-selected catalog facets. The zero value
// imposes no constraints except the price range, which must be set
// explicitly (DefaultFilter provides the full range).
type FilterState struct {
	Search     string
	Categories []string
	PriceMin   float64
	PriceMax   float64
	Sizes      []string
	Colors     []string
	Featured   bool
	Sort       SortKey
}

const DefaultPriceCeiling = 1000

func DefaultFilter() FilterState {
	return FilterState{
		PriceMin: 0,
		PriceMax: DefaultPriceCeiling,
		Sort:     SortNewest,
	}
}

// Normalize swaps an inverted price range and falls back to the
// newest-first sort for unknown keys. Malformed filters are repaired,
// never rejected.
func (f FilterState) Normalize() FilterState {
	if f.PriceMin > f.PriceMax {
		f.PriceMin, f.PriceMax = f.PriceMax, f.PriceMin
	}
	switch f.Sort {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc:
	default:
		f.Sort = SortNewest
	}
	return f
}
