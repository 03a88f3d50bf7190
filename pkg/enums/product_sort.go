package enums

import "fmt"

// ProductSort names the supported catalog sort orders.
type ProductSort string

const (
	ProductSortPriceAsc  ProductSort = "priceAsc"
	ProductSortPriceDesc ProductSort = "priceDesc"
	ProductSortNameAsc   ProductSort = "nameAsc"
	ProductSortNameDesc  ProductSort = "nameDesc"
	ProductSortNewest    ProductSort = "newest"
)

var validProductSorts = []ProductSort{
	ProductSortPriceAsc,
	ProductSortPriceDesc,
	ProductSortNameAsc,
	ProductSortNameDesc,
	ProductSortNewest,
}

// String implements fmt.Stringer.
func (s ProductSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductSort.
func (s ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductSort converts raw input into a ProductSort. Empty input falls
// back to newest, matching the storefront default.
func ParseProductSort(value string) (ProductSort, error) {
	if value == "" {
		return ProductSortNewest, nil
	}
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product sort %q", value)
}
