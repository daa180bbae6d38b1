package enums

import "fmt"

// ProductCategory represents the canonical catalog categories.
type ProductCategory string

const (
	ProductCategoryPlants     ProductCategory = "plants"
	ProductCategorySeeds      ProductCategory = "seeds"
	ProductCategoryPots       ProductCategory = "pots"
	ProductCategorySoil       ProductCategory = "soil"
	ProductCategoryFertilizer ProductCategory = "fertilizer"
	ProductCategoryTools      ProductCategory = "tools"
	ProductCategoryDecor      ProductCategory = "decor"
)

// ProductCategoryDefault is assigned when a listing carries no category.
const ProductCategoryDefault = ProductCategoryPlants

var validProductCategories = []ProductCategory{
	ProductCategoryPlants,
	ProductCategorySeeds,
	ProductCategoryPots,
	ProductCategorySoil,
	ProductCategoryFertilizer,
	ProductCategoryTools,
	ProductCategoryDecor,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the category is recognized.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts a raw string into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
