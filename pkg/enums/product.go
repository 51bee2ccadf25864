package enums

import "fmt"

// ProductStatus maps to the product_status enum in Postgres.
type ProductStatus string

const (
	ProductStatusActive  ProductStatus = "active"
	ProductStatusDeleted ProductStatus = "deleted"
)

var validProductStatuses = []ProductStatus{
	ProductStatusActive,
	ProductStatusDeleted,
}

// IsValid reports whether the value is a known ProductStatus.
func (p ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}

// ProductUnit tags quantities with the unit they are traded in.
type ProductUnit string

const (
	ProductUnitKilogram ProductUnit = "kg"
	ProductUnitQuintal  ProductUnit = "quintal"
	ProductUnitTonne    ProductUnit = "tonne"
	ProductUnitCrate    ProductUnit = "crate"
	ProductUnitLitre    ProductUnit = "litre"
	ProductUnitDozen    ProductUnit = "dozen"
)

var validProductUnits = []ProductUnit{
	ProductUnitKilogram,
	ProductUnitQuintal,
	ProductUnitTonne,
	ProductUnitCrate,
	ProductUnitLitre,
	ProductUnitDozen,
}

// IsValid reports whether the value is a known ProductUnit.
func (p ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductUnit converts raw input into a ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}

// ProductCategory groups listings for marketplace filtering.
type ProductCategory string

const (
	ProductCategoryGrains     ProductCategory = "grains"
	ProductCategoryVegetables ProductCategory = "vegetables"
	ProductCategoryFruits     ProductCategory = "fruits"
	ProductCategoryPulses     ProductCategory = "pulses"
	ProductCategorySpices     ProductCategory = "spices"
	ProductCategoryDairy      ProductCategory = "dairy"
	ProductCategoryOilseeds   ProductCategory = "oilseeds"
)

var validProductCategories = []ProductCategory{
	ProductCategoryGrains,
	ProductCategoryVegetables,
	ProductCategoryFruits,
	ProductCategoryPulses,
	ProductCategorySpices,
	ProductCategoryDairy,
	ProductCategoryOilseeds,
}

// IsValid reports whether the value is a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
