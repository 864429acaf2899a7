package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidPrice    = errors.New("price range is invalid")
	ErrUnknownBrand    = errors.New("unknown brand")
)

type Category string

const (
	CategoryAll      Category = "All"
	CategoryFlagship Category = "Flagship"
	CategoryMidRange Category = "Mid-range"
	CategoryBudget   Category = "Budget"
)

// Categories lists the tab selector values in display order.
var Categories = []Category{CategoryAll, CategoryFlagship, CategoryMidRange, CategoryBudget}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

type Specs struct {
	Screen    string `json:"screen"`
	Processor string `json:"processor"`
	RAM       string `json:"ram"`
	Storage   string `json:"storage"`
	Camera    string `json:"camera"`
}

// Product is immutable once the catalog is loaded.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Specs       Specs           `json:"specs"`
}
