package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Filter panel presets.
const (
	LargeScreenInches = 6.5
	HighResCameraMP   = 100
)

var (
	DefaultPriceMin = decimal.Zero
	DefaultPriceMax = decimal.NewFromInt(2500)
)

var (
	screenSizePattern = regexp.MustCompile(`(\d+\.?\d*)"`)
	cameraMPPattern   = regexp.MustCompile(`(\d+)MP`)
)

// Criteria is the set of active filter facets. A nil threshold means the
// facet does not filter at all.
type Criteria struct {
	Search          string          `json:"search"`
	Category        Category        `json:"category"`
	Brands          []string        `json:"brands"`
	PriceMin        decimal.Decimal `json:"price_min"`
	PriceMax        decimal.Decimal `json:"price_max"`
	MinScreenInches *float64        `json:"min_screen_inches"`
	MinCameraMP     *int            `json:"min_camera_mp"`
}

// DefaultCriteria returns criteria that match the whole catalog.
func DefaultCriteria() Criteria {
	return Criteria{
		Category: CategoryAll,
		Brands:   []string{},
		PriceMin: DefaultPriceMin,
		PriceMax: DefaultPriceMax,
	}
}

// Validate rejects values no selector can produce.
func (c Criteria) Validate() error {
	if _, err := ParseCategory(string(c.Category)); err != nil {
		return err
	}
	if c.PriceMin.IsNegative() || c.PriceMax.LessThan(c.PriceMin) {
		return ErrInvalidPrice
	}
	return nil
}

// Normalized returns a copy with brands deduplicated and sorted, so that two
// criteria selecting the same set compare equal.
func (c Criteria) Normalized() Criteria {
	seen := make(map[string]struct{}, len(c.Brands))
	brands := make([]string, 0, len(c.Brands))
	for _, b := range c.Brands {
		if _, ok := seen[b]; ok || b == "" {
			continue
		}
		seen[b] = struct{}{}
		brands = append(brands, b)
	}
	sort.Strings(brands)
	c.Brands = brands
	if c.Category == "" {
		c.Category = CategoryAll
	}
	return c
}

// HasBrand reports whether brand is in the brand facet.
func (c Criteria) HasBrand(brand string) bool {
	for _, b := range c.Brands {
		if b == brand {
			return true
		}
	}
	return false
}

// ParseScreenInches extracts the first diagonal written as a number followed
// by an inch mark, e.g. `6.7" LTPO OLED`.
func ParseScreenInches(screen string) (float64, bool) {
	m := screenSizePattern.FindStringSubmatch(screen)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseCameraMP extracts the first resolution written as an integer followed
// by "MP", e.g. "200MP Main".
func ParseCameraMP(camera string) (int, bool) {
	m := cameraMPPattern.FindStringSubmatch(camera)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// Matches reports whether p satisfies every active facet of c.
func Matches(p Product, c Criteria) bool {
	if c.Search != "" {
		q := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Brand), q) {
			return false
		}
	}
	if c.Category != "" && c.Category != CategoryAll && p.Category != c.Category {
		return false
	}
	if len(c.Brands) > 0 && !c.HasBrand(p.Brand) {
		return false
	}
	if p.Price.LessThan(c.PriceMin) || p.Price.GreaterThan(c.PriceMax) {
		return false
	}
	if c.MinScreenInches != nil {
		// unparseable text counts as 0 and fails any positive threshold
		size, _ := ParseScreenInches(p.Specs.Screen)
		if size < *c.MinScreenInches {
			return false
		}
	}
	if c.MinCameraMP != nil {
		mp, _ := ParseCameraMP(p.Specs.Camera)
		if mp < *c.MinCameraMP {
			return false
		}
	}
	return true
}

// Filter returns the products matching c in catalog order.
func Filter(products []Product, c Criteria) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if Matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}
