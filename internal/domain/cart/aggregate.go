package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/everest-shop/internal/domain/catalog"
)

const AggregateType = "Cart"

var (
	ErrInvalidProduct = errors.New("product_id is required")
	ErrItemNotFound   = errors.New("product is not in the cart")
)

// Line is one occurrence of a product in the cart. The same product may
// appear on several lines.
type Line struct {
	LineID  string          `json:"line_id"`
	Product catalog.Product `json:"product"`
}

// Cart keeps lines in the order they were added. It is not safe for
// concurrent use; the owning session serializes access.
type Cart struct {
	lines []Line
}

// View is the cart drawer's read model.
type View struct {
	Lines []Line          `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) Add(p catalog.Product) (Line, error) {
	if p.ID == "" {
		return Line{}, ErrInvalidProduct
	}
	line := Line{LineID: uuid.New().String(), Product: p}
	c.lines = append(c.lines, line)
	return line, nil
}

// Remove drops the first line holding productID; other occurrences stay.
func (c *Cart) Remove(productID string) (Line, error) {
	if productID == "" {
		return Line{}, ErrInvalidProduct
	}
	for i, line := range c.lines {
		if line.Product.ID == productID {
			c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
			return line, nil
		}
	}
	return Line{}, ErrItemNotFound
}

// Clear empties the cart and returns how many lines were dropped.
func (c *Cart) Clear() int {
	n := len(c.lines)
	c.lines = nil
	return n
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Count() int {
	return len(c.lines)
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Product.Price)
	}
	return total
}

func (c *Cart) View() View {
	return View{
		Lines: c.Lines(),
		Count: c.Count(),
		Total: c.Total(),
	}
}
