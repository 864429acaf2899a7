package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/everest-shop/internal/domain/catalog"
)

func testProduct(id string, price int64) catalog.Product {
	return catalog.Product{ID: id, Name: "Phone " + id, Price: decimal.NewFromInt(price)}
}

func productIDs(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Product.ID)
	}
	return out
}

// ============================================
// Add Item Tests
// ============================================

func TestCart_Add_Success(t *testing.T) {
	c := New()

	line, err := c.Add(testProduct("1", 1299))

	require.NoError(t, err)
	assert.NotEmpty(t, line.LineID)
	assert.Equal(t, "1", line.Product.ID)
	assert.Equal(t, 1, c.Count())
}

func TestCart_Add_EmptyProductID(t *testing.T) {
	c := New()

	_, err := c.Add(catalog.Product{})

	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.Equal(t, 0, c.Count())
}

func TestCart_Add_DuplicatesKeepSeparateLines(t *testing.T) {
	c := New()

	first, err := c.Add(testProduct("1", 1299))
	require.NoError(t, err)
	second, err := c.Add(testProduct("1", 1299))
	require.NoError(t, err)

	assert.NotEqual(t, first.LineID, second.LineID)
	assert.Equal(t, []string{"1", "1"}, productIDs(c.Lines()))
}

// ============================================
// Remove Item Tests
// ============================================

func TestCart_Remove_SingleOccurrence(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct("1", 1299))
	_, _ = c.Add(testProduct("1", 1299))

	removed, err := c.Remove("1")

	require.NoError(t, err)
	assert.Equal(t, "1", removed.Product.ID)
	assert.Equal(t, []string{"1"}, productIDs(c.Lines()))
}

func TestCart_Remove_FirstMatchingLine(t *testing.T) {
	c := New()
	first, _ := c.Add(testProduct("1", 100))
	_, _ = c.Add(testProduct("2", 200))
	third, _ := c.Add(testProduct("1", 100))

	removed, err := c.Remove("1")

	require.NoError(t, err)
	assert.Equal(t, first.LineID, removed.LineID)
	lines := c.Lines()
	assert.Equal(t, []string{"2", "1"}, productIDs(lines))
	assert.Equal(t, third.LineID, lines[1].LineID)
}

func TestCart_Remove_NotInCart(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct("1", 100))

	_, err := c.Remove("2")

	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, 1, c.Count())
}

func TestCart_Remove_EmptyProductID(t *testing.T) {
	c := New()

	_, err := c.Remove("")

	assert.ErrorIs(t, err, ErrInvalidProduct)
}

// ============================================
// Totals and Clear Tests
// ============================================

func TestCart_Total(t *testing.T) {
	c := New()
	assert.True(t, c.Total().IsZero())

	_, _ = c.Add(testProduct("1", 1299))
	_, _ = c.Add(testProduct("6", 349))
	_, _ = c.Add(testProduct("6", 349))

	assert.True(t, decimal.NewFromInt(1997).Equal(c.Total()))
}

func TestCart_Clear(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct("1", 1299))
	_, _ = c.Add(testProduct("2", 1199))

	n := c.Clear()

	assert.Equal(t, 2, n)
	assert.Equal(t, 0, c.Count())
	assert.Empty(t, c.Lines())
}

func TestCart_LinesAreCopies(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct("1", 1299))

	lines := c.Lines()
	lines[0].Product.ID = "mutated"

	assert.Equal(t, "1", c.Lines()[0].Product.ID)
}

func TestCart_View(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct("5", 599))

	v := c.View()

	assert.Equal(t, 1, v.Count)
	assert.Len(t, v.Lines, 1)
	assert.True(t, decimal.NewFromInt(599).Equal(v.Total))
}
