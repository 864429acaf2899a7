package catalog

import (
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const defaultMemoSize = 256

type memoEntry struct {
	key    string
	result []Product
}

// Engine serves filter queries over an immutable catalog. Results are
// memoized on the normalized criteria; the memo is dropped wholesale once it
// reaches its size limit.
type Engine struct {
	products []Product
	brands   []string

	mu       sync.Mutex
	memo     map[uint64]memoEntry
	memoSize int
}

func NewEngine(products []Product) *Engine {
	owned := make([]Product, len(products))
	copy(owned, products)

	var brands []string
	seen := make(map[string]struct{})
	for _, p := range owned {
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}

	return &Engine{
		products: owned,
		brands:   brands,
		memo:     make(map[uint64]memoEntry),
		memoSize: defaultMemoSize,
	}
}

// Products returns the full catalog in order.
func (e *Engine) Products() []Product {
	return cloneProducts(e.products)
}

// Brands returns the distinct brands in first-seen catalog order.
func (e *Engine) Brands() []string {
	out := make([]string, len(e.brands))
	copy(out, e.brands)
	return out
}

func (e *Engine) Product(id string) (Product, error) {
	for _, p := range e.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// Filter returns the catalog subset matching c.
func (e *Engine) Filter(c Criteria) []Product {
	c = c.Normalized()
	key := canonicalKey(c)
	sum := xxhash.Sum64String(key)

	e.mu.Lock()
	if entry, ok := e.memo[sum]; ok && entry.key == key {
		e.mu.Unlock()
		return cloneProducts(entry.result)
	}
	e.mu.Unlock()

	result := Filter(e.products, c)

	e.mu.Lock()
	if len(e.memo) >= e.memoSize {
		e.memo = make(map[uint64]memoEntry)
	}
	e.memo[sum] = memoEntry{key: key, result: result}
	e.mu.Unlock()

	return cloneProducts(result)
}

func canonicalKey(c Criteria) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(c.Search))
	b.WriteByte(0)
	b.WriteString(string(c.Category))
	b.WriteByte(0)
	b.WriteString(strings.Join(c.Brands, "\x1f"))
	b.WriteByte(0)
	b.WriteString(c.PriceMin.String())
	b.WriteByte(0)
	b.WriteString(c.PriceMax.String())
	b.WriteByte(0)
	if c.MinScreenInches != nil {
		b.WriteString(strconv.FormatFloat(*c.MinScreenInches, 'g', -1, 64))
	} else {
		b.WriteByte('-')
	}
	b.WriteByte(0)
	if c.MinCameraMP != nil {
		b.WriteString(strconv.Itoa(*c.MinCameraMP))
	} else {
		b.WriteByte('-')
	}
	return b.String()
}

func cloneProducts(in []Product) []Product {
	out := make([]Product, len(in))
	copy(out, in)
	return out
}
