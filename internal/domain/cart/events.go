package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventItemAdded   = "ItemAddedToCart"
	EventItemRemoved = "ItemRemovedFromCart"
	EventCartCleared = "CartCleared"
)

type ItemAddedToCart struct {
	SessionID string          `json:"session_id"`
	LineID    string          `json:"line_id"`
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	AddedAt   time.Time       `json:"added_at"`
}

type ItemRemovedFromCart struct {
	SessionID string    `json:"session_id"`
	LineID    string    `json:"line_id"`
	ProductID string    `json:"product_id"`
	RemovedAt time.Time `json:"removed_at"`
}

type CartCleared struct {
	SessionID string    `json:"session_id"`
	Lines     int       `json:"lines"`
	ClearedAt time.Time `json:"cleared_at"`
}
