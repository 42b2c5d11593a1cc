package inventory

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no item with the given ISBN exists.
var ErrNotFound = errors.New("item not found")

// ErrDepleted is returned when a decrement would take the on-hand amount
// below zero. The stored amount is left unchanged.
var ErrDepleted = errors.New("item out of stock")

// Item is one inventory record, keyed by canonical ISBN. The ledger is the
// single source of truth for the on-hand amount; it never goes negative.
type Item struct {
	ISBN      string          `json:"isbn"`
	Author    string          `json:"author"`
	Title     string          `json:"title"`
	Language  string          `json:"language,omitempty"`
	Year      *int            `json:"year,omitempty"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Shelf     string          `json:"shelf,omitempty"`
	Cover     string          `json:"cover,omitempty"`
	Amount    int             `json:"amount"`
}
