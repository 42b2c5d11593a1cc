package sales

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrSellerRequired is returned when a sale is attempted without a seller.
var ErrSellerRequired = errors.New("seller is required")

// Sale is one append-only journal entry. ISBN is a weak reference: the
// inventory item may be deleted later, the sale record stays.
type Sale struct {
	ID     string          `json:"id"`
	ISBN   string          `json:"isbn"`
	Date   time.Time       `json:"date"`
	Price  decimal.Decimal `json:"price"`
	Seller string          `json:"seller"`
}
