package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Journal defines the contract for the sales log. Sell and SellBatch pair
// every journal append with the matching inventory decrement inside one
// transaction: either both are visible afterwards, or neither.
type Journal interface {
	Sell(ctx context.Context, isbn string, price decimal.Decimal, seller string, at time.Time) (Sale, error)
	SellBatch(ctx context.Context, isbns []string, seller string, at time.Time) ([]Sale, error)
	List(ctx context.Context) ([]Sale, error)
}
