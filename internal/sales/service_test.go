package sales

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bokhandeln/internal/inventory"
)

// memJournal backs the Journal contract with maps, decrement and append
// succeeding or failing together like the Postgres transaction does.
type memJournal struct {
	amounts map[string]int
	prices  map[string]decimal.Decimal
	sales   []Sale
}

func newMemJournal() *memJournal {
	return &memJournal{
		amounts: make(map[string]int),
		prices:  make(map[string]decimal.Decimal),
	}
}

func (j *memJournal) stock(isbn string, amount int, sellPrice decimal.Decimal) {
	j.amounts[isbn] = amount
	j.prices[isbn] = sellPrice
}

func (j *memJournal) sellOne(isbn string, price decimal.Decimal, seller string, at time.Time) (Sale, error) {
	amount, ok := j.amounts[isbn]
	if !ok {
		return Sale{}, fmt.Errorf("sell %s: %w", isbn, inventory.ErrNotFound)
	}
	if amount == 0 {
		return Sale{}, fmt.Errorf("sell %s: %w", isbn, inventory.ErrDepleted)
	}
	j.amounts[isbn] = amount - 1
	sale := Sale{ID: uuid.NewString(), ISBN: isbn, Date: at, Price: price, Seller: seller}
	j.sales = append(j.sales, sale)
	return sale, nil
}

func (j *memJournal) Sell(_ context.Context, isbn string, price decimal.Decimal, seller string, at time.Time) (Sale, error) {
	return j.sellOne(isbn, price, seller, at)
}

func (j *memJournal) SellBatch(_ context.Context, isbns []string, seller string, at time.Time) ([]Sale, error) {
	// snapshot for rollback
	amounts := make(map[string]int, len(j.amounts))
	for k, v := range j.amounts {
		amounts[k] = v
	}
	salesLen := len(j.sales)

	out := make([]Sale, 0, len(isbns))
	for _, isbn := range isbns {
		sale, err := j.sellOne(isbn, j.prices[isbn], seller, at)
		if err != nil {
			j.amounts = amounts
			j.sales = j.sales[:salesLen]
			return nil, err
		}
		out = append(out, sale)
	}
	return out, nil
}

func (j *memJournal) List(_ context.Context) ([]Sale, error) {
	out := make([]Sale, len(j.sales))
	copy(out, j.sales)
	return out, nil
}

func TestSell(t *testing.T) {
	journal := newMemJournal()
	svc := NewService(journal, zap.NewNop())
	ctx := context.Background()

	journal.stock("9780000000001", 3, decimal.RequireFromString("120.00"))

	sale, err := svc.Sell(ctx, "9780000000001", decimal.RequireFromString("120.00"), "Alex")
	require.NoError(t, err)

	assert.Equal(t, 2, journal.amounts["9780000000001"])
	require.Len(t, journal.sales, 1)
	assert.Equal(t, "9780000000001", sale.ISBN)
	assert.True(t, sale.Price.Equal(decimal.RequireFromString("120.00")))
	assert.Equal(t, "Alex", sale.Seller)
	assert.NotEmpty(t, sale.ID)
}

func TestSell_RequiresSeller(t *testing.T) {
	journal := newMemJournal()
	svc := NewService(journal, zap.NewNop())

	journal.stock("9780000000001", 3, decimal.RequireFromString("120.00"))

	_, err := svc.Sell(context.Background(), "9780000000001", decimal.RequireFromString("120.00"), "   ")

	assert.ErrorIs(t, err, ErrSellerRequired)
	assert.Equal(t, 3, journal.amounts["9780000000001"], "stock untouched")
	assert.Empty(t, journal.sales)
}

func TestSell_RejectsNegativePrice(t *testing.T) {
	journal := newMemJournal()
	svc := NewService(journal, zap.NewNop())

	_, err := svc.Sell(context.Background(), "9780000000001", decimal.RequireFromString("-1"), "Alex")

	assert.Error(t, err)
	assert.Empty(t, journal.sales)
}

func TestSell_DepletedLeavesNoRecord(t *testing.T) {
	journal := newMemJournal()
	svc := NewService(journal, zap.NewNop())

	journal.stock("9780000000001", 0, decimal.RequireFromString("120.00"))

	_, err := svc.Sell(context.Background(), "9780000000001", decimal.RequireFromString("120.00"), "Alex")

	assert.ErrorIs(t, err, inventory.ErrDepleted)
	assert.Equal(t, 0, journal.amounts["9780000000001"])
	assert.Empty(t, journal.sales, "no sale may be journaled when the decrement fails")
}

func TestSell_UnknownISBN(t *testing.T) {
	journal := newMemJournal()
	svc := NewService(journal, zap.NewNop())

	_, err := svc.Sell(context.Background(), "9780000000009", decimal.RequireFromString("50"), "Alex")

	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestSellBatch_AllOrNothing(t *testing.T) {
	journal := newMemJournal()
	svc := NewService(journal, zap.NewNop())
	ctx := context.Background()

	journal.stock("9780000000001", 2, decimal.RequireFromString("120.00"))
	journal.stock("9780000000002", 1, decimal.RequireFromString("80.00"))
	journal.stock("9780000000003", 0, decimal.RequireFromString("60.00"))

	t.Run("failure mid-batch rolls everything back", func(t *testing.T) {
		_, err := svc.SellBatch(ctx, []string{"9780000000001", "9780000000003", "9780000000002"}, "Alex")

		assert.ErrorIs(t, err, inventory.ErrDepleted)
		assert.Equal(t, 2, journal.amounts["9780000000001"])
		assert.Equal(t, 1, journal.amounts["9780000000002"])
		assert.Empty(t, journal.sales)
	})

	t.Run("success sells each at its stored price", func(t *testing.T) {
		out, err := svc.SellBatch(ctx, []string{"9780000000001", "9780000000002"}, "Alex")

		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, 1, journal.amounts["9780000000001"])
		assert.Equal(t, 0, journal.amounts["9780000000002"])
		assert.True(t, out[0].Price.Equal(decimal.RequireFromString("120.00")))
		assert.True(t, out[1].Price.Equal(decimal.RequireFromString("80.00")))
	})
}

func TestSellBatch_RequiresItems(t *testing.T) {
	svc := NewService(newMemJournal(), zap.NewNop())

	_, err := svc.SellBatch(context.Background(), nil, "Alex")

	assert.Error(t, err)
}
