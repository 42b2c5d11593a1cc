package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service provides sales operations on top of a Journal.
type Service struct {
	journal Journal
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(journal Journal, logger *zap.Logger) *Service {
	return &Service{journal: journal, logger: logger, now: time.Now}
}

// Sell journals a single sale at the given price and decrements the item's
// stock, atomically.
func (s *Service) Sell(ctx context.Context, isbn string, price decimal.Decimal, seller string) (Sale, error) {
	if strings.TrimSpace(seller) == "" {
		return Sale{}, ErrSellerRequired
	}
	if price.IsNegative() {
		return Sale{}, fmt.Errorf("price must not be negative, got %s", price)
	}

	sale, err := s.journal.Sell(ctx, isbn, price, seller, s.now())
	if err != nil {
		return Sale{}, err
	}
	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("isbn", sale.ISBN),
		zap.String("price", sale.Price.String()),
		zap.String("seller", sale.Seller),
	)
	return sale, nil
}

// SellBatch sells every ISBN at its stored sell price, all or nothing.
func (s *Service) SellBatch(ctx context.Context, isbns []string, seller string) ([]Sale, error) {
	if strings.TrimSpace(seller) == "" {
		return nil, ErrSellerRequired
	}
	if len(isbns) == 0 {
		return nil, fmt.Errorf("no items to sell")
	}

	out, err := s.journal.SellBatch(ctx, isbns, seller, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("batch sale recorded",
		zap.Int("items", len(out)),
		zap.String("seller", seller),
	)
	return out, nil
}

func (s *Service) List(ctx context.Context) ([]Sale, error) {
	return s.journal.List(ctx)
}
