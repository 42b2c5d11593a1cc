package inventory

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Service provides inventory business logic on top of a Ledger.
type Service struct {
	ledger Ledger
	logger *zap.Logger
}

func NewService(ledger Ledger, logger *zap.Logger) *Service {
	return &Service{ledger: ledger, logger: logger}
}

// Upsert stores the item, adding incrementBy to the on-hand amount. An
// incrementBy of 0 is a pure catalog edit.
func (s *Service) Upsert(ctx context.Context, item *Item, incrementBy int) error {
	if incrementBy < 0 {
		return fmt.Errorf("increment must not be negative, got %d", incrementBy)
	}
	if err := s.ledger.Upsert(ctx, item, incrementBy); err != nil {
		return err
	}
	s.logger.Info("item upserted",
		zap.String("isbn", item.ISBN),
		zap.Int("increment", incrementBy),
	)
	return nil
}

func (s *Service) IncrementOne(ctx context.Context, isbn string) error {
	if err := s.ledger.IncrementOne(ctx, isbn); err != nil {
		return err
	}
	s.logger.Info("amount incremented", zap.String("isbn", isbn))
	return nil
}

func (s *Service) DecrementOne(ctx context.Context, isbn string) error {
	if err := s.ledger.DecrementOne(ctx, isbn); err != nil {
		return err
	}
	s.logger.Info("amount decremented", zap.String("isbn", isbn))
	return nil
}

func (s *Service) Delete(ctx context.Context, isbn string) error {
	if err := s.ledger.Delete(ctx, isbn); err != nil {
		return err
	}
	s.logger.Info("item deleted", zap.String("isbn", isbn))
	return nil
}

func (s *Service) Get(ctx context.Context, isbn string) (Item, error) {
	return s.ledger.Get(ctx, isbn)
}

// List returns all items, optionally filtered by a case-insensitive
// author/title substring.
func (s *Service) List(ctx context.Context, filter string) ([]Item, error) {
	items, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter == "" {
		return items, nil
	}

	needle := strings.ToLower(filter)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Author), needle) ||
			strings.Contains(strings.ToLower(it.Title), needle) {
			out = append(out, it)
		}
	}
	return out, nil
}
