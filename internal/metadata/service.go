package metadata

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bokhandeln/internal/inventory"
)

// Service resolves descriptive data for an ISBN, preferring the local
// ledger and falling back to the external provider. It never persists
// anything itself; the caller decides whether to upsert.
type Service struct {
	ledger   inventory.Ledger
	provider Provider
	logger   *zap.Logger
}

func NewService(ledger inventory.Ledger, provider Provider, logger *zap.Logger) *Service {
	return &Service{ledger: ledger, provider: provider, logger: logger}
}

// Resolve takes a canonical ISBN. A local hit returns the stored fields
// verbatim, cover included, and makes no provider call.
func (s *Service) Resolve(ctx context.Context, isbn string) (Resolution, error) {
	item, err := s.ledger.Get(ctx, isbn)
	switch {
	case err == nil:
		return Resolution{Metadata: fromItem(item), Origin: OriginLocal}, nil
	case !errors.Is(err, inventory.ErrNotFound):
		return Resolution{}, err
	}

	res, err := s.provider.FindByISBN(ctx, isbn)
	if err != nil {
		s.logger.Warn("provider lookup failed", zap.String("isbn", isbn), zap.Error(err))
		return Resolution{}, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if res == nil || len(res.Docs) == 0 {
		return Resolution{}, ErrNotFound
	}

	cover, err := s.provider.GetCoverURL(ctx, isbn)
	if err != nil {
		s.logger.Warn("cover lookup failed", zap.String("isbn", isbn), zap.Error(err))
		return Resolution{}, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	doc := res.Docs[0]
	md := Metadata{
		ISBN:   isbn,
		Title:  doc.Title,
		Cover:  cover,
		Amount: 0,
	}
	if len(doc.AuthorNames) > 0 {
		md.Author = doc.AuthorNames[0]
	}
	if len(doc.Language) > 0 {
		md.Language = doc.Language[0]
	}
	if doc.FirstPublishYear != 0 {
		year := doc.FirstPublishYear
		md.Year = &year
	}
	return Resolution{Metadata: md, Origin: OriginRemote}, nil
}

func fromItem(it inventory.Item) Metadata {
	return Metadata{
		ISBN:      it.ISBN,
		Author:    it.Author,
		Title:     it.Title,
		Language:  it.Language,
		Year:      it.Year,
		BuyPrice:  it.BuyPrice,
		SellPrice: it.SellPrice,
		Shelf:     it.Shelf,
		Cover:     it.Cover,
		Amount:    it.Amount,
	}
}
