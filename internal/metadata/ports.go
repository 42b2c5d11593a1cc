package metadata

import (
	"context"

	"bokhandeln/internal/platform/openlibrary"
)

// Provider is the external bibliographic lookup boundary.
type Provider interface {
	FindByISBN(ctx context.Context, isbn string) (*openlibrary.SearchResponse, error)
	GetCoverURL(ctx context.Context, isbn string) (string, error)
}
