package inventory

import (
	"context"
)

// Ledger defines the contract for inventory storage.
type Ledger interface {
	Upsert(ctx context.Context, item *Item, incrementBy int) error
	IncrementOne(ctx context.Context, isbn string) error
	DecrementOne(ctx context.Context, isbn string) error
	Delete(ctx context.Context, isbn string) error
	Get(ctx context.Context, isbn string) (Item, error)
	List(ctx context.Context) ([]Item, error)
}
