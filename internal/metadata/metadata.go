package metadata

import (
	"errors"

	"github.com/shopspring/decimal"
)

// NoCover is the cover reference of a record with no known cover image.
const NoCover = ""

// Origin tells whether resolved metadata came from the local ledger or the
// external provider.
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// ErrNotFound means the provider has no record for a valid ISBN. This is a
// normal resolver outcome (the caller falls back to manual entry), not a
// fault, and retrying will not change it.
var ErrNotFound = errors.New("no metadata for isbn")

// ErrLookupFailed means the provider could not be reached or answered with
// a fault. Retryable, unlike ErrNotFound.
var ErrLookupFailed = errors.New("metadata lookup failed")

// Metadata is the descriptive view of a title. Price, shelf and amount are
// only meaningful for locally resolved records; a remote resolution carries
// amount 0 ("known book, zero stock").
type Metadata struct {
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

// Resolution is a resolved Metadata together with its provenance.
type Resolution struct {
	Metadata Metadata `json:"metadata"`
	Origin   Origin   `json:"origin"`
}
