package promo

import (
	"context"
	"time"
)

// Discount is one redeemable promo code entry. A zero Expires means the code
// never expires.
type Discount struct {
	Amount  float64
	Expires time.Time
}

// Resolver defines the interface for promo code resolution. The storefront
// core treats promo validation as an external lookup: a code resolves to an
// absolute discount amount or fails with a not-found/expired error.
type Resolver interface {
	// Resolve returns the discount amount for a promo code.
	Resolve(ctx context.Context, code string) (float64, error)

	// Close releases resources held by the resolver.
	Close() error
}

// Catalog represents a loaded set of promo codes for fast lookup.
type Catalog interface {
	// Lookup returns the discount entry for a code, if present.
	Lookup(code string) (Discount, bool)

	// Size returns the number of codes in the catalog.
	Size() int
}

// Loader defines the interface for loading promo catalog files.
type Loader interface {
	// Load reads a gzipped promo catalog and returns it as a Catalog.
	Load(ctx context.Context, path string) (Catalog, error)
}
