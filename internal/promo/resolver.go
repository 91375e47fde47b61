package promo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"loja-rosa/internal/model"

	"github.com/rs/zerolog"
)

// resolver implements Resolver over a set of loaded promo catalogs.
type resolver struct {
	catalogs []Catalog
	now      func() time.Time
	logger   zerolog.Logger
	// Catalogs are read-only after initialisation; no locking needed.
}

// ResolverConfig holds configuration for the promo resolver.
type ResolverConfig struct {
	// Paths is the list of promo catalog paths (or S3 keys) to load.
	Paths []string
}

// DefaultResolverConfig returns the default resolver configuration.
func DefaultResolverConfig() *ResolverConfig {
	return &ResolverConfig{
		Paths: []string{"data/promos/promos.csv.gz"},
	}
}

// NewResolver creates a promo resolver. All catalogs are loaded concurrently
// at initialisation time; a code found in any catalog resolves, first catalog
// wins on duplicates.
func NewResolver(ctx context.Context, config *ResolverConfig, loader Loader, logger zerolog.Logger) (Resolver, error) {
	if config == nil {
		config = DefaultResolverConfig()
	}

	logger = logger.With().Str("component", "promo-resolver").Logger()

	logger.Info().
		Int("catalog_count", len(config.Paths)).
		Msg("initialising promo resolver")

	type loadResult struct {
		index   int
		catalog Catalog
		err     error
	}

	resultChan := make(chan loadResult, len(config.Paths))
	var wg sync.WaitGroup

	for i, path := range config.Paths {
		wg.Add(1)
		go func(index int, p string) {
			defer wg.Done()

			catalog, err := loader.Load(ctx, p)
			resultChan <- loadResult{index: index, catalog: catalog, err: err}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in order
	results := make([]loadResult, len(config.Paths))
	for result := range resultChan {
		results[result.index] = result
	}

	r := &resolver{
		catalogs: make([]Catalog, 0, len(config.Paths)),
		now:      time.Now,
		logger:   logger,
	}

	totalCodes := 0
	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("catalog", config.Paths[i]).
				Msg("failed to load promo catalog")
			return nil, fmt.Errorf("failed to load promo catalog %s: %w", config.Paths[i], result.err)
		}
		r.catalogs = append(r.catalogs, result.catalog)
		totalCodes += result.catalog.Size()
	}

	logger.Info().
		Int("total_codes", totalCodes).
		Msg("promo resolver initialised successfully")

	return r, nil
}

// Resolve returns the discount amount for a promo code. A failed resolution
// never aborts checkout; callers recompute totals with discount zero.
func (r *resolver) Resolve(ctx context.Context, code string) (float64, error) {
	for _, catalog := range r.catalogs {
		discount, ok := catalog.Lookup(code)
		if !ok {
			continue
		}

		if !discount.Expires.IsZero() && !discount.Expires.After(r.now()) {
			r.logger.Debug().
				Str("promo_code", code).
				Time("expired_at", discount.Expires).
				Msg("promo code expired")
			return 0, model.ErrPromoCodeExpired
		}

		r.logger.Debug().
			Str("promo_code", code).
			Float64("discount", discount.Amount).
			Msg("promo code resolved")
		return discount.Amount, nil
	}

	r.logger.Debug().Str("promo_code", code).Msg("promo code not found")
	return 0, model.ErrPromoCodeNotFound
}

// Close releases resources held by the resolver.
func (r *resolver) Close() error {
	// Drop catalogs so GC can reclaim the maps.
	r.catalogs = nil

	r.logger.Info().Msg("promo resolver closed")

	return nil
}
