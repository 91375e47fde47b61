package service

import (
	"context"
	"errors"
	"fmt"

	"loja-rosa/internal/model"
	"loja-rosa/internal/pricing"
	"loja-rosa/internal/promo"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	engine   *pricing.Engine
	resolver promo.Resolver
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(engine *pricing.Engine, resolver promo.Resolver, logger zerolog.Logger) CartService {
	return &cartService{
		engine:   engine,
		resolver: resolver,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// Quote validates the line items, resolves the promo code if one is given
// and computes the totals breakdown.
func (s *cartService) Quote(ctx context.Context, req *model.CartRequest) (*model.CartResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("cart request is nil")
	}

	if err := pricing.ValidateItems(req.Items); err != nil {
		s.logger.Warn().Err(err).Int("item_count", len(req.Items)).Msg("invalid line items")
		return nil, err
	}

	resp := &model.CartResponse{}

	var discount float64
	if req.PromoCode != nil && *req.PromoCode != "" {
		amount, err := s.resolver.Resolve(ctx, *req.PromoCode)
		switch {
		case err == nil:
			discount = amount
			resp.PromoCode = req.PromoCode
			s.logger.Debug().
				Str("promo_code", *req.PromoCode).
				Float64("discount", amount).
				Msg("promo code applied")
		case isPromoError(err):
			// A failed promo never fails the quote; totals stay computable
			// with discount zero.
			resp.PromoError = err.Error()
			s.logger.Debug().
				Str("promo_code", *req.PromoCode).
				Err(err).
				Msg("promo code rejected")
		default:
			s.logger.Error().Err(err).Msg("promo resolution failed")
			return nil, fmt.Errorf("failed to resolve promo code: %w", err)
		}
	}

	resp.Totals = s.engine.ComputeTotals(req.Items, discount)
	return resp, nil
}

// isPromoError reports whether err is a recoverable promo rejection rather
// than an infrastructure failure.
func isPromoError(err error) bool {
	return errors.Is(err, model.ErrPromoCodeNotFound) || errors.Is(err, model.ErrPromoCodeExpired)
}
