package pricing

import (
	"fmt"
	"math"

	"loja-rosa/internal/model"
)

// Config holds the delivery fee policy applied to cart-level totals.
type Config struct {
	// FreeDeliveryThreshold is the subtotal at or above which delivery is free.
	FreeDeliveryThreshold float64

	// BaseDeliveryFee is the fixed fee charged below the threshold.
	BaseDeliveryFee float64
}

// DefaultConfig returns the canonical delivery fee policy: free delivery for
// subtotals of €50.00 or more, €2.00 otherwise.
func DefaultConfig() Config {
	return Config{
		FreeDeliveryThreshold: 50.00,
		BaseDeliveryFee:       2.00,
	}
}

// Engine computes cart and order totals. It is stateless apart from its
// configuration; all computation methods are pure functions of their inputs.
type Engine struct {
	cfg Config
}

// NewEngine creates a pricing engine with the given fee policy.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Round2 rounds a monetary value to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidateItems checks the structural invariants of a list of line items.
// A line item is invalid on an empty product id, a non-positive quantity, a
// negative unit price, or an explicit tax rate outside the legal IVA bands
// with no category to fall back on.
func ValidateItems(items []model.LineItem) error {
	for i, item := range items {
		if item.ProductID == "" {
			return &model.InvalidLineItemError{Index: i, Reason: "product id is required"}
		}
		if item.Quantity < 1 {
			return &model.InvalidLineItemError{Index: i, Reason: fmt.Sprintf("quantity must be at least 1, got %d", item.Quantity)}
		}
		if item.UnitPrice < 0 {
			return &model.InvalidLineItemError{Index: i, Reason: fmt.Sprintf("unit price must not be negative, got %.2f", item.UnitPrice)}
		}
		if item.IvaRate != 0 && !ValidRate(item.IvaRate) && item.CategoryID == "" {
			return &model.InvalidLineItemError{Index: i, Reason: fmt.Sprintf("unrecognised IVA rate %d with no category fallback", item.IvaRate)}
		}
	}
	return nil
}

// ComputeTotals derives the totals breakdown for a list of line items with an
// already-resolved discount amount.
//
// Each item's tax is computed at its own effective IVA rate and rounded to 2
// decimals before summation; the aggregate tax is the sum of those rounded
// per-item contributions. The delivery fee follows the free-delivery
// threshold; an empty cart yields zero totals plus the non-free fee.
func (e *Engine) ComputeTotals(items []model.LineItem, discount float64) model.CartTotals {
	return e.totals(items, discount, e.deliveryFee(subtotal(items)))
}

// OrderTotals derives totals using the cost of the chosen delivery method as
// the delivery fee, for the order creation path.
func (e *Engine) OrderTotals(items []model.LineItem, discount, deliveryCost float64) model.CartTotals {
	return e.totals(items, discount, Round2(deliveryCost))
}

func (e *Engine) totals(items []model.LineItem, discount, deliveryFee float64) model.CartTotals {
	var breakdown model.TaxBreakdown

	for _, item := range items {
		itemSubtotal := item.UnitPrice * float64(item.Quantity)
		rate := EffectiveRate(item.IvaRate, item.CategoryID)
		itemTax := Round2(itemSubtotal * float64(rate) / 100)

		switch rate {
		case RateReduced:
			breakdown.Rate6 += itemTax
		case RateIntermediate:
			breakdown.Rate13 += itemTax
		case RateStandard:
			breakdown.Rate23 += itemTax
		}
	}

	breakdown.Rate6 = Round2(breakdown.Rate6)
	breakdown.Rate13 = Round2(breakdown.Rate13)
	breakdown.Rate23 = Round2(breakdown.Rate23)
	breakdown.Total = Round2(breakdown.Rate6 + breakdown.Rate13 + breakdown.Rate23)

	sub := Round2(subtotal(items))
	discount = Round2(discount)

	return model.CartTotals{
		Subtotal:     sub,
		Tax:          breakdown.Total,
		TaxBreakdown: breakdown,
		DeliveryFee:  deliveryFee,
		Discount:     discount,
		Total:        Round2(sub + breakdown.Total + deliveryFee - discount),
	}
}

// deliveryFee applies the free-delivery threshold to a subtotal.
func (e *Engine) deliveryFee(subtotal float64) float64 {
	if subtotal >= e.cfg.FreeDeliveryThreshold {
		return 0
	}
	return e.cfg.BaseDeliveryFee
}

func subtotal(items []model.LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.UnitPrice * float64(item.Quantity)
	}
	return sum
}

// PromotionalPrice applies a percentage discount to a price, rounded to 2
// decimals. The percentage must be between 0 and 100.
func PromotionalPrice(original, discountPercentage float64) (float64, error) {
	if discountPercentage < 0 || discountPercentage > 100 {
		return 0, fmt.Errorf("discount percentage must be between 0 and 100, got %.2f", discountPercentage)
	}
	return Round2(original * (1 - discountPercentage/100)), nil
}

// BasePrice strips IVA from a final price.
func BasePrice(finalPrice float64, rate int) float64 {
	return Round2(finalPrice / (1 + float64(rate)/100))
}

// FinalPrice adds IVA to a base price.
func FinalPrice(basePrice float64, rate int) float64 {
	return Round2(basePrice * (1 + float64(rate)/100))
}

// VATAmount returns the IVA portion of a final price.
func VATAmount(finalPrice float64, rate int) float64 {
	return Round2(finalPrice - BasePrice(finalPrice, rate))
}
