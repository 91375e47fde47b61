package model

// LineItem is one product entry in a cart or order.
// IvaRate is the VAT rate in percent; zero means "not set", in which case the
// rate is derived from CategoryID.
type LineItem struct {
	ProductID  string  `json:"productId" db:"product_id"`
	UnitPrice  float64 `json:"unitPrice" db:"unit_price"`
	Quantity   int     `json:"quantity" db:"quantity"`
	IvaRate    int     `json:"ivaRate,omitempty" db:"iva_rate"`
	CategoryID string  `json:"categoryId,omitempty" db:"category_id"`
}

// TaxBreakdown groups VAT contributions by the three legal Portuguese bands.
type TaxBreakdown struct {
	Rate6  float64 `json:"rate6"`
	Rate13 float64 `json:"rate13"`
	Rate23 float64 `json:"rate23"`
	Total  float64 `json:"total"`
}

// CartTotals is the derived totals breakdown for a list of line items.
// All monetary values are rounded to 2 decimal places.
type CartTotals struct {
	Subtotal     float64      `json:"subtotal"`
	Tax          float64      `json:"tax"`
	TaxBreakdown TaxBreakdown `json:"taxBreakdown"`
	DeliveryFee  float64      `json:"deliveryFee"`
	Discount     float64      `json:"discount"`
	Total        float64      `json:"total"`
}

// CartRequest represents the request payload for quoting cart totals.
type CartRequest struct {
	Items     []LineItem `json:"items"`
	PromoCode *string    `json:"promoCode,omitempty"`
}

// CartResponse represents the response payload for a cart totals quote.
// PromoError is set when a promo code was supplied but could not be applied;
// the totals are still valid with discount zero.
type CartResponse struct {
	Totals     CartTotals `json:"totals"`
	PromoCode  *string    `json:"promoCode,omitempty"`
	PromoError string     `json:"promoError,omitempty"`
}
