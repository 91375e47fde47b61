package model

import "time"

// Product represents a product in the store catalogue.
// IvaRate is the product-specific VAT rate; zero means "derive from category".
// DiscountPercent is an optional promotional discount applied to the net price.
type Product struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Price           float64   `json:"price" db:"price"`
	CategoryID      string    `json:"categoryId" db:"category_id"`
	IvaRate         int       `json:"ivaRate,omitempty" db:"iva_rate"`
	DiscountPercent float64   `json:"discountPercent,omitempty" db:"discount_percent"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}
