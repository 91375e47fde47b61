package model

import "time"

// Address is a saved delivery address. At most one address in a customer's
// set has IsDefault true at a time.
type Address struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Street     string    `json:"street"`
	Number     string    `json:"number"`
	Complement string    `json:"complement,omitempty"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DeliveryMethod is one entry in the delivery method catalogue.
type DeliveryMethod struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	EstimatedDays string  `json:"estimatedDays"`
	Cost          float64 `json:"cost"`
}

// PaymentMethod is one entry in the payment method catalogue. Selection only
// gates checkout progression; no processing logic is attached.
type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
