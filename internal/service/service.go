package service

import (
	"context"

	"loja-rosa/internal/checkout"
	"loja-rosa/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for product management.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// CartService defines cart totals quoting with optional promo application.
type CartService interface {
	// Quote validates the line items, resolves the promo code if one is
	// given and computes the totals breakdown. A promo failure does not fail
	// the quote: the totals come back with discount zero and the promo error
	// is reported alongside them.
	Quote(ctx context.Context, req *model.CartRequest) (*model.CartResponse, error)
}

// CheckoutService drives checkout sessions through the step progression and
// manages order persistence and confirmation.
type CheckoutService interface {
	// StartSession opens a checkout session for a customer's cart.
	StartSession(ctx context.Context, req *model.SessionRequest) (*checkout.Session, error)

	// GetSession retrieves a checkout session by id.
	GetSession(ctx context.Context, sessionID string) (*checkout.Session, error)

	// Next advances the session one step, subject to the step guards.
	Next(ctx context.Context, sessionID string) (*checkout.Session, error)

	// Previous moves the session one step back.
	Previous(ctx context.Context, sessionID string) (*checkout.Session, error)

	// SelectAddress records the chosen address on the session.
	SelectAddress(ctx context.Context, sessionID, addressID string) (*checkout.Session, error)

	// SelectDeliveryMethod records the chosen delivery method on the session.
	SelectDeliveryMethod(ctx context.Context, sessionID, methodID string) (*checkout.Session, error)

	// SelectPaymentMethod records the chosen payment method on the session.
	SelectPaymentMethod(ctx context.Context, sessionID, methodID string) (*checkout.Session, error)

	// CreateOrder builds the order snapshot from the session and persists it.
	CreateOrder(ctx context.Context, sessionID string) (*model.Order, error)

	// GetOrder retrieves a persisted order by id.
	GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error)

	// ConfirmOrder transitions a pending order to confirmed.
	ConfirmOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error)

	// AddAddress registers a delivery address after checking it sits inside
	// the serviceable postal area.
	AddAddress(ctx context.Context, address model.Address) (model.Address, error)

	// RemoveAddress deletes a registered address.
	RemoveAddress(ctx context.Context, addressID string) error

	// SetDefaultAddress marks an address as the default selection.
	SetDefaultAddress(ctx context.Context, addressID string) error

	// Catalog exposes the address/delivery/payment catalogue backing the flow.
	Catalog() *checkout.Catalog
}
