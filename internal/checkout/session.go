package checkout

import (
	"fmt"
	"time"

	"loja-rosa/internal/delivery"
	"loja-rosa/internal/model"
	"loja-rosa/internal/pricing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Checkout steps, in order. A session starts at StepAddress and finishes at
// StepConfirmation.
const (
	StepAddress      = 1
	StepDelivery     = 2
	StepPayment      = 3
	StepConfirmation = 4
)

// Session is the ephemeral state of one checkout attempt. It is scoped to a
// single customer and mutated only through Flow operations; a rejected
// transition leaves it untouched.
type Session struct {
	ID                       string           `json:"id"`
	CustomerID               string           `json:"customerId"`
	CurrentStep              int              `json:"currentStep"`
	Items                    []model.LineItem `json:"items"`
	PromoCode                *string          `json:"promoCode,omitempty"`
	Discount                 float64          `json:"discount"`
	SelectedAddressID        string           `json:"selectedAddressId,omitempty"`
	SelectedDeliveryMethodID string           `json:"selectedDeliveryMethodId,omitempty"`
	SelectedPaymentMethodID  string           `json:"selectedPaymentMethodId,omitempty"`
	Order                    *model.Order     `json:"order,omitempty"`
	CreatedAt                time.Time        `json:"createdAt"`
}

// Flow drives checkout sessions through the four-step progression and builds
// the immutable order snapshot at submission.
type Flow struct {
	engine  *pricing.Engine
	catalog *Catalog
	now     func() time.Time
	logger  zerolog.Logger
}

// NewFlow creates a checkout flow over the given pricing engine and catalog.
func NewFlow(engine *pricing.Engine, catalog *Catalog, logger zerolog.Logger) *Flow {
	return &Flow{
		engine:  engine,
		catalog: catalog,
		now:     time.Now,
		logger:  logger.With().Str("component", "checkout-flow").Logger(),
	}
}

// NewSession opens a checkout session for a customer's cart. The items are
// copied, not referenced, so later cart mutations do not leak into the
// session. When the catalog has a default address it is pre-selected.
func (f *Flow) NewSession(customerID string, items []model.LineItem, promoCode *string, discount float64) *Session {
	s := &Session{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		CurrentStep: StepAddress,
		Items:       append([]model.LineItem(nil), items...),
		PromoCode:   promoCode,
		Discount:    discount,
		CreatedAt:   f.now(),
	}

	if address, ok := f.catalog.DefaultAddress(); ok {
		s.SelectedAddressID = address.ID
	}

	f.logger.Debug().
		Str("session_id", s.ID).
		Str("customer_id", customerID).
		Int("item_count", len(items)).
		Msg("checkout session opened")

	return s
}

// Next advances the session one step, up to the confirmation step. Each
// transition is guarded: 1→2 requires an address selection, 2→3 a delivery
// method, 3→4 a payment method and successful order creation. If a guard
// fails the current step is unchanged and the error names the unmet
// precondition.
func (f *Flow) Next(s *Session) error {
	switch s.CurrentStep {
	case StepAddress:
		if s.SelectedAddressID == "" {
			return &model.MissingSelectionError{Field: model.SelectionAddress}
		}
	case StepDelivery:
		if s.SelectedDeliveryMethodID == "" {
			return &model.MissingSelectionError{Field: model.SelectionDeliveryMethod}
		}
	case StepPayment:
		if s.Order == nil {
			if _, err := f.CreateOrder(s); err != nil {
				return err
			}
			// CreateOrder already advanced to the confirmation step.
			return nil
		}
	case StepConfirmation:
		return nil
	}

	s.CurrentStep++
	return nil
}

// Previous moves the session one step back, never below the address step.
// No guard applies.
func (f *Flow) Previous(s *Session) {
	if s.CurrentStep > StepAddress {
		s.CurrentStep--
	}
}

// SelectAddress records the chosen address id. It does not advance the step.
func (f *Flow) SelectAddress(s *Session, id string) {
	s.SelectedAddressID = id
}

// SelectDeliveryMethod records the chosen delivery method id.
func (f *Flow) SelectDeliveryMethod(s *Session, id string) {
	s.SelectedDeliveryMethodID = id
}

// SelectPaymentMethod records the chosen payment method id.
func (f *Flow) SelectPaymentMethod(s *Session, id string) {
	s.SelectedPaymentMethodID = id
}

// CreateOrder builds the immutable order snapshot from the session. It
// requires all three selections to resolve against the catalog; a missing or
// unresolvable selection fails with MissingSelectionError and leaves the
// session unchanged. On success the order (status pending) is attached to the
// session and the session advances to the confirmation step.
func (f *Flow) CreateOrder(s *Session) (*model.Order, error) {
	address, ok := f.catalog.AddressByID(s.SelectedAddressID)
	if !ok {
		return nil, &model.MissingSelectionError{Field: model.SelectionAddress}
	}
	method, ok := f.catalog.DeliveryMethodByID(s.SelectedDeliveryMethodID)
	if !ok {
		return nil, &model.MissingSelectionError{Field: model.SelectionDeliveryMethod}
	}
	payment, ok := f.catalog.PaymentMethodByID(s.SelectedPaymentMethodID)
	if !ok {
		return nil, &model.MissingSelectionError{Field: model.SelectionPaymentMethod}
	}

	now := f.now()
	totals := f.engine.OrderTotals(s.Items, s.Discount, method.Cost)

	order := &model.Order{
		ID:                uuid.New(),
		OrderNumber:       fmt.Sprintf("ORD-%d", now.UnixMilli()),
		Items:             append([]model.LineItem(nil), s.Items...),
		Subtotal:          totals.Subtotal,
		Tax:               totals.Tax,
		DeliveryFee:       totals.DeliveryFee,
		Discount:          totals.Discount,
		Total:             totals.Total,
		Address:           address,
		DeliveryMethod:    method,
		PaymentMethod:     payment,
		PromoCode:         s.PromoCode,
		Status:            model.OrderStatusPending,
		EstimatedDelivery: delivery.NextDeliveryDate(now),
		CreatedAt:         now,
	}

	s.Order = order
	s.CurrentStep = StepConfirmation

	f.logger.Info().
		Str("session_id", s.ID).
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Float64("total", order.Total).
		Msg("order created")

	return order, nil
}
