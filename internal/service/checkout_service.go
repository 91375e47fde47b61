package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"loja-rosa/internal/checkout"
	"loja-rosa/internal/delivery"
	"loja-rosa/internal/model"
	"loja-rosa/internal/pricing"
	"loja-rosa/internal/promo"
	"loja-rosa/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService. Sessions live in memory, keyed
// by session id; each session is owned by one customer at a time, the map
// lock only guards concurrent access to different sessions.
type checkoutService struct {
	flow        *checkout.Flow
	catalog     *checkout.Catalog
	postal      *delivery.PostalValidator
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	resolver    promo.Resolver
	logger      zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*checkout.Session
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	flow *checkout.Flow,
	catalog *checkout.Catalog,
	postal *delivery.PostalValidator,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	resolver promo.Resolver,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		flow:        flow,
		catalog:     catalog,
		postal:      postal,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		resolver:    resolver,
		logger:      logger.With().Str("service", "checkout").Logger(),
		sessions:    make(map[string]*checkout.Session),
	}
}

// StartSession opens a checkout session for a customer's cart. Items are
// validated structurally and against the product catalogue; the promo code,
// when present, is resolved up front so the session carries its discount.
func (s *checkoutService) StartSession(ctx context.Context, req *model.SessionRequest) (*checkout.Session, error) {
	if req == nil {
		return nil, fmt.Errorf("session request is nil")
	}
	if req.CustomerID == "" {
		return nil, fmt.Errorf("customer ID is required")
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("checkout requires at least one item")
	}

	if err := pricing.ValidateItems(req.Items); err != nil {
		s.logger.Warn().Err(err).Msg("invalid line items")
		return nil, err
	}

	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}
	if err := s.productRepo.ValidateProductsExist(ctx, productIDs); err != nil {
		s.logger.Warn().
			Int("product_count", len(productIDs)).
			Err(err).
			Msg("product validation failed")
		return nil, err
	}

	var discount float64
	var promoCode *string
	if req.PromoCode != nil && *req.PromoCode != "" {
		amount, err := s.resolver.Resolve(ctx, *req.PromoCode)
		if err != nil {
			if !isPromoError(err) {
				s.logger.Error().Err(err).Msg("promo resolution failed")
				return nil, fmt.Errorf("failed to resolve promo code: %w", err)
			}
			s.logger.Debug().
				Str("promo_code", *req.PromoCode).
				Err(err).
				Msg("promo code rejected, session starts without discount")
		} else {
			discount = amount
			promoCode = req.PromoCode
		}
	}

	session := s.flow.NewSession(req.CustomerID, req.Items, promoCode, discount)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info().
		Str("session_id", session.ID).
		Str("customer_id", req.CustomerID).
		Int("item_count", len(req.Items)).
		Msg("checkout session started")

	return session, nil
}

// GetSession retrieves a checkout session by id.
func (s *checkoutService) GetSession(ctx context.Context, sessionID string) (*checkout.Session, error) {
	return s.session(sessionID)
}

// Next advances the session one step, subject to the step guards.
func (s *checkoutService) Next(ctx context.Context, sessionID string) (*checkout.Session, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	// Reaching the confirmation step requires a created order; route through
	// CreateOrder so persistence happens alongside the snapshot.
	if session.CurrentStep == checkout.StepPayment && session.Order == nil {
		if _, err := s.CreateOrder(ctx, sessionID); err != nil {
			return nil, err
		}
		return session, nil
	}

	if err := s.flow.Next(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Previous moves the session one step back.
func (s *checkoutService) Previous(ctx context.Context, sessionID string) (*checkout.Session, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.flow.Previous(session)
	return session, nil
}

// SelectAddress records the chosen address on the session.
func (s *checkoutService) SelectAddress(ctx context.Context, sessionID, addressID string) (*checkout.Session, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.flow.SelectAddress(session, addressID)
	return session, nil
}

// SelectDeliveryMethod records the chosen delivery method on the session.
func (s *checkoutService) SelectDeliveryMethod(ctx context.Context, sessionID, methodID string) (*checkout.Session, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.flow.SelectDeliveryMethod(session, methodID)
	return session, nil
}

// SelectPaymentMethod records the chosen payment method on the session.
func (s *checkoutService) SelectPaymentMethod(ctx context.Context, sessionID, methodID string) (*checkout.Session, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.flow.SelectPaymentMethod(session, methodID)
	return session, nil
}

// CreateOrder builds the order snapshot from the session and persists it
// atomically. When persistence fails the session is rolled back to the
// payment step so the transition stays all-or-nothing.
func (s *checkoutService) CreateOrder(ctx context.Context, sessionID string) (*model.Order, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Order != nil {
		// Orders are created exactly once per session.
		return session.Order, nil
	}

	order, err := s.flow.CreateOrder(session)
	if err != nil {
		return nil, err
	}

	if err := s.persistOrder(ctx, order); err != nil {
		session.Order = nil
		session.CurrentStep = checkout.StepPayment
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to persist order")
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Str("order_id", order.ID.String()).
		Float64("total", order.Total).
		Msg("order created and persisted")

	return order, nil
}

// persistOrder writes the order and its items in one transaction.
func (s *checkoutService) persistOrder(ctx context.Context, order *model.Order) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return err
	}
	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetOrder retrieves a persisted order by id.
func (s *checkoutService) GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// ConfirmOrder transitions a pending order to confirmed. Confirming an
// unknown order fails with OrderNotFound; confirming a non-pending order is
// rejected, not silently accepted.
func (s *checkoutService) ConfirmOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to load order for confirmation")
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.Status != model.OrderStatusPending {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("status", string(order.Status)).
			Msg("confirmation rejected for non-pending order")
		return nil, model.ErrOrderNotPending
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusPending, model.OrderStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}
	if !updated {
		// Lost a race with another status transition.
		return nil, model.ErrOrderNotPending
	}

	order.Status = model.OrderStatusConfirmed

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("order_number", order.OrderNumber).
		Msg("order confirmed")

	return order, nil
}

// AddAddress registers a delivery address. The postal code must parse and
// fall inside the serviceable ranges; it is stored in normalised XXXX-XXX
// form.
func (s *checkoutService) AddAddress(ctx context.Context, address model.Address) (model.Address, error) {
	if address.Name == "" || address.Street == "" || address.City == "" {
		return model.Address{}, fmt.Errorf("address name, street and city are required")
	}
	if !s.postal.Deliverable(address.PostalCode) {
		s.logger.Debug().
			Str("postal_code", address.PostalCode).
			Msg("address rejected, postal code outside delivery area")
		return model.Address{}, model.ErrPostalNotServed
	}

	address.PostalCode = delivery.FormatPostalCode(address.PostalCode)
	added := s.catalog.AddAddress(address)

	s.logger.Info().
		Str("address_id", added.ID).
		Str("postal_code", added.PostalCode).
		Msg("address added")

	return added, nil
}

// RemoveAddress deletes a registered address.
func (s *checkoutService) RemoveAddress(ctx context.Context, addressID string) error {
	if !s.catalog.RemoveAddress(addressID) {
		return model.ErrAddressNotFound
	}
	s.logger.Info().Str("address_id", addressID).Msg("address removed")
	return nil
}

// SetDefaultAddress marks an address as the default selection.
func (s *checkoutService) SetDefaultAddress(ctx context.Context, addressID string) error {
	if !s.catalog.SetDefaultAddress(addressID) {
		return model.ErrAddressNotFound
	}
	return nil
}

// Catalog exposes the address/delivery/payment catalogue backing the flow.
func (s *checkoutService) Catalog() *checkout.Catalog {
	return s.catalog
}

// session looks up a session by id.
func (s *checkoutService) session(sessionID string) (*checkout.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

// IsNotFound reports whether err is one of the not-found domain errors.
func IsNotFound(err error) bool {
	return errors.Is(err, model.ErrOrderNotFound) || errors.Is(err, model.ErrSessionNotFound)
}
