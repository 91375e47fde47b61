package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"loja-rosa/internal/checkout"
	"loja-rosa/internal/model"
	"loja-rosa/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout session HTTP requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// StartSession handles POST /api/checkout/sessions requests.
func (h *CheckoutHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	session, err := h.service.StartSession(r.Context(), &req)
	if err != nil {
		h.writeSessionError(w, err, "failed to start checkout session")
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// GetSession handles GET /api/checkout/sessions/{id} requests.
func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	sessionID, _ := splitSessionPath(r.URL.Path)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session ID is required", h.logger)
		return
	}

	session, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		h.writeSessionError(w, err, "failed to get checkout session")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Next handles POST /api/checkout/sessions/{id}/next requests.
func (h *CheckoutHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.service.Next)
}

// Previous handles POST /api/checkout/sessions/{id}/previous requests.
func (h *CheckoutHandler) Previous(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.service.Previous)
}

// SelectAddress handles POST /api/checkout/sessions/{id}/address requests.
func (h *CheckoutHandler) SelectAddress(w http.ResponseWriter, r *http.Request) {
	h.selection(w, r, h.service.SelectAddress)
}

// SelectDeliveryMethod handles POST /api/checkout/sessions/{id}/delivery requests.
func (h *CheckoutHandler) SelectDeliveryMethod(w http.ResponseWriter, r *http.Request) {
	h.selection(w, r, h.service.SelectDeliveryMethod)
}

// SelectPaymentMethod handles POST /api/checkout/sessions/{id}/payment requests.
func (h *CheckoutHandler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	h.selection(w, r, h.service.SelectPaymentMethod)
}

// CreateOrder handles POST /api/checkout/sessions/{id}/order requests.
func (h *CheckoutHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	sessionID, _ := splitSessionPath(r.URL.Path)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session ID is required", h.logger)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), sessionID)
	if err != nil {
		h.writeSessionError(w, err, "failed to create order")
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// Addresses handles GET and POST /api/checkout/addresses requests.
func (h *CheckoutHandler) Addresses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.service.Catalog().Addresses())
	case http.MethodPost:
		h.addAddress(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// addAddress handles POST /api/checkout/addresses requests.
func (h *CheckoutHandler) addAddress(w http.ResponseWriter, r *http.Request) {
	var address model.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	added, err := h.service.AddAddress(r.Context(), address)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostalNotServed):
			writeError(w, http.StatusUnprocessableEntity, err.Error(), h.logger)
		case strings.Contains(err.Error(), "required"):
			writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		default:
			writeError(w, http.StatusInternalServerError, "failed to add address", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusCreated, added)
}

// RemoveAddress handles DELETE /api/checkout/addresses/{id} requests.
func (h *CheckoutHandler) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	addressID := addressIDFromPath(r.URL.Path)
	if addressID == "" {
		writeError(w, http.StatusBadRequest, "address ID is required", h.logger)
		return
	}

	if err := h.service.RemoveAddress(r.Context(), addressID); err != nil {
		if errors.Is(err, model.ErrAddressNotFound) {
			writeError(w, http.StatusNotFound, "address not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to remove address", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetDefaultAddress handles POST /api/checkout/addresses/{id}/default requests.
func (h *CheckoutHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	addressID := addressIDFromPath(r.URL.Path)
	if addressID == "" {
		writeError(w, http.StatusBadRequest, "address ID is required", h.logger)
		return
	}

	if err := h.service.SetDefaultAddress(r.Context(), addressID); err != nil {
		if errors.Is(err, model.ErrAddressNotFound) {
			writeError(w, http.StatusNotFound, "address not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to set default address", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.service.Catalog().Addresses())
}

// DeliveryMethods handles GET /api/checkout/delivery-methods requests.
func (h *CheckoutHandler) DeliveryMethods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Catalog().DeliveryMethods())
}

// PaymentMethods handles GET /api/checkout/payment-methods requests.
func (h *CheckoutHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Catalog().PaymentMethods())
}

// step runs a session transition that takes no request body.
func (h *CheckoutHandler) step(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, sessionID string) (*checkout.Session, error),
) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	sessionID, _ := splitSessionPath(r.URL.Path)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session ID is required", h.logger)
		return
	}

	session, err := op(r.Context(), sessionID)
	if err != nil {
		h.writeSessionError(w, err, "failed to update checkout session")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// selection runs a session selection that takes a {"id": ...} request body.
func (h *CheckoutHandler) selection(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, sessionID, id string) (*checkout.Session, error),
) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	sessionID, _ := splitSessionPath(r.URL.Path)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session ID is required", h.logger)
		return
	}

	var req model.SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "selection ID is required", h.logger)
		return
	}

	session, err := op(r.Context(), sessionID, req.ID)
	if err != nil {
		h.writeSessionError(w, err, "failed to update checkout session")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// writeSessionError maps checkout errors onto HTTP status codes.
func (h *CheckoutHandler) writeSessionError(w http.ResponseWriter, err error, fallback string) {
	var missing *model.MissingSelectionError
	var invalidItem *model.InvalidLineItemError

	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "checkout session not found", h.logger)
	case errors.Is(err, model.ErrProductNotFound):
		writeError(w, http.StatusBadRequest, "one or more products not found", h.logger)
	case errors.As(err, &missing):
		writeError(w, http.StatusConflict, missing.Error(), h.logger)
	case errors.As(err, &invalidItem):
		writeError(w, http.StatusBadRequest, invalidItem.Error(), h.logger)
	case strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "at least one") || strings.Contains(err.Error(), "nil"):
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
	default:
		writeError(w, http.StatusInternalServerError, fallback, h.logger)
	}
}

// addressIDFromPath extracts the address id from a
// /api/checkout/addresses/{id}[/default] path.
func addressIDFromPath(path string) string {
	rest := strings.TrimPrefix(path, "/api/checkout/addresses/")
	if rest == path {
		return ""
	}
	return strings.SplitN(strings.Trim(rest, "/"), "/", 2)[0]
}

// splitSessionPath extracts the session id and trailing action from a
// /api/checkout/sessions/{id}[/{action}] path.
func splitSessionPath(path string) (sessionID, action string) {
	rest := strings.TrimPrefix(path, "/api/checkout/sessions/")
	if rest == path {
		return "", ""
	}
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)
	sessionID = parts[0]
	if len(parts) == 2 {
		action = parts[1]
	}
	return sessionID, action
}
