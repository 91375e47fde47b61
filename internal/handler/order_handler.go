package handler

import (
	"errors"
	"net/http"
	"strings"

	"loja-rosa/internal/model"
	"loja-rosa/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.CheckoutService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID, ok := h.orderID(w, r.URL.Path)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to retrieve order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Confirm handles POST /api/orders/{id}/confirm requests.
func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID, ok := h.orderID(w, r.URL.Path)
	if !ok {
		return
	}

	order, err := h.service.ConfirmOrder(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "order not found", h.logger)
		case errors.Is(err, model.ErrOrderNotPending):
			writeError(w, http.StatusConflict, "order is not pending confirmation", h.logger)
		default:
			writeError(w, http.StatusInternalServerError, "failed to confirm order", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// orderID extracts and parses the order id from a /api/orders/{id}[/confirm]
// path, writing the error response itself when the id is missing or malformed.
func (h *OrderHandler) orderID(w http.ResponseWriter, path string) (uuid.UUID, bool) {
	rest := strings.TrimPrefix(path, "/api/orders/")
	if rest == path || rest == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return uuid.Nil, false
	}
	idStr := strings.SplitN(strings.Trim(rest, "/"), "/", 2)[0]

	orderID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return uuid.Nil, false
	}
	return orderID, true
}
