package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"loja-rosa/internal/model"
	"loja-rosa/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart quoting HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Totals handles POST /api/cart/totals requests. The response always carries
// the computed totals; a rejected promo code is reported alongside them with
// the discount left at zero.
func (h *CartHandler) Totals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.CartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		var invalidItem *model.InvalidLineItemError
		if errors.As(err, &invalidItem) {
			writeError(w, http.StatusBadRequest, invalidItem.Error(), h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to compute totals", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
