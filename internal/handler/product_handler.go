package handler

import (
	"net/http"
	"strconv"

	"loja-rosa/internal/model"
	"loja-rosa/internal/pricing"
	"loja-rosa/internal/service"

	"github.com/rs/zerolog"
)

// productResponse decorates a product with its IVA breakdown. A promotional
// discount applies to the net price, with IVA added back on top.
type productResponse struct {
	model.Product
	BasePrice      float64  `json:"basePrice"`
	VATAmount      float64  `json:"vatAmount"`
	IvaDescription string   `json:"ivaDescription"`
	PromoPrice     *float64 `json:"promoPrice,omitempty"`
}

func newProductResponse(p model.Product) productResponse {
	rate := pricing.EffectiveRate(p.IvaRate, p.CategoryID)
	resp := productResponse{
		Product:        p,
		BasePrice:      pricing.BasePrice(p.Price, rate),
		VATAmount:      pricing.VATAmount(p.Price, rate),
		IvaDescription: pricing.RateDescription(rate),
	}
	if p.DiscountPercent > 0 {
		if promoBase, err := pricing.PromotionalPrice(resp.BasePrice, p.DiscountPercent); err == nil {
			promoPrice := pricing.FinalPrice(promoBase, rate)
			resp.PromoPrice = &promoPrice
		}
	}
	return resp
}

func newProductResponses(products []model.Product) []productResponse {
	responses := make([]productResponse, len(products))
	for i, p := range products {
		responses[i] = newProductResponse(p)
	}
	return responses
}

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests with pagination.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset parameter", h.logger)
			return
		}
	}

	products, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newProductResponses(products))
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	// Expecting path: /api/products/{id}
	path := r.URL.Path
	if len(path) < len("/api/products/") {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}
	productID := path[len("/api/products/"):]

	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), productID)
	if err != nil {
		writeError(w, http.StatusNotFound, "product not found", h.logger)
		return
	}

	if product == nil {
		writeError(w, http.StatusNotFound, "product not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newProductResponse(*product))
}
