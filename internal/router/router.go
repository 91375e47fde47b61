package router

import (
	"net/http"
	"strings"

	"loja-rosa/internal/handler"
	"loja-rosa/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific product ID
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.GetAll(w, r)
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Cart quoting
	mux.HandleFunc("/api/cart/totals", cartHandler.Totals)

	// Checkout catalogues
	mux.HandleFunc("/api/checkout/delivery-methods", checkoutHandler.DeliveryMethods)
	mux.HandleFunc("/api/checkout/payment-methods", checkoutHandler.PaymentMethods)

	// Address book handler function
	addressRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/checkout/addresses" || r.URL.Path == "/api/checkout/addresses/" {
			checkoutHandler.Addresses(w, r)
			return
		}

		if strings.HasSuffix(strings.TrimSuffix(r.URL.Path, "/"), "/default") {
			checkoutHandler.SetDefaultAddress(w, r)
			return
		}
		checkoutHandler.RemoveAddress(w, r)
	}

	mux.HandleFunc("/api/checkout/addresses", addressRouteHandler)
	mux.HandleFunc("/api/checkout/addresses/", addressRouteHandler)

	// Checkout session handler function
	sessionRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/checkout/sessions" || r.URL.Path == "/api/checkout/sessions/" {
			checkoutHandler.StartSession(w, r)
			return
		}

		// Route /api/checkout/sessions/{id}[/{action}] on the trailing action
		rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/checkout/sessions/"), "/")
		parts := strings.SplitN(rest, "/", 2)

		if len(parts) == 1 {
			checkoutHandler.GetSession(w, r)
			return
		}

		switch parts[1] {
		case "next":
			checkoutHandler.Next(w, r)
		case "previous":
			checkoutHandler.Previous(w, r)
		case "address":
			checkoutHandler.SelectAddress(w, r)
		case "delivery":
			checkoutHandler.SelectDeliveryMethod(w, r)
		case "payment":
			checkoutHandler.SelectPaymentMethod(w, r)
		case "order":
			checkoutHandler.CreateOrder(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}

	mux.HandleFunc("/api/checkout/sessions", sessionRouteHandler)
	mux.HandleFunc("/api/checkout/sessions/", sessionRouteHandler)

	// Order handler function
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/orders/") || r.URL.Path == "/api/orders/" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		if strings.HasSuffix(strings.TrimSuffix(r.URL.Path, "/"), "/confirm") {
			orderHandler.Confirm(w, r)
			return
		}
		orderHandler.GetByID(w, r)
	}

	// Register order routes (both with and without trailing slash)
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
