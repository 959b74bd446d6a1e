package router

import (
	"net/http"

	"roastery/internal/handler"
	"roastery/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// The storefront surface is public; admin routes sit behind API key auth.
func New(
	productHandler *handler.ProductHandler,
	checkoutHandler *handler.CheckoutHandler,
	shippingHandler *handler.ShippingHandler,
	orderHandler *handler.OrderHandler,
	newsletterHandler *handler.NewsletterHandler,
	adminAPIKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.GetAll)
			r.Get("/{slug}", productHandler.GetBySlugOrID)
			r.Get("/{slug}/variations", productHandler.GetVariations)
			r.Post("/{slug}/variations/resolve", productHandler.ResolveVariation)
		})

		r.Get("/categories", productHandler.GetCategories)

		r.Post("/shipping/quote", shippingHandler.Quote)
		r.Post("/checkout", checkoutHandler.Checkout)
		r.Get("/orders/{id}", orderHandler.GetByID)

		r.Post("/newsletter", newsletterHandler.Subscribe)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(adminAPIKey, logger))
			r.Patch("/orders/{id}/status", orderHandler.UpdateStatus)
		})
	})

	return r
}
