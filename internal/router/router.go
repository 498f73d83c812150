package router

import (
	"net/http"

	"solesnaps-api/internal/auth"
	"solesnaps-api/internal/config"
	"solesnaps-api/internal/handler"
	"solesnaps-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Handlers bundles the HTTP handlers mounted by the router.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Location *handler.LocationHandler
	Coupon   *handler.CouponHandler
}

// New builds the HTTP route tree with all middleware applied.
func New(cfg *config.Config, issuer *auth.TokenIssuer, h Handlers, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)
		r.Use(rl.Handler)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
		})

		r.Get("/products", h.Product.List)
		r.Get("/products/{id}", h.Product.GetByID)

		// Location listing varies by role: admins also see inactive ones.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuthenticate(issuer))
			r.Get("/locations", h.Location.List)
			r.Get("/locations/{id}", h.Location.GetByID)
		})

		r.Post("/coupons/validate", h.Coupon.Validate)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(issuer, logger))

			r.Get("/auth/me", h.Auth.Profile)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.Get)
				r.Delete("/", h.Cart.Clear)
				r.Post("/items", h.Cart.Add)
				r.Put("/items/{id}", h.Cart.UpdateQuantity)
				r.Delete("/items/{id}", h.Cart.Remove)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.Order.List)
				r.Post("/", h.Order.Create)
				r.Get("/{id}", h.Order.GetByID)
				r.Post("/{id}/cancel", h.Order.Cancel)
			})
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(issuer, logger))
			r.Use(middleware.RequireAdmin(logger))

			r.Post("/products", h.Product.Create)
			r.Put("/products/{id}", h.Product.Update)
			r.Delete("/products/{id}", h.Product.Delete)

			r.Post("/locations", h.Location.Create)
			r.Put("/locations/{id}", h.Location.Update)

			r.Put("/orders/{id}/status", h.Order.UpdateStatus)

			r.Get("/coupons", h.Coupon.List)
			r.Post("/coupons", h.Coupon.Create)
			r.Put("/coupons/{id}", h.Coupon.Update)
			r.Post("/coupons/import", h.Coupon.Import)
		})
	})

	return r
}
