package api

import (
	"net/http"

	"github.com/arjunm/coursehub/internal/api/handlers"
	"github.com/arjunm/coursehub/internal/api/middleware"
	"github.com/arjunm/coursehub/internal/config"
	"github.com/arjunm/coursehub/internal/metrics"
	"github.com/arjunm/coursehub/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

func NewRouter(services *service.Services, db *gorm.DB, collector *metrics.Collector, registry *prometheus.Registry, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics(collector))

	// Operational endpoints
	healthHandler := handlers.NewHealthHandler(db)
	r.Get("/health", healthHandler.Check)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, services.Token)
	courseHandler := handlers.NewCourseHandler(services.Course)
	purchaseHandler := handlers.NewPurchaseHandler(services.Payment)

	authLimiter := middleware.NewRateLimiter(cfg.AuthRatePerMinute)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public, rate limited against credential guessing
			r.Group(func(r chi.Router) {
				r.Use(authLimiter.Limit)
				r.Post("/signup", authHandler.Signup)
				r.Post("/signin", authHandler.Signin)
			})
			r.Post("/signout", authHandler.Signout)

			// Protected profile routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Token))
				r.Get("/profile", authHandler.Profile)
				r.Patch("/profile", authHandler.UpdateProfile)
			})
		})

		r.Route("/courses", func(r chi.Router) {
			// Public catalog, viewer-aware when a session is present
			r.Group(func(r chi.Router) {
				r.Use(middleware.OptionalAuth(services.Token))
				r.Get("/", courseHandler.List)
				r.Get("/{id}", courseHandler.Get)
				r.Get("/{id}/lectures", courseHandler.ListLectures)
				r.Get("/{id}/ratings", courseHandler.ListRatings)
			})

			// Protected authoring routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Token))
				r.Post("/", courseHandler.Create)
				r.Patch("/{id}", courseHandler.Update)
				r.Post("/{id}/publish", courseHandler.Publish)
				r.Post("/{id}/unpublish", courseHandler.Unpublish)
				r.Post("/{id}/lectures", courseHandler.AddLecture)
				r.Post("/{id}/ratings", courseHandler.Rate)
			})
		})

		// Purchases are always protected
		r.Route("/purchases", func(r chi.Router) {
			r.Use(middleware.Auth(services.Token))
			r.Get("/", purchaseHandler.List)
			r.Post("/orders", purchaseHandler.CreateOrder)
			r.Post("/verify", purchaseHandler.VerifyPayment)
			r.Post("/fail", purchaseHandler.MarkFailed)
			r.Post("/{id}/refund", purchaseHandler.Refund)
		})
	})

	return r
}
