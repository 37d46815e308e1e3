// Package ordernormalizer собирает HTTP-приложение нормализатора заказов.
package ordernormalizer

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "github.com/magabrotheeeer/order-normalizer/docs"

	"github.com/magabrotheeeer/order-normalizer/internal/http/handlers/health"
	"github.com/magabrotheeeer/order-normalizer/internal/http/handlers/orders/filter"
	"github.com/magabrotheeeer/order-normalizer/internal/http/handlers/orders/list"
	"github.com/magabrotheeeer/order-normalizer/internal/http/handlers/orders/upload"
	"github.com/magabrotheeeer/order-normalizer/internal/http/middlewarectx"
	orderservice "github.com/magabrotheeeer/order-normalizer/internal/services/orders"
)

// RouteOptions задаёт параметры маршрутов, не связанные с бизнес-логикой.
type RouteOptions struct {
	MaxUploadBytes int64
	UploadLimiter  *rate.Limiter
	Metrics        http.Handler
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, orderService *orderservice.OrderService, opts RouteOptions) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", list.New(logger, orderService).ServeHTTP)
		r.Get("/filter", filter.New(logger, orderService).ServeHTTP)

		r.Group(func(r chi.Router) {
			if opts.UploadLimiter != nil {
				r.Use(middlewarectx.RateLimitMiddleware(logger, opts.UploadLimiter))
			}
			r.Post("/upload", upload.New(logger, orderService, opts.MaxUploadBytes).ServeHTTP)
		})
	})

	r.Get("/health", health.New().ServeHTTP)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
