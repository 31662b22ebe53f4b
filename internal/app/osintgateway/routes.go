package osintgateway

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/osint-gateway/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/osint-gateway/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/osint-gateway/internal/http/handlers/health"
	lookuphandler "github.com/magabrotheeeer/osint-gateway/internal/http/handlers/lookup"
	"github.com/magabrotheeeer/osint-gateway/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/osint-gateway/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/osint-gateway/internal/http/handlers/payment/paymentwebhook"
	"github.com/magabrotheeeer/osint-gateway/internal/http/middlewarectx"
	"github.com/magabrotheeeer/osint-gateway/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/osint-gateway/internal/services/auth"
	lookupservice "github.com/magabrotheeeer/osint-gateway/internal/services/lookup"
	paymentservice "github.com/magabrotheeeer/osint-gateway/internal/services/payment"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.Service, paymentService *paymentservice.Service,
	lookupService *lookupservice.Service, webhookSecret string) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Get("/", health.New("Rishabh").ServeHTTP)
	r.Post("/register", register.New(logger, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService).ServeHTTP)

	// Группа конечных точек, требующих идентификации пользователя
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(jwtMaker, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger, rate.NewLimiter(1, 3)))
		r.Post("/create-payment", paymentcreate.New(logger, paymentService).ServeHTTP)
		r.Get("/payments", paymentlist.New(logger, paymentService).ServeHTTP)
		r.Get("/lookup", lookuphandler.New(logger, lookupService).ServeHTTP)
	})

	// Webhook endpoint (без аутентификации, опциональная проверка подписи)
	r.Post("/payment-webhook", paymentwebhook.New(logger, paymentService, webhookSecret).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
