// Package osintgateway собирает приложение: хранилище, миграции,
// клиенты внешних API, сервисы и HTTP-сервер.
package osintgateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/osint-gateway/internal/config"
	"github.com/magabrotheeeer/osint-gateway/internal/lib/jwt"
	"github.com/magabrotheeeer/osint-gateway/internal/migrations"
	"github.com/magabrotheeeer/osint-gateway/internal/osint"
	authservice "github.com/magabrotheeeer/osint-gateway/internal/services/auth"
	lookupservice "github.com/magabrotheeeer/osint-gateway/internal/services/lookup"
	paymentservice "github.com/magabrotheeeer/osint-gateway/internal/services/payment"
	"github.com/magabrotheeeer/osint-gateway/internal/storage/repository"
	"github.com/magabrotheeeer/osint-gateway/internal/upi"
)

// App инкапсулирует HTTP-сервер и соединение с базой данных.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New создает приложение: подключается к базе, применяет миграции
// и регистрирует маршруты.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	upiClient := upi.NewClient(cfg.UPIGateway.APIKey, cfg.UPIGateway.APIURL, cfg.UPIGateway.RedirectURL)
	osintClient := osint.NewClient(cfg.Lookup.BaseURL)

	authService := authservice.New(db, jwtMaker)
	paymentService := paymentservice.New(db, upiClient, logger)
	lookupService := lookupservice.New(db, osintClient)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, authService, paymentService, lookupService,
		cfg.UPIGateway.SecretKey)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.Close()
		return err
	}
}
