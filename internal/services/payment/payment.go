// Package payment содержит логику бизнес-уровня платежного цикла:
// создание заказа в шлюзе UPI и обработку callback-а о результате платежа.
package payment

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/magabrotheeeer/osint-gateway/internal/models"
)

// Repository описывает контракт для работы с пользователями и платежами в базе данных.
type Repository interface {
	ExtendPaidUntil(ctx context.Context, userID int64, days int) error
	SavePayment(ctx context.Context, userID int64, clientTxnID, status string, amount int) (int, error)
	ListPayments(ctx context.Context, userID int64) ([]*models.Payment, error)
}

// GatewayClient определяет интерфейс для работы с платежным шлюзом.
type GatewayClient interface {
	CreateOrder(ctx context.Context, userID int64) (json.RawMessage, error)
}

// Service отвечает за платежный цикл.
type Service struct {
	repo    Repository
	gateway GatewayClient
	log     *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, gateway GatewayClient, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		gateway: gateway,
		log:     log,
	}
}

// CreateOrder создает заказ в платежном шлюзе и возвращает его сырой ответ.
//
// Локально ничего не записывается: до прихода webhook транзакция
// существует только на стороне шлюза.
func (s *Service) CreateOrder(ctx context.Context, userID int64) (json.RawMessage, error) {
	return s.gateway.CreateOrder(ctx, userID)
}

// ListPayments возвращает список подтверждённых платежей пользователя.
func (s *Service) ListPayments(ctx context.Context, userID int64) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, userID)
}
