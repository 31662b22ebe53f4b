// Package lookup содержит логику бизнес-уровня для проверки подписки
// и проксирования запросов к upstream OSINT API.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/magabrotheeeer/osint-gateway/internal/models"
	"github.com/magabrotheeeer/osint-gateway/internal/storage/repository"
)

// ErrUserNotFound возвращается, когда пользователь отсутствует в базе.
var ErrUserNotFound = errors.New("user not found")

// ErrSubscriptionRequired возвращается, когда подписка ни разу не оплачивалась.
var ErrSubscriptionRequired = errors.New("subscription required")

// ErrSubscriptionExpired возвращается, когда оплаченное окно подписки истекло.
var ErrSubscriptionExpired = errors.New("subscription expired")

// UserRepository описывает контракт для чтения пользователей из базы данных.
type UserRepository interface {
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

// UpstreamClient определяет интерфейс для работы с upstream OSINT API.
type UpstreamClient interface {
	Lookup(ctx context.Context, lookupType, rawQuery string) (json.RawMessage, error)
}

// Service проверяет право доступа и проксирует запрос к upstream API.
type Service struct {
	users    UserRepository
	upstream UpstreamClient
}

// New создает новый экземпляр Service.
func New(users UserRepository, upstream UpstreamClient) *Service {
	return &Service{
		users:    users,
		upstream: upstream,
	}
}

// Lookup проверяет подписку пользователя и при активном окне
// возвращает сырой ответ upstream API.
func (s *Service) Lookup(ctx context.Context, userID int64, lookupType, rawQuery string) (json.RawMessage, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.PaidUntil == nil {
		return nil, ErrSubscriptionRequired
	}
	if user.PaidUntil.Before(time.Now()) {
		return nil, ErrSubscriptionExpired
	}

	return s.upstream.Lookup(ctx, lookupType, rawQuery)
}
