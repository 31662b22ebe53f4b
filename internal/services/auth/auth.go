// Package auth содержит логику бизнес-уровня для регистрации и авторизации пользователей.
package auth

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/osint-gateway/internal/lib/jwt"
	"github.com/magabrotheeeer/osint-gateway/internal/lib/password"
	"github.com/magabrotheeeer/osint-gateway/internal/models"
	"github.com/magabrotheeeer/osint-gateway/internal/storage/repository"
)

// ErrUserExists возвращается при регистрации уже занятого username.
var ErrUserExists = errors.New("user already exists")

// ErrInvalidCredentials возвращается при неверном username или пароле.
// Разница между "нет такого пользователя" и "неверный пароль" наружу не раскрывается.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service отвечает за регистрацию и авторизацию.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Подписка при регистрации не активируется: paid_until остается пустым.
func (s *Service) Register(ctx context.Context, username, rawPassword string) (int64, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, err
	}
	id, err := s.users.CreateUser(ctx, username, hashed)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	return id, nil
}

// Login проверяет пароль пользователя и генерирует JWT сессии.
//
// Возвращает идентификатор пользователя и токен; идентификатор нужен
// клиентам, работающим без заголовка Authorization.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (int64, string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, "", ErrInvalidCredentials
		}
		return 0, "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return 0, "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Username)
	if err != nil {
		return 0, "", err
	}
	return user.ID, token, nil
}
