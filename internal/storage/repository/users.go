package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/osint-gateway/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его ID.
//
// Уникальность username обеспечивается ограничением в базе, так что
// одновременные регистрации одного имени не могут пройти обе: нарушение
// ограничения транслируется в ErrUserExists.
func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO users (username, password_hash)
			  VALUES ($1, $2)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, username, passwordHash).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password_hash, paid_until
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)

	var paidUntil sql.NullTime
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &paidUntil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if paidUntil.Valid {
		u.PaidUntil = &paidUntil.Time
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password_hash, paid_until
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userID)

	var paidUntil sql.NullTime
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &paidUntil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if paidUntil.Valid {
		u.PaidUntil = &paidUntil.Time
	}
	return u, nil
}

// ExtendPaidUntil устанавливает paid_until = NOW() + заданное число дней.
//
// Окно отсчитывается от текущего момента, а не от прежнего paid_until:
// повторная доставка webhook продлевает подписку заново от NOW().
func (s *Storage) ExtendPaidUntil(ctx context.Context, userID int64, days int) error {
	const op = "storage.ExtendPaidUntil"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET paid_until = NOW() + $1 * INTERVAL '1 day'
			  WHERE id = $2`
	_, err := s.DB.ExecContext(ctx, query, days, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
