package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/osint-gateway/internal/models"
)

// SavePayment сохраняет информацию о подтверждённом платеже.
func (s *Storage) SavePayment(ctx context.Context, userID int64, clientTxnID, status string, amount int) (int, error) {
	const op = "storage.SavePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_id, client_txn_id, status, amount, created_at)
			  VALUES ($1, $2, $3, $4, NOW()) RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, userID, clientTxnID, status, amount).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPayments возвращает список платежей пользователя.
func (s *Storage) ListPayments(ctx context.Context, userID int64) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, client_txn_id, status, amount, created_at
			  FROM payments
			  WHERE user_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.ClientTxnID, &p.Status, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
