package models

import "time"

// Payment представляет подтверждённый шлюзом платёж пользователя.
type Payment struct {
	ID          int       `json:"id"`
	UserID      int64     `json:"user_id"`
	ClientTxnID string    `json:"client_txn_id"`
	Status      string    `json:"status"`
	Amount      int       `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}
