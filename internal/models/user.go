// Package models содержит доменные модели сервиса:
// учётную запись пользователя и запись о подтверждённом платеже.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64      // Уникальный идентификатор пользователя
	Username     string     // Имя пользователя (уникальное)
	PasswordHash string     // Хэш пароля пользователя
	PaidUntil    *time.Time // Дата истечения оплаченной подписки; nil — подписка не оплачивалась
}
