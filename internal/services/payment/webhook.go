package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/osint-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/osint-gateway/internal/upi"
)

// SubscriptionDays — длительность окна подписки, выдаваемого за один платёж.
const SubscriptionDays = 30

// StatusSuccess — статус успешного платежа в payload-е шлюза.
const StatusSuccess = "success"

// ErrInvalidTransaction возвращается для некорректного client_txn_id.
var ErrInvalidTransaction = errors.New("invalid transaction")

// WebhookPayload — тело callback-а платежного шлюза.
type WebhookPayload struct {
	ClientTxnID string `json:"client_txn_id"`
	Status      string `json:"status"`
	Amount      int    `json:"amount"`
}

// ParseUserID извлекает user_id из идентификатора транзакции вида "txn_<id>".
func ParseUserID(clientTxnID string) (int64, error) {
	suffix, ok := strings.CutPrefix(clientTxnID, upi.TxnPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTransaction, clientTxnID)
	}
	userID, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTransaction, clientTxnID)
	}
	return userID, nil
}

// ProcessWebhook обрабатывает callback шлюза о результате платежа.
//
// Возвращает true, если подписка была продлена. Неуспешный статус
// подтверждается без изменения состояния. Окно подписки отсчитывается
// от текущего момента: повторная доставка того же payload продлевает
// подписку еще раз.
func (s *Service) ProcessWebhook(ctx context.Context, payload WebhookPayload) (bool, error) {
	userID, err := ParseUserID(payload.ClientTxnID)
	if err != nil {
		return false, err
	}

	if payload.Status != StatusSuccess {
		return false, nil
	}

	if err := s.repo.ExtendPaidUntil(ctx, userID, SubscriptionDays); err != nil {
		return false, err
	}

	// Подписка уже продлена; сбой записи в журнал не должен заставлять
	// шлюз доставлять callback повторно.
	if _, err := s.repo.SavePayment(ctx, userID, payload.ClientTxnID, payload.Status, payload.Amount); err != nil {
		s.log.Error("failed to save payment record", sl.Err(err))
	}
	return true, nil
}
