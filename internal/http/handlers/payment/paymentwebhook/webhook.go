// Package paymentwebhook обрабатывает callback платежного шлюза.
//
// Подпись callback-а проверяется только при настроенном секрете шлюза:
// без него любой отправитель может подтвердить платёж, что остаётся
// известным свойством исходного протокола.
package paymentwebhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/osint-gateway/internal/http/response"
	"github.com/magabrotheeeer/osint-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/osint-gateway/internal/services/payment"
)

// Service определяет интерфейс обработки callback-а.
type Service interface {
	ProcessWebhook(ctx context.Context, payload payment.WebhookPayload) (bool, error)
}

// Handler обрабатывает callback-и платежного шлюза.
type Handler struct {
	log           *slog.Logger // Логгер для записи информации и ошибок
	service       Service
	webhookSecret string // Секрет для проверки подписи; пустой — проверка выключена
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
	}
}

// Проверка подписи webhook (X-Api-Signature).
func (h *Handler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expectedSig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expectedSig), []byte(signature))
}

// ServeHTTP godoc
// @Summary Callback платежного шлюза
// @Description Принимает результат платежа и при успехе продлевает подписку на 30 дней
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body payment.WebhookPayload true "Payload шлюза"
// @Success 200 {object} map[string]string "Результат обработки"
// @Failure 400 {object} response.ErrorResponse "Некорректный payload или идентификатор транзакции"
// @Failure 401 {object} response.ErrorResponse "Неверная подпись"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /payment-webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	defer func() {
		_ = r.Body.Close()
	}()

	if h.webhookSecret != "" {
		signature := r.Header.Get("X-Api-Signature")
		if signature == "" || !h.verifySignature(body, signature) {
			log.Error("invalid or missing webhook signature")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid signature"))
			return
		}
	}

	var payload payment.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	activated, err := h.service.ProcessWebhook(r.Context(), payload)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidTransaction) {
			log.Error("invalid transaction id", slog.String("client_txn_id", payload.ClientTxnID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid transaction"))
			return
		}
		log.Error("failed to process webhook", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	if !activated {
		log.Info("payment not successful", slog.String("client_txn_id", payload.ClientTxnID),
			slog.String("payment_status", payload.Status))
		render.JSON(w, r, map[string]string{"msg": "Payment not successful"})
		return
	}

	log.Info("subscription activated", slog.String("client_txn_id", payload.ClientTxnID))
	render.JSON(w, r, map[string]string{"msg": "Subscription activated"})
}
