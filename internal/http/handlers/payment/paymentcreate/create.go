// Package paymentcreate обрабатывает создание заказа в платежном шлюзе.
package paymentcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/osint-gateway/internal/http/middlewarectx"
	"github.com/magabrotheeeer/osint-gateway/internal/http/response"
	"github.com/magabrotheeeer/osint-gateway/internal/lib/sl"
)

// Request представляет запрос на создание платежа.
// user_id нужен только клиентам без bearer-токена.
type Request struct {
	UserID int64 `json:"user_id"`
}

// Service определяет интерфейс для работы с платежами.
type Service interface {
	CreateOrder(ctx context.Context, userID int64) (json.RawMessage, error)
}

// Handler обрабатывает запросы на создание платежа.
type Handler struct {
	log            *slog.Logger // Логгер для записи информации и ошибок
	paymentService Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, ps Service) *Handler {
	return &Handler{
		log:            log,
		paymentService: ps,
	}
}

// ServeHTTP godoc
// @Summary Создать платеж
// @Description Создает заказ на фиксированную сумму подписки в шлюзе UPI и возвращает его ответ как есть
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body Request true "Идентификатор пользователя (при отсутствии bearer-токена)"
// @Success 200 {object} map[string]any "Сырой ответ платежного шлюза"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или отсутствующий user_id"
// @Failure 502 {object} response.ErrorResponse "Ошибка платежного шлюза"
// @Router /create-payment [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"
	log := h.log.With(slog.String("op", op))

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("failed to decode request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return
		}
		if req.UserID <= 0 {
			log.Error("user_id is missing")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("field user_id is a required field"))
			return
		}
		userID = req.UserID
	}

	orderResp, err := h.paymentService.CreateOrder(r.Context(), userID)
	if err != nil {
		log.Error("failed to create order", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("payment gateway error"))
		return
	}

	log.Info("order created", slog.Int64("user_id", userID))
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(orderResp)
}
