// Package paymentlist возвращает журнал подтверждённых платежей пользователя.
package paymentlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/osint-gateway/internal/http/middlewarectx"
	"github.com/magabrotheeeer/osint-gateway/internal/http/response"
	"github.com/magabrotheeeer/osint-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/osint-gateway/internal/models"
)

// Service определяет интерфейс для чтения платежей.
type Service interface {
	ListPayments(ctx context.Context, userID int64) ([]*models.Payment, error)
}

// Handler обрабатывает запросы списка платежей.
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
// @Summary Список платежей
// @Description Возвращает подтверждённые платежи пользователя
// @Tags Payments
// @Produce json
// @Param user_id query int false "Идентификатор пользователя (при отсутствии bearer-токена)"
// @Success 200 {object} response.Response "Список платежей"
// @Failure 400 {object} response.ErrorResponse "Отсутствующий user_id"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /payments [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"
	log := h.log.With(slog.String("op", op))

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		parsed, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
		if err != nil || parsed <= 0 {
			log.Error("user_id is missing")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("field user_id is a required field"))
			return
		}
		userID = parsed
	}

	payments, err := h.paymentService.ListPayments(r.Context(), userID)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("payments listed", slog.Int("count", len(payments)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count":    len(payments),
		"payments": payments,
	}))
}
