// Package lookup реализует HTTP-обработчик проксирования OSINT-запросов.
//
// Запрос отклоняется, если подписка пользователя не оплачена или истекла;
// при активной подписке ответ upstream API возвращается без изменений.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/osint-gateway/internal/http/middlewarectx"
	"github.com/magabrotheeeer/osint-gateway/internal/http/response"
	"github.com/magabrotheeeer/osint-gateway/internal/lib/sl"
	lookupservice "github.com/magabrotheeeer/osint-gateway/internal/services/lookup"
)

// Service описывает интерфейс бизнес-логики проверки подписки и проксирования.
type Service interface {
	Lookup(ctx context.Context, userID int64, lookupType, rawQuery string) (json.RawMessage, error)
}

// Handler обрабатывает запросы /lookup.
type Handler struct {
	log           *slog.Logger // Логгер для записи информации и ошибок
	lookupService Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, ls Service) *Handler {
	return &Handler{
		log:           log,
		lookupService: ls,
	}
}

// ServeHTTP godoc
// @Summary OSINT-запрос
// @Description Проверяет подписку и проксирует запрос к upstream OSINT API
// @Tags Lookup
// @Produce json
// @Param user_id query int false "Идентификатор пользователя (при отсутствии bearer-токена)"
// @Param type query string true "Тип запроса, подставляется в путь upstream"
// @Param query query string true "Строка query upstream-запроса"
// @Success 200 {object} map[string]any "Сырой ответ upstream API"
// @Failure 400 {object} response.ErrorResponse "Отсутствующие параметры"
// @Failure 403 {object} response.ErrorResponse "Подписка не оплачена или истекла"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 502 {object} response.ErrorResponse "Ошибка upstream API"
// @Router /lookup [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lookup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	lookupType := r.URL.Query().Get("type")
	if lookupType == "" {
		log.Error("type is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("field type is a required field"))
		return
	}
	rawQuery := r.URL.Query().Get("query")

	result, err := h.lookupService.Lookup(r.Context(), userID, lookupType, rawQuery)
	if err != nil {
		switch {
		case errors.Is(err, lookupservice.ErrUserNotFound):
			log.Info("user not found", slog.Int64("user_id", userID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, lookupservice.ErrSubscriptionRequired):
			log.Info("subscription required", slog.Int64("user_id", userID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("subscription required"))
		case errors.Is(err, lookupservice.ErrSubscriptionExpired):
			log.Info("subscription expired", slog.Int64("user_id", userID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("subscription expired"))
		default:
			log.Error("lookup failed", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("upstream error"))
		}
		return
	}

	log.Info("lookup forwarded", slog.Int64("user_id", userID), slog.String("type", lookupType))
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(result)
}
