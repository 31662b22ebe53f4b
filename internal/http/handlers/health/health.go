// Package health реализует корневую конечную точку проверки работоспособности.
package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// Handler отвечает статусом сервиса на GET /.
type Handler struct {
	owner string
}

// New создает новый экземпляр Handler.
func New(owner string) *Handler {
	return &Handler{owner: owner}
}

// ServeHTTP godoc
// @Summary Статус сервиса
// @Description Возвращает статус работы сервиса и имя владельца
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]any "Сервис работает"
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status": "running",
		"owner":  h.owner,
	})
}
