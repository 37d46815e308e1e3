// Package health реализует проверку живости сервиса.
package health

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/order-normalizer/internal/http/response"
)

// Handler отвечает 200 OK, пока процесс обслуживает запросы.
type Handler struct{}

// New создаёт Handler.
func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Проверка доступности
// @Description Возвращает статус OK, если сервис принимает запросы.
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response "Сервис доступен"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OK())
}
