// Package list реализует HTTP-обработчик получения всех заказов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/order-normalizer/internal/http/response"
	"github.com/magabrotheeeer/order-normalizer/internal/lib/sl"
	"github.com/magabrotheeeer/order-normalizer/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения всех заказов.
type Service interface {
	GetAllOrders(ctx context.Context) ([]models.User, error)
}

// Handler возвращает всех пользователей со всеми заказами.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список всех заказов
// @Description Возвращает всех пользователей из последнего загруженного файла со всеми их заказами.
// @Tags Orders
// @Produce  json
// @Success 200 {object} response.Response{data=[]models.UserOrdersResponse} "Пользователи с заказами"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/orders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.list"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.GetAllOrders(r.Context())
	if err != nil {
		log.Error("failed to list orders", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list orders"))
		return
	}

	log.Debug("list orders", slog.Int("users", len(users)))
	render.JSON(w, r, response.StatusOKWithData(models.NewUserOrdersResponses(users)))
}
