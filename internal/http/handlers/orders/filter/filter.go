// Package filter реализует HTTP-обработчик выборки заказов по идентификатору
// заказа или по промежутку дат.
//
// Если передан order_id, выполняется поиск по заказу. Иначе, если передана
// хотя бы одна из дат start_date и end_date, выполняется поиск по промежутку.
// Без параметров возвращаются все заказы.
package filter

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/order-normalizer/internal/http/response"
	"github.com/magabrotheeeer/order-normalizer/internal/lib/legacydate"
	"github.com/magabrotheeeer/order-normalizer/internal/lib/sl"
	"github.com/magabrotheeeer/order-normalizer/internal/lib/validate"
	"github.com/magabrotheeeer/order-normalizer/internal/models"
)

// Service описывает интерфейс бизнес-логики выборки заказов.
type Service interface {
	GetAllOrders(ctx context.Context) ([]models.User, error)
	GetOrdersByOrderID(ctx context.Context, orderID int64) ([]models.User, error)
	GetOrdersByDateRange(ctx context.Context, start, end *time.Time) ([]models.User, error)
}

// Handler обрабатывает запросы фильтрации заказов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Фильтрация заказов
// @Description При заданном order_id ищет по заказу, иначе по промежутку дат. Без параметров возвращает все заказы.
// @Tags Orders
// @Produce  json
// @Param order_id query string false "Идентификатор заказа"
// @Param start_date query string false "Начало периода, 2006-01-02"
// @Param end_date query string false "Конец периода, 2006-01-02"
// @Success 200 {object} response.Response{data=[]models.UserOrdersResponse} "Найденные пользователи"
// @Failure 400 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/orders/filter [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.filter"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	req := models.DummyOrderFilter{
		OrderID:   q.Get("order_id"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.JSON(w, r, response.Error("invalid filter"))
		return
	}

	users, err := h.find(r.Context(), req)
	if err != nil {
		if _, ok := err.(badRequestError); ok {
			log.Error("invalid filter", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to filter orders", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to filter orders"))
		return
	}

	log.Debug("filter orders", slog.Any("filter", req), slog.Int("users", len(users)))
	render.JSON(w, r, response.StatusOKWithData(models.NewUserOrdersResponses(users)))
}

type badRequestError string

func (e badRequestError) Error() string { return string(e) }

func (h *Handler) find(ctx context.Context, req models.DummyOrderFilter) ([]models.User, error) {
	if req.OrderID != "" {
		id, err := strconv.ParseInt(req.OrderID, 10, 64)
		if err != nil {
			return nil, badRequestError("field order_id is out of range")
		}
		return h.service.GetOrdersByOrderID(ctx, id)
	}

	if req.StartDate == "" && req.EndDate == "" {
		return h.service.GetAllOrders(ctx)
	}

	start, err := optionalDate(req.StartDate)
	if err != nil {
		return nil, badRequestError("field start_date can contain only date in format " + legacydate.APILayout)
	}
	end, err := optionalDate(req.EndDate)
	if err != nil {
		return nil, badRequestError("field end_date can contain only date in format " + legacydate.APILayout)
	}
	return h.service.GetOrdersByDateRange(ctx, start, end)
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := legacydate.ParseAPI(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
