// Package upload реализует HTTP-обработчик загрузки файла заказов.
//
// Handler принимает multipart-форму с полем "file", передаёт содержимое в
// бизнес-логику и возвращает нормализованных пользователей в JSON-формате.
// Ошибки формата файла возвращаются с кодом 400, слишком большой файл с кодом 413.
package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/order-normalizer/internal/http/response"
	"github.com/magabrotheeeer/order-normalizer/internal/lib/sl"
	"github.com/magabrotheeeer/order-normalizer/internal/models"
	"github.com/magabrotheeeer/order-normalizer/internal/normalizer"
	"github.com/magabrotheeeer/order-normalizer/internal/parser"
	orderservice "github.com/magabrotheeeer/order-normalizer/internal/services/orders"
)

// FormField содержит имя поля multipart-формы с файлом.
const FormField = "file"

// HeaderUploadID содержит имя заголовка ответа с идентификатором загрузки.
const HeaderUploadID = "X-Upload-ID"

const maxMemory = 1 << 20

// Service описывает интерфейс бизнес-логики загрузки.
type Service interface {
	ProcessOrderFile(ctx context.Context, r io.Reader) (*orderservice.UploadResult, error)
}

// Handler обрабатывает загрузку файлов заказов.
type Handler struct {
	log      *slog.Logger
	service  Service
	maxBytes int64
}

// New создаёт Handler. maxBytes ограничивает размер тела запроса.
func New(log *slog.Logger, service Service, maxBytes int64) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		maxBytes: maxBytes,
	}
}

// ServeHTTP godoc
// @Summary Загрузка файла заказов
// @Description Разбирает файл фиксированной ширины и заменяет им содержимое хранилища.
// @Tags Orders
// @Accept  multipart/form-data
// @Produce  json
// @Param file formData file true "Файл заказов"
// @Success 200 {object} response.Response{data=[]models.UserOrdersResponse} "Нормализованные пользователи"
// @Header 200 {string} X-Upload-ID "Идентификатор загрузки"
// @Failure 400 {object} response.Response "Некорректный файл"
// @Failure 413 {object} response.Response "Файл слишком большой"
// @Failure 429 {object} response.Response "Слишком много запросов"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/orders/upload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.upload"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Error("upload exceeds size limit", slog.Int64("limit", tooLarge.Limit))
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, response.Error("file size exceeds maximum limit"))
			return
		}
		log.Error("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(FormField)
	if err != nil {
		log.Error("file field is missing", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("field file is a required field"))
		return
	}
	defer file.Close()

	log = log.With(slog.String("filename", header.Filename), slog.Int64("size", header.Size))

	res, err := h.service.ProcessOrderFile(r.Context(), file)
	if err != nil {
		if orderservice.IsRejected(err) {
			log.Error("order file rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(rejectionMessage(err)))
			return
		}
		log.Error("failed to process order file", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process order file"))
		return
	}

	log.Info("order file processed", slog.String("upload_id", res.ID.String()), slog.Int("users", len(res.Users)))
	w.Header().Set(HeaderUploadID, res.ID.String())
	render.JSON(w, r, response.StatusOKWithData(models.NewUserOrdersResponses(res.Users)))
}

// rejectionMessage возвращает описание ошибки формата без цепочки операций.
func rejectionMessage(err error) string {
	var structErr *parser.StructuralError
	if errors.As(err, &structErr) {
		return structErr.Error()
	}
	var tooLongErr *parser.LineTooLongError
	if errors.As(err, &tooLongErr) {
		return tooLongErr.Error()
	}
	var validationErr *normalizer.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	return "invalid order file"
}
