// Package orders содержит бизнес-логику загрузки файла заказов и запросов к
// нормализованным данным.
package orders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/order-normalizer/internal/lib/sl"
	"github.com/magabrotheeeer/order-normalizer/internal/metrics"
	"github.com/magabrotheeeer/order-normalizer/internal/models"
	"github.com/magabrotheeeer/order-normalizer/internal/normalizer"
	"github.com/magabrotheeeer/order-normalizer/internal/parser"
	"github.com/magabrotheeeer/order-normalizer/internal/rabbitmq"
)

// Виды запросов для метрик.
const (
	QueryAll       = "all"
	QueryOrderID   = "order_id"
	QueryDateRange = "date_range"
)

// Parser читает записи из потока.
type Parser interface {
	Scan(ctx context.Context, r io.Reader, fn func(models.LineRecord) error) error
}

// OrderRepository определяет методы хранилища нормализованных заказов.
type OrderRepository interface {
	// Load атомарно заменяет всё содержимое хранилища.
	Load(ctx context.Context, users []models.User) error
	// FindAll возвращает всех пользователей.
	FindAll(ctx context.Context) ([]models.User, error)
	// FindByOrderID возвращает пользователей только с заказами orderID.
	FindByOrderID(ctx context.Context, orderID int64) ([]models.User, error)
	// FindByDateRange возвращает пользователей только с заказами из промежутка.
	FindByDateRange(ctx context.Context, start, end *time.Time) ([]models.User, error)
}

// EventPublisher уведомляет внешние системы о новой загрузке.
type EventPublisher interface {
	PublishUploadLoaded(ctx context.Context, event rabbitmq.UploadLoaded) error
}

// Metrics собирает метрики загрузок и запросов.
type Metrics interface {
	ObserveUpload(result string, lines int, elapsed time.Duration)
	SetStored(users, orders int)
	ObserveQuery(kind string)
}

// UploadResult описывает успешно загруженный файл.
type UploadResult struct {
	ID    uuid.UUID
	Lines int
	Users []models.User
}

// OrderService связывает разбор файла, нормализацию и хранилище.
type OrderService struct {
	parser    Parser
	repo      OrderRepository
	publisher EventPublisher
	metrics   Metrics
	log       *slog.Logger
}

// NewOrderService создаёт OrderService. publisher и metrics могут быть nil.
func NewOrderService(p Parser, repo OrderRepository, publisher EventPublisher, m Metrics, log *slog.Logger) *OrderService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if m == nil {
		m = noopMetrics{}
	}
	return &OrderService{
		parser:    p,
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		log:       log,
	}
}

// ProcessOrderFile разбирает и нормализует файл целиком и только после этого
// заменяет содержимое хранилища. Любая ошибка разбора оставляет хранилище
// нетронутым.
func (s *OrderService) ProcessOrderFile(ctx context.Context, r io.Reader) (*UploadResult, error) {
	const op = "services.orders.ProcessOrderFile"
	started := time.Now()

	b := normalizer.NewBuilder()
	if err := s.parser.Scan(ctx, r, b.Add); err != nil {
		result := metrics.ResultFailed
		if IsRejected(err) {
			result = metrics.ResultRejected
		}
		s.metrics.ObserveUpload(result, b.Lines(), time.Since(started))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	users := b.Users()
	if err := s.repo.Load(ctx, users); err != nil {
		s.metrics.ObserveUpload(metrics.ResultFailed, b.Lines(), time.Since(started))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := &UploadResult{ID: uuid.New(), Lines: b.Lines(), Users: users}
	nUsers, nOrders := len(users), countOrders(users)
	s.metrics.ObserveUpload(metrics.ResultOK, res.Lines, time.Since(started))
	s.metrics.SetStored(nUsers, nOrders)

	s.log.Info("order file loaded",
		slog.String("upload_id", res.ID.String()),
		slog.Int("lines", res.Lines),
		slog.Int("users", nUsers),
		slog.Int("orders", nOrders),
	)

	event := rabbitmq.UploadLoaded{
		UploadID: res.ID.String(),
		Lines:    res.Lines,
		Users:    nUsers,
		Orders:   nOrders,
		LoadedAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishUploadLoaded(ctx, event); err != nil {
		s.log.Warn("failed to publish upload event", slog.String("upload_id", res.ID.String()), sl.Err(err))
	}

	return res, nil
}

// GetAllOrders возвращает всех пользователей со всеми заказами.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.User, error) {
	s.metrics.ObserveQuery(QueryAll)
	return s.repo.FindAll(ctx)
}

// GetOrdersByOrderID возвращает пользователей с заказом orderID.
func (s *OrderService) GetOrdersByOrderID(ctx context.Context, orderID int64) ([]models.User, error) {
	s.metrics.ObserveQuery(QueryOrderID)
	return s.repo.FindByOrderID(ctx, orderID)
}

// GetOrdersByDateRange возвращает пользователей с заказами из промежутка [start, end].
func (s *OrderService) GetOrdersByDateRange(ctx context.Context, start, end *time.Time) ([]models.User, error) {
	s.metrics.ObserveQuery(QueryDateRange)
	return s.repo.FindByDateRange(ctx, start, end)
}

func countOrders(users []models.User) int {
	n := 0
	for _, u := range users {
		n += len(u.Orders)
	}
	return n
}

// IsRejected сообщает, что загрузка отклонена из-за содержимого файла,
// а не из-за сбоя чтения.
func IsRejected(err error) bool {
	return errors.Is(err, parser.ErrStructural) || errors.Is(err, normalizer.ErrValidation)
}

type noopPublisher struct{}

func (noopPublisher) PublishUploadLoaded(context.Context, rabbitmq.UploadLoaded) error { return nil }

type noopMetrics struct{}

func (noopMetrics) ObserveUpload(string, int, time.Duration) {}
func (noopMetrics) SetStored(int, int)                      {}
func (noopMetrics) ObserveQuery(string)                     {}
