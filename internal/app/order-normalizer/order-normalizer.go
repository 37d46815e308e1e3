package ordernormalizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/order-normalizer/internal/config"
	"github.com/magabrotheeeer/order-normalizer/internal/lib/sl"
	"github.com/magabrotheeeer/order-normalizer/internal/metrics"
	"github.com/magabrotheeeer/order-normalizer/internal/parser"
	"github.com/magabrotheeeer/order-normalizer/internal/rabbitmq"
	orderservice "github.com/magabrotheeeer/order-normalizer/internal/services/orders"
	"github.com/magabrotheeeer/order-normalizer/internal/storage/memory"
)

// App держит HTTP-сервер и внешние подключения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	amqp   *amqp.Connection
}

// New собирает приложение по конфигу. RabbitMQ подключается, только если задан его URL.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "ordernormalizer.New"

	charset, err := parser.WithCharset(cfg.Charset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	storage := memory.New()
	registry := metrics.NewRegistry()

	var (
		conn      *amqp.Connection
		publisher orderservice.EventPublisher
	)
	if cfg.RabbitMQ.URL != "" {
		conn, publisher, err = connectPublisher(cfg.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logger.Info("upload events enabled",
			slog.String("exchange", cfg.RabbitMQ.Exchange),
			slog.String("routing_key", cfg.RabbitMQ.RoutingKey),
		)
	}

	orderService := orderservice.NewOrderService(parser.New(charset, parser.WithMaxLineSize(int(cfg.MaxBytes))), storage, publisher, registry, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, orderService, RouteOptions{
		MaxUploadBytes: cfg.MaxBytes,
		UploadLimiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		Metrics:        registry.Handler(),
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		amqp:   conn,
	}, nil
}

func connectPublisher(cfg config.RabbitMQ) (*amqp.Connection, orderservice.EventPublisher, error) {
	conn, err := rabbitmq.Connect(cfg.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	topology := rabbitmq.Topology{
		Exchange:   cfg.Exchange,
		Queue:      cfg.Queue,
		RoutingKey: cfg.RoutingKey,
	}
	if err := rabbitmq.Declare(ch, topology); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, rabbitmq.NewPublisher(ch, cfg.Exchange, cfg.RoutingKey), nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeAMQP()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeAMQP()
		return err
	}
}

func (a *App) closeAMQP() {
	if a.amqp == nil {
		return
	}
	if err := a.amqp.Close(); err != nil {
		a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
	}
}
