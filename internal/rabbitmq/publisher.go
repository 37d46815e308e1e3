package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Channel описывает часть amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// UploadLoaded публикуется после того, как новый файл загружен в хранилище.
type UploadLoaded struct {
	UploadID string    `json:"upload_id"`
	Lines    int       `json:"lines"`
	Users    int       `json:"users"`
	Orders   int       `json:"orders"`
	LoadedAt time.Time `json:"loaded_at"`
}

// PublishMessage сериализует message в JSON и публикует его как persistent-сообщение.
func PublishMessage(ch Channel, exchange string, routingKey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Publisher публикует события загрузки в заданный exchange.
type Publisher struct {
	ch         Channel
	exchange   string
	routingKey string
}

// NewPublisher создаёт Publisher поверх канала.
func NewPublisher(ch Channel, exchange, routingKey string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, routingKey: routingKey}
}

// PublishUploadLoaded публикует событие UploadLoaded.
func (p *Publisher) PublishUploadLoaded(_ context.Context, event UploadLoaded) error {
	return PublishMessage(p.ch, p.exchange, p.routingKey, event)
}
