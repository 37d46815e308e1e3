package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Declarer описывает часть amqp.Channel, нужная для объявления топологии.
type Declarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

// Topology описывает exchange и очередь для событий загрузки.
type Topology struct {
	Exchange   string
	Queue      string
	RoutingKey string
}

// Declare объявляет durable topic exchange и, если задана, привязанную к нему очередь.
func Declare(ch Declarer, t Topology) error {
	const op = "rabbitmq.Declare"

	if err := ch.ExchangeDeclare(t.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if t.Queue == "" {
		return nil
	}
	if _, err := ch.QueueDeclare(t.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("%s: failed to declare queue %s: %w", op, t.Queue, err)
	}
	if err := ch.QueueBind(t.Queue, t.RoutingKey, t.Exchange, false, nil); err != nil {
		return fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, t.Queue, t.RoutingKey, err)
	}
	return nil
}
