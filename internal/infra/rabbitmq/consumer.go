package rabbitmq

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

// Consumer simulates the warehouse side of the bus: it binds a queue to a
// topic and logs every message it receives. Nothing downstream depends on
// it acting on the events.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	topic   string
}

func NewConsumer(amqpURL, exchange, queue, topic string) (*Consumer, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %v", err)
	}

	err = channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %v", err)
	}

	q, err := channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %v", err)
	}

	if err := channel.QueueBind(q.Name, topic, exchange, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %v", err)
	}

	return &Consumer{
		conn:    conn,
		channel: channel,
		queue:   q.Name,
		topic:   topic,
	}, nil
}

// Run consumes until the context is cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.channel.Consume(c.queue, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %v", err)
	}

	log.Info().Str("queue", c.queue).Str("topic", c.topic).Msg("warehouse consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			log.Info().
				Str("topic", c.topic).
				Str("message", string(d.Body)).
				Msg("warehouse received order event, preparing item for shipment")
		}
	}
}

func (c *Consumer) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
