package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

// QueueOrderPlaced carries order.placed events from checkout to the
// notification dispatcher. Durable, so a placed order survives a broker
// restart and notifications are delivered at least once.
const QueueOrderPlaced = "order_placed_queue"

// OrderPlacedEvent is the message published after the checkout
// transaction commits. It only names the order; the consumer re-reads
// the order from the database so it always fans out from committed state.
type OrderPlacedEvent struct {
	OrderID  string    `json:"order_id"`
	UserID   string    `json:"user_id"`
	PlacedAt time.Time `json:"placed_at"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the
// order-placed queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		QueueOrderPlaced,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", QueueOrderPlaced, err)
	}

	log.Printf("RabbitMQ client connected, %s declared", QueueOrderPlaced)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ client: %v", errs)
	}
	return nil
}

// PublishOrderPlaced publishes an order.placed event as a persistent
// JSON message on the order-placed queue.
func (c *Client) PublishOrderPlaced(event OrderPlacedEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order placed event: %w", err)
	}

	err = c.channel.Publish(
		"",               // default exchange
		QueueOrderPlaced, // routing key: the queue name
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish order placed event: %w", err)
	}

	log.Printf(" [x] Published order placed event for order %s", event.OrderID)
	return nil
}

// ConsumeOrderPlaced starts a goroutine delivering order.placed events
// to the handler. A handler error nacks the message back onto the queue;
// the handler owns its own retry budget so a poison message does not
// loop forever.
func (c *Client) ConsumeOrderPlaced(handler func(event OrderPlacedEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		QueueOrderPlaced,
		"",    // consumer tag
		false, // auto-ack: manual ack after the handler succeeds
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			var event OrderPlacedEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.Printf("Dropping malformed order placed event (tag %d): %v", msg.DeliveryTag, err)
				if ackErr := msg.Ack(false); ackErr != nil {
					log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
				}
				continue
			}
			if err := handler(event); err != nil {
				log.Printf("Error processing order placed event for order %s: %v", event.OrderID, err)
				if nackErr := msg.Nack(false, true); nackErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
			}
		}
	}()

	return nil
}
