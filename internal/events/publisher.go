// Package events publishes session lifecycle updates to RabbitMQ.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

const exchange = "session_updates"

// Publisher emits session updates on a topic exchange, one routing key per
// session, so consumers can follow a single session's progress.
type Publisher struct {
	conn *amqp.Connection
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}

func (p *Publisher) PublishSessionUpdate(sessionID uuid.UUID, event string) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	update := map[string]any{
		"session_id": sessionID,
		"event":      event,
		"timestamp":  time.Now().UTC(),
	}
	body, err := json.Marshal(update)
	if err != nil {
		return err
	}
	routingKey := fmt.Sprintf("session.%s", sessionID)

	return ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
