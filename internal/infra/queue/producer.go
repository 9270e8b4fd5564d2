package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventCardMoved            = "card.moved"
	EventRegistrationReviewed = "card.registration_reviewed"
)

// CardEventPayload rides the notification queue after a commit. It is
// informational only; consumers must tolerate at-least-once delivery.
type CardEventPayload struct {
	Event       string `json:"event"`
	CardID      string `json:"card_id"`
	Pipeline    string `json:"pipeline"`
	FromStage   string `json:"from_stage,omitempty"`
	ToStage     string `json:"to_stage,omitempty"`
	Responsible string `json:"responsible"`
	DentistName string `json:"dentist_name"`
	Decision    string `json:"decision,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishCardEvent(ctx context.Context, payload CardEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal card event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish card event: %w", err)
	}

	return nil
}
