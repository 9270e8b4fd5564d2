package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationSender is what the worker needs from the mail layer.
type NotificationSender interface {
	SendCardNotification(to, responsibleName string, payload CardEventPayload) error
}

// ResponsibleResolver turns the responsible user id on a payload into a
// deliverable address.
type ResponsibleResolver interface {
	EmailFor(userID string) (address, name string, ok bool)
}

type Worker struct {
	Channel  *amqp.Channel
	Sender   NotificationSender
	Resolver ResponsibleResolver
}

func NewWorker(ch *amqp.Channel, sender NotificationSender, resolver ResponsibleResolver) *Worker {
	return &Worker{Channel: ch, Sender: sender, Resolver: resolver}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("rabbitmq consumer registration failed: %s", err)
	}

	for d := range msgs {
		var payload CardEventPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			log.Printf("[worker] malformed payload, sending to DLQ: %s", err)
			// Poison message: reject without requeue so the queue keeps moving.
			d.Nack(false, false)
			continue
		}

		if err := w.handle(payload); err != nil {
			log.Printf("[worker] notification failed for card %s: %s", payload.CardID, err)
			d.Nack(false, false)
			continue
		}

		d.Ack(false)
	}
}

func (w *Worker) handle(payload CardEventPayload) error {
	address, name, ok := w.Resolver.EmailFor(payload.Responsible)
	if !ok {
		// Responsible without an address: nothing to deliver, not an error.
		log.Printf("[worker] no address for user %s, dropping %s", payload.Responsible, payload.Event)
		return nil
	}
	return w.Sender.SendCardNotification(address, name, payload)
}
