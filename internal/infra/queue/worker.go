package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CRMClient is the contract for pushing a captured lead downstream.
type CRMClient interface {
	PushLead(ctx context.Context, payload LeadCapturedPayload) error
}

type Worker struct {
	Channel *amqp.Channel
	CRM     CRMClient
}

func NewWorker(ch *amqp.Channel, crm CRMClient) *Worker {
	return &Worker{
		Channel: ch,
		CRM:     crm,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack off, ack manually
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("[WORKER] failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCapturedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] invalid JSON, dropping message: %s", err)
				// Malformed message. Reject without requeue so it dead-letters.
				d.Nack(false, false)
				continue
			}

			log.Printf("[WORKER] syncing lead %s (%s) to CRM", payload.Email, payload.Industry)

			if err := w.ProcessMessage(context.Background(), payload); err != nil {
				log.Printf("[WORKER] CRM sync failed: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf("[WORKER] consuming queue '%s'", queueName)
	<-forever
}

func (w *Worker) ProcessMessage(ctx context.Context, payload LeadCapturedPayload) error {
	if w.CRM == nil {
		// No CRM configured. Ack and move on, there is nowhere to sync to.
		return nil
	}
	return w.CRM.PushLead(ctx, payload)
}
