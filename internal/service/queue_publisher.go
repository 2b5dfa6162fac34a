// Package service provides the RabbitMQ publisher for workshop domain
// events.  Errors are logged and returned so callers can ignore
// failures without interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/repair-workshop/internal/queue"
)

// Publisher publishes domain events to the workshop.events queue.  It
// dials per publish, never panics, and marks messages persistent so
// they survive broker restarts.
type Publisher struct {
	url string
}

// NewPublisher builds a publisher using the broker address from the
// environment.
func NewPublisher() *Publisher {
	return &Publisher{url: q.BrokerURL()}
}

// RepairArchived publishes a repair.archived event.
func (p *Publisher) RepairArchived(ctx context.Context, ev q.RepairArchivedEvent) error {
	return p.publish(ctx, q.EventRepairArchived, ev)
}

// LowStock publishes a stock.low event.
func (p *Publisher) LowStock(ctx context.Context, ev q.LowStockEvent) error {
	return p.publish(ctx, q.EventLowStock, ev)
}

func (p *Publisher) publish(ctx context.Context, eventType string, payload any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.EventsQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}
	body, err := json.Marshal(q.Envelope{Type: eventType, Data: data})
	if err != nil {
		log.Printf("rabbitmq: marshal envelope failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.EventsQueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
