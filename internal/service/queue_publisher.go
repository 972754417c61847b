// Package service holds outbound integrations used by handlers.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/logger"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/queue"
)

// Publisher sends lead events to RabbitMQ.  Every call dials, declares the
// queue and publishes one persistent message.  Errors are logged and
// returned; callers treat them as non-fatal.
type Publisher struct {
	url     string
	enabled bool
}

// NewPublisher returns a publisher; when enabled is false Publish is a no-op.
func NewPublisher(url string, enabled bool) *Publisher {
	return &Publisher{url: url, enabled: enabled}
}

// PublishLead publishes ev to the lead.submitted queue.
func (p *Publisher) PublishLead(ctx context.Context, ev queue.LeadSubmittedEvent) error {
	if p == nil || !p.enabled {
		return nil
	}
	log := logger.Get().With(zap.String("queue", queue.LeadSubmittedQueue), zap.String("lead_id", ev.ID))

	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.LeadSubmittedQueue, // name
		true,                     // durable
		false,                    // autoDelete
		false,                    // exclusive
		false,                    // noWait
		nil,                      // args
	); err != nil {
		log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.LeadSubmittedQueue, false, false, pub); err != nil {
		log.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	return nil
}
