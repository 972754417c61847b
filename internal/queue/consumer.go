package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/email"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/logger"
)

// Consumer reads lead.submitted and emails staff about each new lead.
type Consumer struct {
	URL    string
	Sender email.Sender
	To     string // staff inbox; when empty leads are only logged
}

// Run connects, consumes and reconnects with backoff until ctx is done.
// Messages that fail are rejected without requeue.
func (c *Consumer) Run(ctx context.Context) error {
	log := logger.Get().With(zap.String("queue", LeadSubmittedQueue))
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			log.Warn("lead-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("lead-consumer: consume loop ended; reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		logger.Get().Warn("lead-consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(LeadSubmittedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(LeadSubmittedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(ctx, d.Body); err != nil {
				logger.Get().Error("lead-consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, body []byte) error {
	var ev LeadSubmittedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	log := logger.Get().With(zap.String("kind", ev.Kind), zap.String("lead_id", ev.ID))
	if c.To == "" || c.Sender == nil {
		log.Info("lead received; no staff inbox configured")
		return nil
	}

	subject, text, err := email.RenderNewLead(email.NewLead{
		Kind:         ev.Kind,
		ID:           ev.ID,
		FormType:     ev.FormType,
		Name:         ev.Name,
		Email:        ev.Email,
		Phone:        ev.Phone,
		ServiceTypes: ev.ServiceTypes,
		SubmittedAt:  ev.SubmittedAt,
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	id, err := c.Sender.Send(ctx, email.Message{To: []string{c.To}, Subject: subject, Text: text})
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	log.Info("lead alert sent", zap.String("message_id", id))
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
