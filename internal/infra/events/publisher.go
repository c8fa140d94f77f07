package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase"

	amqp "github.com/rabbitmq/amqp091-go"
)

const queueName = "reservation.events"

// AMQPPublisher delivers reservation events to a durable queue. Publishing
// is best-effort; a broker outage must not fail the booking path.
type AMQPPublisher struct {
	ch       *amqp.Channel
	exchange string
}

// NewPublisher returns an AMQP-backed publisher, or a no-op one when no
// broker URL is configured.
func NewPublisher(cfg config.AMQPConfig) (usecase.EventPublisher, func(), error) {
	if cfg.URL == "" {
		slog.Info("event publishing disabled: no AMQP URL configured")
		return NopPublisher{}, func() {}, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to connect to AMQP broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "failed to open AMQP channel")
	}

	if cfg.Exchange != "" {
		if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
			_ = conn.Close()
			return nil, nil, errs.Wrap(err, "failed to declare AMQP exchange")
		}
	} else {
		if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
			_ = conn.Close()
			return nil, nil, errs.Wrap(err, "failed to declare AMQP queue")
		}
	}

	cleanup := func() {
		if err := ch.Close(); err != nil {
			slog.Warn("failed to close AMQP channel", "error", err)
		}
		if err := conn.Close(); err != nil {
			slog.Warn("failed to close AMQP connection", "error", err)
		}
	}

	return &AMQPPublisher{ch: ch, exchange: cfg.Exchange}, cleanup, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event usecase.ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal reservation event")
	}

	routingKey := queueName
	if p.exchange != "" {
		routingKey = event.Type
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return errs.Wrap(err, "failed to publish reservation event")
	}
	return nil
}

// NopPublisher drops events. Used when no broker is configured and in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, event usecase.ReservationEvent) error {
	slog.Debug("dropping reservation event: publishing disabled", "type", event.Type)
	return nil
}
