package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher hands one notification to the delivery side. Implementations
// must be safe for sequential reuse by the dispatcher.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
	Close() error
}

// AMQPPublisher publishes notifications to a topic exchange, routed by
// channel (e.g. notify.whatsapp, notify.in_app). Downstream senders bind
// their own queues; delivery itself is outside this service.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

type notificationMessage struct {
	ID            string         `json:"id"`
	ClinicID      string         `json:"clinic_id"`
	Type          Type           `json:"type"`
	Channel       Channel        `json:"channel"`
	Recipient     string         `json:"recipient"`
	TemplateCode  string         `json:"template_code,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"`
	AppointmentID string         `json:"appointment_id,omitempty"`
	QueuedAt      time.Time      `json:"queued_at"`
}

func (p *AMQPPublisher) Publish(ctx context.Context, n Notification) error {
	msg := notificationMessage{
		ID:           n.ID.String(),
		ClinicID:     n.ClinicID.String(),
		Type:         n.Type,
		Channel:      n.Channel,
		Recipient:    n.Recipient,
		TemplateCode: n.TemplateCode,
		Payload:      n.Payload,
		QueuedAt:     n.CreatedAt,
	}
	if n.AppointmentID != nil {
		msg.AppointmentID = n.AppointmentID.String()
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification message: %w", err)
	}

	routingKey := "notify." + string(n.Channel)
	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    n.ID.String(),
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish notification %s: %w", n.ID, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
