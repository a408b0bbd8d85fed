package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// BackgroundCompletedEvent is emitted when a character answers the last
// step of its faction's questionnaire.
type BackgroundCompletedEvent struct {
	CharacterID uuid.UUID `json:"character_id"`
	UserID      uuid.UUID `json:"user_id"`
	LarpID      uuid.UUID `json:"larp_id"`
	FactionID   uuid.UUID `json:"faction_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// SheetStatusChangedEvent is emitted on every character sheet status
// transition, so organizers can be notified of validations.
type SheetStatusChangedEvent struct {
	CharacterID uuid.UUID `json:"character_id"`
	UserID      uuid.UUID `json:"user_id"`
	LarpID      uuid.UUID `json:"larp_id"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NotificationPublisher defines the interface for publishing domain events
// to the notification queue.
type NotificationPublisher interface {
	PublishBackgroundCompleted(ctx context.Context, event BackgroundCompletedEvent) error
	PublishSheetStatusChanged(ctx context.Context, event SheetStatusChangedEvent) error
}

const (
	eventTypeBackgroundCompleted = "background.completed"
	eventTypeSheetStatusChanged  = "sheet.status_changed"
)

// envelope wraps every published event with its type for routing on the
// consumer side.
type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// rabbitMQPublisher implements NotificationPublisher over a RabbitMQ channel.
type rabbitMQPublisher struct {
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// NewRabbitMQNotificationPublisher opens a channel on the connection and
// declares the durable notification queue. Declaration is idempotent, so
// publisher and consumer can start in any order.
func NewRabbitMQNotificationPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (NotificationPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("notification publisher: failed to open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("notification publisher: failed to declare queue %q: %w", queueName, err)
	}
	return &rabbitMQPublisher{
		channel:   ch,
		queueName: queueName,
		logger:    logger.Named("NotificationPublisher"),
	}, nil
}

func (p *rabbitMQPublisher) PublishBackgroundCompleted(ctx context.Context, event BackgroundCompletedEvent) error {
	return p.publish(ctx, eventTypeBackgroundCompleted, event)
}

func (p *rabbitMQPublisher) PublishSheetStatusChanged(ctx context.Context, event SheetStatusChangedEvent) error {
	return p.publish(ctx, eventTypeSheetStatusChanged, event)
}

func (p *rabbitMQPublisher) publish(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(envelope{Type: eventType, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(publishCtx,
		"",          // default exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish event", zap.String("type", eventType), zap.Error(err))
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	p.logger.Info("Event published", zap.String("type", eventType), zap.String("queue", p.queueName))
	return nil
}
