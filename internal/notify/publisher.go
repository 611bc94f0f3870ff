package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jonathan/admission-advisor/internal/types"
	"github.com/streadway/amqp"
)

// Event routing.
const (
	Exchange               = "admissions"
	RoutingKeySubmitted    = "application.submitted"
	EventApplicationSubmit = "application_submitted"
)

// Publisher announces submitted applications.
type Publisher interface {
	PublishSubmitted(ctx context.Context, app *types.Application) error
}

// SubmittedEvent is the message body published for each new application.
type SubmittedEvent struct {
	Type          string    `json:"type"`
	ApplicationID string    `json:"application_id"`
	ReferenceID   string    `json:"reference_id"`
	College       string    `json:"college"`
	CourseApplied string    `json:"course_applied"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// NewSubmittedEvent builds the event for app. Contact details are left out.
func NewSubmittedEvent(app *types.Application) SubmittedEvent {
	return SubmittedEvent{
		Type:          EventApplicationSubmit,
		ApplicationID: app.ID.String(),
		ReferenceID:   app.ReferenceID,
		College:       app.College,
		CourseApplied: app.CourseApplied,
		SubmittedAt:   app.CreatedAt,
	}
}

// AMQPPublisher publishes to a topic exchange on RabbitMQ.
type AMQPPublisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
}

// DialAMQP connects to RabbitMQ and declares the admissions exchange.
func DialAMQP(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", Exchange, err)
	}
	return &AMQPPublisher{conn: conn}, nil
}

// PublishSubmitted publishes an application.submitted event.
func (p *AMQPPublisher) PublishSubmitted(_ context.Context, app *types.Application) error {
	body, err := json.Marshal(NewSubmittedEvent(app))
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	return ch.Publish(
		Exchange,
		RoutingKeySubmitted,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    app.ID.String(),
			Timestamp:    app.CreatedAt,
			Body:         body,
		},
	)
}

// Close closes the connection.
func (p *AMQPPublisher) Close() error {
	return p.conn.Close()
}
