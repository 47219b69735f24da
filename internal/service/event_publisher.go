package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
	"github.com/SimplyHuzu/body-works-gym-rep/pkg/kafka"
)

// EventPublisher publishes reservation lifecycle events for downstream
// consumers. Publishing is best-effort: a failed publish never rolls back a
// committed reservation.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, reservation *domain.Reservation) error
	PublishReservationCancelled(ctx context.Context, reservation *domain.Reservation) error
	Close() error
}

// ReservationEvent is the wire envelope for reservation events
type ReservationEvent struct {
	EventID     string                      `json:"event_id"`
	EventType   domain.ReservationEventType `json:"event_type"`
	OccurredAt  time.Time                   `json:"occurred_at"`
	Reservation *domain.Reservation         `json:"reservation"`
}

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer *kafka.Producer
	topic    string
}

// EventPublisherConfig contains configuration for the event publisher
type EventPublisherConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(ctx context.Context, cfg *EventPublisherConfig) (*KafkaEventPublisher, error) {
	if cfg == nil || len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = "reservation-events"
	}

	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:       cfg.Brokers,
		ClientID:      cfg.ClientID,
		MaxRetries:    3,
		RetryInterval: 2 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &KafkaEventPublisher{producer: producer, topic: topic}, nil
}

// PublishReservationConfirmed publishes a reservation confirmed event
func (p *KafkaEventPublisher) PublishReservationConfirmed(ctx context.Context, reservation *domain.Reservation) error {
	return p.publish(ctx, domain.ReservationEventConfirmed, reservation)
}

// PublishReservationCancelled publishes a reservation cancelled event
func (p *KafkaEventPublisher) PublishReservationCancelled(ctx context.Context, reservation *domain.Reservation) error {
	return p.publish(ctx, domain.ReservationEventCancelled, reservation)
}

// Close closes the underlying producer
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		p.producer.Close()
	}
	return nil
}

func (p *KafkaEventPublisher) publish(ctx context.Context, eventType domain.ReservationEventType, reservation *domain.Reservation) error {
	event := ReservationEvent{
		EventID:     uuid.New().String(),
		EventType:   eventType,
		OccurredAt:  time.Now(),
		Reservation: reservation,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Key by resource so per-resource ordering survives partitioning
	return p.producer.Publish(ctx, p.topic, []byte(reservation.ResourceID), value)
}
