package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dechbar/kpause/internal/events"
	"github.com/segmentio/kafka-go"
)

// Event type header values.
const (
	EventTypeMeasured = "kp.measured"
	EventTypeDeleted  = "kp.deleted"
)

// Publisher announces stored measurements to other systems.
type Publisher interface {
	PublishMeasured(ctx context.Context, evt events.KPMeasured) error
	PublishDeleted(ctx context.Context, evt events.KPDeleted) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishMeasured(context.Context, events.KPMeasured) error { return nil }
func (NoopPublisher) PublishDeleted(context.Context, events.KPDeleted) error   { return nil }
func (NoopPublisher) Close() error                                             { return nil }

// MessageWriter is the subset of *kafka.Writer used by KafkaPublisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON to a single topic, keyed by
// measurement ID so one measurement's events stay ordered.
type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
}

// NewKafkaPublisher creates a synchronous writer for topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	})
}

// NewKafkaPublisherWithWriter wraps an existing writer.
func NewKafkaPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, timeout: 5 * time.Second}
}

func (p *KafkaPublisher) PublishMeasured(ctx context.Context, evt events.KPMeasured) error {
	return p.write(ctx, EventTypeMeasured, evt.MeasurementID, evt)
}

func (p *KafkaPublisher) PublishDeleted(ctx context.Context, evt events.KPDeleted) error {
	return p.write(ctx, EventTypeDeleted, evt.MeasurementID, evt)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) write(ctx context.Context, eventType, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", eventType, err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publishing %s event: %w", eventType, err)
	}
	return nil
}
