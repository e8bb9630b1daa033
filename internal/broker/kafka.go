package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Shriramtantry/task-manager/internal/logger"
	"github.com/Shriramtantry/task-manager/internal/models"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ActivityPublisher forwards activity entries to a Kafka topic.
type ActivityPublisher struct {
	w   messageWriter
	log *logger.Logger
}

// NewKafkaWriter builds an async writer; delivery failures are reported
// through the completion callback instead of the request path.
func NewKafkaWriter(brokers []string, topic string, log *logger.Logger) *kafka.Writer {
	if log == nil {
		log = logger.Nop()
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				log.Warnw("kafka_delivery_failed", "err", err, "topic", topic, "messages", len(msgs))
			}
		},
	}
}

func NewActivityPublisher(w messageWriter, log *logger.Logger) *ActivityPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &ActivityPublisher{w: w, log: log}
}

// Publish sends a keyed by type and id, e.g. "activity.TASK_CREATED.<uuid>".
func (p *ActivityPublisher) Publish(ctx context.Context, a models.Activity) error {
	value, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal activity %s: %w", a.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("activity.%s.%s", a.Type, a.ID)),
		Value: value,
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write activity %s: %w", a.ID, err)
	}
	return nil
}

// Close flushes pending messages.
func (p *ActivityPublisher) Close() error {
	return p.w.Close()
}
