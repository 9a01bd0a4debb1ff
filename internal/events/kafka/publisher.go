package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/sheikh-saqib/accounts-transfer-service/internal/notification"
)

// DefaultTopic receives transfer notifications when no topic is configured.
const DefaultTopic = "transfer_notifications"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher delivers notifications as JSON messages on a Kafka topic,
// keyed by account ID so each account's notifications stay ordered.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

func (p *Publisher) Deliver(ctx context.Context, n notification.Notification) error {
	data, err := json.Marshal(n.Event())
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.AccountID),
		Value: data,
	}); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ notification.Deliverer = (*Publisher)(nil)
