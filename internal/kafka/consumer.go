package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

// ReadAuditEvent blocks until the next event arrives or ctx is canceled.
func (c *Consumer) ReadAuditEvent(ctx context.Context) (AuditEvent, error) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return AuditEvent{}, fmt.Errorf("failed to read message: %w", err)
	}

	var event AuditEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return AuditEvent{}, fmt.Errorf("failed to unmarshal audit event: %w", err)
	}
	return event, nil
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
