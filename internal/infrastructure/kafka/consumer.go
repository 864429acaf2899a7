package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type MessageHandler func(ctx context.Context, key, value []byte) error

type Consumer struct {
	reader *kafka.Reader
	logger *logrus.Entry
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{
		reader: reader,
		logger: logrus.WithFields(logrus.Fields{"component": "kafka", "topic": topic, "group": groupID}),
	}
}

// Consume runs handler for every message until ctx is cancelled. Handler
// errors are logged and the message is skipped.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.WithError(err).Error("read message")
				continue
			}

			if err := handler(ctx, msg.Key, msg.Value); err != nil {
				c.logger.WithError(err).WithField("offset", msg.Offset).Error("handle message")
			}
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
