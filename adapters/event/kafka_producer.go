package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/campus-connect/internal/application/service"
	"github.com/khoahotran/campus-connect/internal/config"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

const (
	TopicMessageEvents = "message.events"
)

type KafkaProducerClient struct {
	MessageEventsWriter *kafka.Writer
	logger              logger.Logger
}

var _ service.MessageEventPublisher = (*KafkaProducerClient)(nil)

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'message.events'
	messageWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicMessageEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		MessageEventsWriter: messageWriter,
		logger:              log,
	}, nil
}

// PublishMessageEvent keys by message id so events for one message stay ordered.
func (c *KafkaProducerClient) PublishMessageEvent(ctx context.Context, payload service.MessageEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message event: %w", err)
	}
	err = c.MessageEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.MessageID.String()),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", TopicMessageEvents, err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.MessageEventsWriter != nil {
		if err := c.MessageEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
