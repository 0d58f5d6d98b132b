package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/aurumx/reward-ledger/internal/config"
)

// GenerationReqMessageProducer publishes transaction generation requests from
// the API to the worker
type GenerationReqMessageProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewGenerationReqMessageProducer creates the API-side producer and ensures the topic exists
func NewGenerationReqMessageProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*GenerationReqMessageProducer, error) {
	if cfg.GenerationTopic == "" {
		return nil, fmt.Errorf("kafka generation topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for generation producer: %w", err)
	}
	defer conn.Close()

	err = ensureTopic(conn, cfg.GenerationTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure generation topic %s exists: %w", cfg.GenerationTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.GenerationTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Using async for high throughput
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.GenerationTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.GenerationTopic, "count", len(messages))
			}
		},
	}

	return &GenerationReqMessageProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.GenerationTopic,
	}, nil
}

func (p *GenerationReqMessageProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message value for generation producer: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish generation request",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published generation request",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *GenerationReqMessageProducer) Close() error {
	p.logger.Info("Closing generation request Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close generation kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
