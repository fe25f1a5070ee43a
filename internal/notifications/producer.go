package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"cinebook/internal/shared/config"
)

// Producer publishes booking lifecycle events.
type Producer interface {
	Publish(ctx context.Context, event *BookingEvent) error
	Close() error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer builds a sarama sync producer. When Kafka is disabled in
// config a no-op producer is returned so the booking flow never depends on
// a broker being up.
func NewProducer(cfg *config.Config) (Producer, error) {
	if !cfg.Kafka.Enabled {
		slog.Info("kafka disabled, booking events will not be published")
		return &noopProducer{}, nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &kafkaProducer{
		producer: producer,
		topic:    cfg.Kafka.NotificationTopic,
	}, nil
}

func (p *kafkaProducer) Publish(ctx context.Context, event *BookingEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.CustomerID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	slog.Debug("booking event published",
		"type", event.Type,
		"session_id", event.SessionID,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.producer.Close()
}

type noopProducer struct{}

func (*noopProducer) Publish(ctx context.Context, event *BookingEvent) error {
	return nil
}

func (*noopProducer) Close() error {
	return nil
}
