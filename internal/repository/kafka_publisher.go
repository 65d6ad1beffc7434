package repository

import (
	"context"
	"fmt"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	"MarketPulse/pkg/kafka"
)

// KafkaPublisher emits ranked recommendations to a Kafka topic, keyed
// by symbol so per-symbol ordering survives partitioning.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaPublisher wraps an existing producer.
func NewKafkaPublisher(producer *kafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// Publish writes the batch in one producer call.
func (p *KafkaPublisher) Publish(ctx context.Context, recs []models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(recs))
	for _, rec := range recs {
		msgs = append(msgs, kafka.Message{Key: []byte(rec.Symbol), Value: rec})
	}
	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		return fmt.Errorf("publish recommendations: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

var _ drepo.Publisher = (*KafkaPublisher)(nil)
