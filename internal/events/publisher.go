package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher emits stock events. Publishing is best effort: a failed publish
// never fails the stock mutation that produced the event.
type Publisher interface {
	PublishStockEvent(ctx context.Context, event StockEvent)
	Close() error
}

// KafkaPublisher writes stock events to a Kafka topic, keyed by product id
// so events for one product stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a Kafka-backed stock event publisher.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	return &KafkaPublisher{writer: writer, logger: logger}
}

// PublishStockEvent marshals and writes the event. Failures are logged and
// swallowed.
func (p *KafkaPublisher) PublishStockEvent(ctx context.Context, event StockEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal stock event",
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.ProductID),
		Value: payload,
		Time:  event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish stock event",
			zap.String("type", string(event.Type)),
			zap.String("product_id", event.ProductID),
			zap.Error(err),
		)
		return
	}

	p.logger.Debug("Published stock event",
		zap.String("type", string(event.Type)),
		zap.String("product_id", event.ProductID),
		zap.Int("quantity", event.Quantity),
	)
}

// Close closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards all events. Used when the event stream is disabled.
type NopPublisher struct{}

func NewNopPublisher() *NopPublisher { return &NopPublisher{} }

func (*NopPublisher) PublishStockEvent(context.Context, StockEvent) {}

func (*NopPublisher) Close() error { return nil }
