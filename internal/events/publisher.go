package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/kinopulse/kinopulse/config"
	"github.com/kinopulse/kinopulse/internal/models"
)

// AggregateEvent is the JSON payload emitted every time a movie aggregate is
// computed, for downstream dashboards and collectors.
type AggregateEvent struct {
	ComputedAt time.Time              `json:"computed_at"`
	Aggregate  *models.MovieAggregate `json:"aggregate"`
}

// Publisher emits computed aggregates to kafka. A nil *Publisher is a valid
// no-op, used when no broker is configured.
type Publisher struct {
	producer *kafka.Producer
	topic    string
}

func NewPublisher(cfg config.Config) (*Publisher, error) {
	if cfg.KafkaBroker == "" {
		return nil, nil
	}

	slog.Info("[Publisher] Initializing Kafka producer...",
		slog.String("broker", cfg.KafkaBroker),
		slog.String("topic", cfg.KafkaAggregatesTopic))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": cfg.KafkaBroker,
		"acks":              "all",
	})
	if err != nil {
		return nil, fmt.Errorf("[Publisher] Failed to create producer: %w", err)
	}

	pub := &Publisher{producer: p, topic: cfg.KafkaAggregatesTopic}
	go pub.drainEvents()
	return pub, nil
}

// drainEvents logs delivery failures; aggregate events are fire-and-forget,
// so a failed delivery costs nothing but the event.
func (p *Publisher) drainEvents() {
	for e := range p.producer.Events() {
		if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
			slog.Warn("[Publisher] Delivery failed",
				slog.String("topic", *m.TopicPartition.Topic),
				slog.String("error", m.TopicPartition.Error.Error()))
		}
	}
}

func (p *Publisher) PublishAggregate(agg *models.MovieAggregate) error {
	if p == nil {
		return nil
	}

	payload, err := json.Marshal(AggregateEvent{ComputedAt: time.Now().UTC(), Aggregate: agg})
	if err != nil {
		return fmt.Errorf("[Publisher] failed to marshal aggregate: %w", err)
	}

	err = p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(strconv.Itoa(agg.MovieID)),
		Value:          payload,
	}, nil)
	if err != nil {
		return fmt.Errorf("[Publisher] failed to produce aggregate event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	slog.Info("[Publisher] Flushing Kafka producer before shutdown...")
	if remaining := p.producer.Flush(5000); remaining > 0 {
		slog.Warn("[Publisher] Not all events were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
}
