package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"hotel/config"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const writeTimeout = 5 * time.Second

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// Publisher sends JSON-encoded messages to the configured topic.
type Publisher interface {
	Publish(ctx context.Context, messages ...Message) error
	Close() error
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
	Close() error
}

type publisherImpl struct {
	topic  string
	writer writer
}

// New returns a no-op publisher unless KAFKA_ENABLE is set.
func New(cfg *config.Config) Publisher {
	if !cfg.Kafka.Enable || len(cfg.Kafka.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, events will not be published")

		return NoopPublisher{}
	}

	transport := &kafkaGo.Transport{}
	if cfg.Kafka.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: cfg.Kafka.SASL.Username,
			Password: cfg.Kafka.SASL.Password,
		}
	}

	log.Info().
		Strs("brokers", cfg.Kafka.Brokers).
		Str("topic", cfg.Kafka.Topic).
		Msg("Kafka publisher initialized")

	return &publisherImpl{
		topic: cfg.Kafka.Topic,
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
			Topic:                  cfg.Kafka.Topic,
			Transport:              transport,
			Balancer:               &kafkaGo.Hash{},
			AllowAutoTopicCreation: true,
			WriteTimeout:           writeTimeout,
		},
	}
}

func (p *publisherImpl) Publish(ctx context.Context, messages ...Message) error {
	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", p.topic).Msg("failed to convert message to Kafka message")

			return fmt.Errorf("failed to convert message to Kafka message: %w", err)
		}

		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", p.topic).Msg("failed to send message to Kafka")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", p.topic).Int("count", len(msgs)).Msg("sent messages to Kafka")

	return nil
}

func (p *publisherImpl) Close() error {
	return p.writer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, _ ...Message) error { return nil }

func (NoopPublisher) Close() error { return nil }
