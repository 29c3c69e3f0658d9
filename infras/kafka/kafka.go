package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"rkhub/config"
	"rkhub/infras/otel"
	"rkhub/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const writeTimeout = 10 * time.Second

// Event is published as a JSON value under Key. Events sharing a key land on
// the same partition.
type Event struct {
	Key   string
	Value any
}

// Publisher sends domain events. Nothing in this service consumes them.
type Publisher interface {
	Publish(ctx context.Context, topic string, events ...Event) (err error)
}

type publisher struct {
	writer *kafkaGo.Writer
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Publisher {
	transport := &kafkaGo.Transport{}

	if cfg.Kafka.SASL.Username != constant.Empty {
		transport.SASL = plain.Mechanism{
			Username: cfg.Kafka.SASL.Username,
			Password: cfg.Kafka.SASL.Password,
		}
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Bool("enabled", cfg.Kafka.Enable).Msg("Kafka publisher initialized")

	return &publisher{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
			Transport:              transport,
			Balancer:               &kafkaGo.Hash{},
			RequiredAcks:           kafkaGo.RequireOne,
			WriteTimeout:           writeTimeout,
			AllowAutoTopicCreation: true,
		},
		otel: otel,
	}
}

func (p *publisher) Publish(ctx context.Context, topic string, events ...Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"messaging.destination": topic,
		"messaging.batch_size":  len(events),
	})

	msgs, err := encode(topic, events)
	if err != nil {
		return err
	}

	if err = p.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to publish events")

		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("count", len(msgs)).Msg("Events published")

	return nil
}

// encode turns events into kafka messages addressed to topic.
func encode(topic string, events []Event) ([]kafkaGo.Message, error) {
	msgs := make([]kafkaGo.Message, 0, len(events))

	for _, event := range events {
		value, err := json.Marshal(event.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode event %q: %w", event.Key, err)
		}

		msgs = append(msgs, kafkaGo.Message{
			Topic: topic,
			Key:   []byte(event.Key),
			Value: value,
			Headers: []kafkaGo.Header{
				{Key: constant.RequestHeaderContentType, Value: []byte(constant.ContentTypeJSON)},
			},
		})
	}

	return msgs, nil
}
