package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"freedesk/internal/domain"
)

// Publisher emits appointment lifecycle events after the store write succeeded.
type Publisher interface {
	Publish(ctx context.Context, event domain.AppointmentEvent) error
	Close() error
}

type Noop struct{}

func (Noop) Publish(context.Context, domain.AppointmentEvent) error { return nil }

func (Noop) Close() error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

// NewKafkaPublisher returns Noop when no brokers are configured.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) Publisher {
	if len(brokers) == 0 {
		logger.Warn("публикация событий отключена: брокеры kafka не заданы")
		return Noop{}
	}

	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}, logger)
}

func newKafkaPublisher(writer messageWriter, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.AppointmentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка сериализации события: %w", err)
	}

	msg := kafka.Message{
		// Keyed by appointment so one appointment's events stay ordered in a partition.
		Key:   []byte(strconv.FormatInt(event.AppointmentID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(event.ID)},
			{Key: HeaderEventType, Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	}
	msg.Headers = InjectTraceHeaders(ctx, msg.Headers)

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("ошибка отправки события %s: %w", event.Type, err)
	}

	p.logger.Debug("событие опубликовано",
		zap.String("eventID", event.ID),
		zap.String("eventType", string(event.Type)),
		zap.Int64("appointmentID", event.AppointmentID))

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
