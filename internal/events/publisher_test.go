package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"freedesk/internal/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testEvent() domain.AppointmentEvent {
	return domain.AppointmentEvent{
		ID:            "4f1c2a8e-0000-4000-8000-000000000001",
		Type:          domain.EventAppointmentRequested,
		AppointmentID: 17,
		ClientID:      3,
		Date:          "2025-03-03",
		StartTime:     domain.NewClock(9, 0),
		EndTime:       domain.NewClock(9, 30),
		Status:        domain.AppointmentStatusPending,
		OccurredAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	publisher := newKafkaPublisher(writer, zap.NewNop())

	require.NoError(t, publisher.Publish(context.Background(), testEvent()))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "17", string(msg.Key))
	assert.Equal(t, "4f1c2a8e-0000-4000-8000-000000000001", HeaderValue(msg.Headers, HeaderEventID))
	assert.Equal(t, "appointment.requested", HeaderValue(msg.Headers, HeaderEventType))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "09:00", payload["start_time"])
	assert.Equal(t, "pending", payload["status"])

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	boom := errors.New("leader not available")
	publisher := newKafkaPublisher(&fakeWriter{err: boom}, zap.NewNop())

	err := publisher.Publish(context.Background(), testEvent())
	assert.ErrorIs(t, err, boom)
}

func TestNewKafkaPublisher_NoBrokers(t *testing.T) {
	publisher := NewKafkaPublisher(nil, "appointments", zap.NewNop())
	assert.IsType(t, Noop{}, publisher)
	assert.NoError(t, publisher.Publish(context.Background(), testEvent()))
}

func TestInjectTraceHeaders(t *testing.T) {
	previous := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(previous) })

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := trace.ContextWithRemoteSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	}))

	headers := InjectTraceHeaders(ctx, []kafka.Header{{Key: HeaderEventID, Value: []byte("e1")}})

	assert.Equal(t, "e1", HeaderValue(headers, HeaderEventID))
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", HeaderValue(headers, "traceparent"))

	extracted := trace.SpanContextFromContext(ExtractTraceContext(context.Background(), kafka.Message{Headers: headers}))
	assert.Equal(t, traceID, extracted.TraceID())
}

func TestHeaderCarrier_SetOverwrites(t *testing.T) {
	carrier := &headerCarrier{headers: []kafka.Header{{Key: "traceparent", Value: []byte("old")}}}
	carrier.Set("traceparent", "new")
	carrier.Set("tracestate", "k=v")

	assert.Len(t, carrier.headers, 2)
	assert.Equal(t, "new", carrier.Get("traceparent"))
	assert.ElementsMatch(t, []string{"traceparent", "tracestate"}, carrier.Keys())
}
