package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/warekit/warehouse-layout/pkg/logger"
)

// EventPublisher is the publishing contract the usecases depend on.
// Publisher implements it against Kafka; NopPublisher implements it for
// tests and broker-less deployments.
type EventPublisher interface {
	PublishTemplateApplied(ctx context.Context, event TemplateAppliedEvent) error
	PublishLocationsGenerated(ctx context.Context, event LocationsGeneratedEvent) error
}

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishTemplateApplied publishes a template applied event with tracing
func (p *Publisher) PublishTemplateApplied(ctx context.Context, event TemplateAppliedEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.template_applied",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicTemplateApplied),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", EventTypeTemplateApplied),
			attribute.Int64("template.id", int64(event.TemplateID)),
			attribute.String("warehouse.id", event.WarehouseID),
		),
	)
	defer span.End()

	if event.EventID == "" {
		event.EventID = fmt.Sprintf("evt_%d", time.Now().UnixNano())
	}
	event.EventType = EventTypeTemplateApplied
	event.Timestamp = time.Now()

	span.SetAttributes(attribute.String("event.id", event.EventID))

	key := fmt.Sprintf("template_%d", event.TemplateID)
	partition, offset, err := p.send(ctx, span, TopicTemplateApplied, EventTypeTemplateApplied, event.EventID, key, event)
	if err != nil {
		logger.Logger.Error().
			Err(err).
			Str("topic", TopicTemplateApplied).
			Uint("template_id", event.TemplateID).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish event")
		return err
	}

	logger.Logger.Info().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("topic", TopicTemplateApplied).
		Int32("partition", partition).
		Int64("offset", offset).
		Uint("template_id", event.TemplateID).
		Str("warehouse_id", event.WarehouseID).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Template applied event published")

	return nil
}

// PublishLocationsGenerated publishes a locations generated event with tracing
func (p *Publisher) PublishLocationsGenerated(ctx context.Context, event LocationsGeneratedEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.locations_generated",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicLocationsGenerated),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", EventTypeLocationsGenerated),
			attribute.String("warehouse.id", event.WarehouseID),
			attribute.Int("locations.storage_count", event.StorageCount),
		),
	)
	defer span.End()

	if event.EventID == "" {
		event.EventID = fmt.Sprintf("evt_%d", time.Now().UnixNano())
	}
	event.EventType = EventTypeLocationsGenerated
	event.Timestamp = time.Now()

	span.SetAttributes(attribute.String("event.id", event.EventID))

	key := "warehouse_" + event.WarehouseID
	partition, offset, err := p.send(ctx, span, TopicLocationsGenerated, EventTypeLocationsGenerated, event.EventID, key, event)
	if err != nil {
		logger.Logger.Error().
			Err(err).
			Str("topic", TopicLocationsGenerated).
			Str("warehouse_id", event.WarehouseID).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish event")
		return err
	}

	logger.Logger.Info().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("topic", TopicLocationsGenerated).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("warehouse_id", event.WarehouseID).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Locations generated event published")

	return nil
}

// send marshals the event, injects trace headers and produces the message.
func (p *Publisher) send(ctx context.Context, span trace.Span, topic, eventType, eventID, key string, event interface{}) (int32, int64, error) {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return 0, 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(k),
			Value: []byte(v),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		return 0, 0, fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")
	return partition, offset, nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NopPublisher drops all events. Used when no broker is configured and
// in tests.
type NopPublisher struct{}

func (NopPublisher) PublishTemplateApplied(ctx context.Context, event TemplateAppliedEvent) error {
	return nil
}

func (NopPublisher) PublishLocationsGenerated(ctx context.Context, event LocationsGeneratedEvent) error {
	return nil
}
