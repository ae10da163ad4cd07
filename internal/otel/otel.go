package otel

import (
	"context"
	"sync"

	eventbus "github.com/fernql/fernql/internal/eventbus"
	events "github.com/fernql/fernql/internal/events"
	reqid "github.com/fernql/fernql/internal/reqid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("fernql")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer    trace.Tracer
	httpSpans sync.Map // rid -> trace.Span
	opSpans   sync.Map // rid -> trace.Span
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.HTTPStart) {
		rid, _ := reqid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "http.request")
		span.SetAttributes(
			semconv.HTTPMethodKey.String(e.Request.Method),
			attribute.String("http.target", e.Request.URL.Path),
		)
		s.httpSpans.Store(rid, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.httpSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(semconv.HTTPStatusCodeKey.Int(e.Status))
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e events.OperationStart) {
		rid, _ := reqid.FromContext(ctx)
		parent := ctx
		if v, ok := s.httpSpans.Load(rid); ok {
			parent = trace.ContextWithSpan(ctx, v.(trace.Span))
		}
		_, span := s.tracer.Start(parent, "graphql.operation")
		span.SetAttributes(
			attribute.String("graphql.operation.name", e.OperationName),
			attribute.String("graphql.operation.type", e.OperationType),
		)
		s.opSpans.Store(rid, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.OperationFinish) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.opSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(
			attribute.Int("graphql.error_count", len(e.Errors)),
			attribute.Bool("graphql.rejected", e.Rejected),
		)
		span.End()
	})

	// Batch fetches and mutations complete before their event fires, so
	// they show up as events on the operation span rather than child spans.
	eventbus.Subscribe(func(ctx context.Context, e events.BatchFetch) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.opSpans.Load(rid)
		if !ok {
			return
		}
		attrs := []attribute.KeyValue{
			attribute.String("fetch.entity", e.Entity),
			attribute.Int("fetch.key_count", e.Keys),
			attribute.Int("fetch.found", e.Found),
			attribute.Int64("fetch.duration_us", e.Duration.Microseconds()),
		}
		if e.Err != nil {
			attrs = append(attrs, attribute.String("fetch.error", e.Err.Error()))
		}
		v.(trace.Span).AddEvent("store.batch_fetch", trace.WithAttributes(attrs...))
	})

	eventbus.Subscribe(func(ctx context.Context, e events.Mutation) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.opSpans.Load(rid)
		if !ok {
			return
		}
		attrs := []attribute.KeyValue{
			attribute.String("mutation.field", e.Field),
			attribute.Int64("mutation.duration_us", e.Duration.Microseconds()),
		}
		if e.Err != nil {
			attrs = append(attrs, attribute.String("mutation.error", e.Err.Error()))
		}
		v.(trace.Span).AddEvent("store.mutation", trace.WithAttributes(attrs...))
	})
}
