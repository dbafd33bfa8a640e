package kafka

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	kitopentracing "github.com/go-kit/kit/tracing/opentracing"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// TraceConsumer returns an endpoint.Middleware that wraps the `next` endpoint.Endpoint in an
// OpenTracing Span called `operationName` with the consumer span.kind tag.
func TraceConsumer(tracer opentracing.Tracer, operationName string, opts ...kitopentracing.EndpointOption) endpoint.Middleware {
	opts = append(opts, kitopentracing.WithTags(map[string]interface{}{
		ext.SpanKindConsumer.Key: ext.SpanKindConsumer.Value,
	}))
	return kitopentracing.TraceEndpoint(tracer, operationName, opts...)
}

// TraceBatch wraps next in a span tagged with the batch topic and size.
// When the handler returns, the span records how many records were decoded.
func TraceBatch(tracer opentracing.Tracer, operationName string, next BatchHandler) BatchHandler {
	return BatchHandlerFunc(func(ctx context.Context, batch *Batch) error {
		var parentCtx opentracing.SpanContext
		if parent := opentracing.SpanFromContext(ctx); parent != nil {
			parentCtx = parent.Context()
		}
		span := tracer.StartSpan(operationName, opentracing.ChildOf(parentCtx))
		defer span.Finish()

		ext.SpanKindConsumer.Set(span)
		ext.MessageBusDestination.Set(span, batch.Topic().String())
		span.SetTag("batch.size", batch.Size())

		err := next.HandleBatch(opentracing.ContextWithSpan(ctx, span), batch)
		span.SetTag("batch.decoded", batch.Decoded())
		if err != nil {
			ext.LogError(span, err)
		}
		return err
	})
}
