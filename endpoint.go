package kafka

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/transport"
)

// BatchEndpoint wraps an endpoint and provides a BatchHandler.
type BatchEndpoint struct {
	e            endpoint.Endpoint
	dec          DecodeBatchFunc
	before       []RequestFunc
	after        []ConsumerResponseFunc
	finalizer    []ConsumerFinalizerFunc
	errorHandler transport.ErrorHandler
}

// EndpointOption sets an optional parameter for a BatchEndpoint.
type EndpointOption func(*BatchEndpoint)

// NewBatchEndpoint constructs a new BatchEndpoint, which implements BatchHandler
// and wraps the provided endpoint. A nil dec defaults to DecodePayloads.
func NewBatchEndpoint(
	e endpoint.Endpoint,
	dec DecodeBatchFunc,
	opts ...EndpointOption,
) *BatchEndpoint {
	if dec == nil {
		dec = DecodePayloads
	}
	c := &BatchEndpoint{
		e:   e,
		dec: dec,
		errorHandler: transport.ErrorHandlerFunc(
			func(ctx context.Context, err error) {}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EndpointBefore functions are executed on the batch before the request is decoded.
func EndpointBefore(before ...RequestFunc) EndpointOption {
	return func(c *BatchEndpoint) {
		c.before = append(c.before, before...)
	}
}

// EndpointAfter functions are executed on the endpoint response.
func EndpointAfter(after ...ConsumerResponseFunc) EndpointOption {
	return func(c *BatchEndpoint) {
		c.after = append(c.after, after...)
	}
}

// EndpointErrorHandler is used to handle non-terminal errors. By default, non-terminal errors
// are ignored. This is intended as a diagnostic measure.
func EndpointErrorHandler(errorHandler transport.ErrorHandler) EndpointOption {
	return func(c *BatchEndpoint) {
		c.errorHandler = errorHandler
	}
}

// EndpointFinalizer is executed at the end of every batch processing.
// By default, no finalizer is registered.
func EndpointFinalizer(f ...ConsumerFinalizerFunc) EndpointOption {
	return func(c *BatchEndpoint) {
		c.finalizer = append(c.finalizer, f...)
	}
}

// HandleBatch decodes the request from the batch and invokes the endpoint.
// Records left in StateDecodeFailed by a successful request decode are
// passed to the error handler one by one.
func (c BatchEndpoint) HandleBatch(ctx context.Context, batch *Batch) (err error) {
	if len(c.finalizer) > 0 {
		defer func() {
			for _, f := range c.finalizer {
				f(ctx, batch, err)
			}
		}()
	}

	for _, f := range c.before {
		ctx = f(ctx, batch)
	}

	request, err := c.dec(ctx, batch)
	if err != nil {
		c.errorHandler.Handle(ctx, err)
		return err
	}
	_ = batch.Each(func(_ int, r *Record) error {
		if rerr := r.Err(); rerr != nil {
			c.errorHandler.Handle(ctx, rerr)
		}
		return nil
	})

	response, err := c.e(ctx, request)
	if err != nil {
		c.errorHandler.Handle(ctx, err)
		return err
	}

	for _, f := range c.after {
		ctx = f(ctx, response)
	}

	return
}

var _ BatchHandler = BatchEndpoint{}
