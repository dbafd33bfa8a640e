package kafka

import "context"

// RequestFunc may take information from a batch and put it into a
// request context. RequestFunc are executed prior to decoding the request.
type RequestFunc func(ctx context.Context, batch *Batch) context.Context

// ConsumerResponseFunc may take information from a request context and the
// endpoint response. ConsumerResponseFunc are only executed after invoking
// the endpoint successfully.
type ConsumerResponseFunc func(ctx context.Context, response any) context.Context

// ConsumerFinalizerFunc can be used to perform work at the end of batch processing,
// after the response has been constructed.
type ConsumerFinalizerFunc func(ctx context.Context, batch *Batch, err error)
