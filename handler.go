package kafka

import "context"

// Handler handles a single Kafka message. Producers and publishers implement it.
type Handler interface {
	HandleMessage(ctx context.Context, msg *Message) error
}

// HandlerFunc type is an adapter to allow the use of ordinary
// functions as Handler.
type HandlerFunc func(ctx context.Context, msg *Message) error

func (hf HandlerFunc) HandleMessage(ctx context.Context, msg *Message) error {
	return hf(ctx, msg)
}

// BatchHandler handles a lazily decoded batch of records.
type BatchHandler interface {
	HandleBatch(ctx context.Context, batch *Batch) error
}

// BatchHandlerFunc type is an adapter to allow the use of ordinary
// functions as BatchHandler.
type BatchHandlerFunc func(ctx context.Context, batch *Batch) error

func (hf BatchHandlerFunc) HandleBatch(ctx context.Context, batch *Batch) error {
	return hf(ctx, batch)
}

// MessagesHandler receives raw fetched messages from a transport adapter.
// Only the first size messages of buf are valid; buf is reused after return.
type MessagesHandler interface {
	HandleMessages(ctx context.Context, topic Topic, buf []*Message, size int) error
}
