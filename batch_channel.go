package kafka

import (
	"context"
)

// ChannelOption sets an optional parameter for a batch channel.
type ChannelOption func(*BatchChannel)

// BatchChannel turns raw fetched messages of one topic into a Batch
// and hands it to its handlers in the order they were added.
type BatchChannel struct {
	route         *Route
	handlers      []BatchHandler
	forceCommit   bool
	filters       []FilterFunc
	topicsForJoin []Topic
	batchOpts     []BatchOption
}

func newBatchChannel(topic Topic, opts ...ChannelOption) *BatchChannel {
	batchChannel := &BatchChannel{
		route:    NewRoute(topic, nil),
		handlers: make([]BatchHandler, 0),
	}
	for _, fn := range opts {
		fn(batchChannel)
	}
	return batchChannel
}

// WithDecoder sets the decoder of the channel topic. Defaults to JSON.
func WithDecoder(dec Decoder) ChannelOption {
	return func(ch *BatchChannel) {
		ch.route = NewRoute(ch.route.topic, dec)
	}
}

// WithJoinTopic routes messages of other topics to the channel.
func WithJoinTopic(topic ...Topic) ChannelOption {
	return func(ch *BatchChannel) {
		ch.topicsForJoin = append(ch.topicsForJoin, topic...)
	}
}

// WithFilter keeps only messages with a header accepted by one of the filters.
func WithFilter(filter ...FilterFunc) ChannelOption {
	return func(ch *BatchChannel) {
		ch.filters = append(ch.filters, filter...)
	}
}

// WithForceCommit commits offsets right after every handled batch.
func WithForceCommit() ChannelOption {
	return func(ch *BatchChannel) {
		ch.forceCommit = true
	}
}

// WithSynchronizedRecords builds batches with Synchronized records.
func WithSynchronizedRecords() ChannelOption {
	return func(ch *BatchChannel) {
		ch.batchOpts = append(ch.batchOpts, Synchronized())
	}
}

func (ch *BatchChannel) IsForceCommit() bool {
	return ch.forceCommit
}

// Topic returns the channel topic.
func (ch *BatchChannel) Topic() Topic {
	return ch.route.topic
}

// Route returns the route batches of the channel are built with.
func (ch *BatchChannel) Route() *Route {
	return ch.route
}

// Handlers returns a copy of the channel handlers.
func (ch *BatchChannel) Handlers() []BatchHandler {
	handlers := make([]BatchHandler, len(ch.handlers))
	copy(handlers, ch.handlers)
	return handlers
}

func (ch *BatchChannel) Handler(h BatchHandler) *BatchChannel {
	ch.handlers = append(ch.handlers, h)
	return ch
}

func (ch *BatchChannel) HandlerFunc(h BatchHandlerFunc) *BatchChannel {
	ch.handlers = append(ch.handlers, h)
	return ch
}

func (ch *BatchChannel) joins(topic Topic) bool {
	for _, other := range ch.topicsForJoin {
		if other == topic {
			return true
		}
	}
	return false
}

// HandleMessages builds a batch from the first size messages of buf and
// passes it to every handler. The first handler error stops the chain.
func (ch *BatchChannel) HandleMessages(ctx context.Context, buf []*Message, size int) (err error) {
	if size == 0 {
		return
	}
	buf = buf[:size]

	if len(ch.filters) > 0 {
		filtered := make([]*Message, 0, size)
		for i := 0; i < size; i++ {
			if !match(ch.filters, buf[i]) {
				continue
			}
			filtered = append(filtered, buf[i])
		}
		if len(filtered) == 0 {
			return
		}
		buf = filtered
	}

	batch := NewBatch(ch.route, buf, ch.batchOpts...)
	for i := 0; i < len(ch.handlers); i++ {
		if err = ch.handlers[i].HandleBatch(ctx, batch); err != nil {
			return err
		}
	}
	return
}
