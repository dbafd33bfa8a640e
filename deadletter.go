package kafka

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/go-kit/kit/transport"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Dead letter headers.
const (
	HeaderOriginTopic     = "x-origin-topic"
	HeaderOriginPartition = "x-origin-partition"
	HeaderOriginOffset    = "x-origin-offset"
	HeaderDecodeError     = "x-decode-error"
)

// Publisher sends messages to Kafka.
type Publisher interface {
	Publish(ctx context.Context, message *Message) error
}

// PublisherFunc type is an adapter to allow the use of ordinary
// functions as Publisher.
type PublisherFunc func(ctx context.Context, message *Message) error

func (f PublisherFunc) Publish(ctx context.Context, message *Message) error {
	return f(ctx, message)
}

// NewPublisher adapts a producer handler to Publisher.
func NewPublisher(handler Handler) Publisher {
	return PublisherFunc(handler.HandleMessage)
}

type topicPartition struct {
	topic     Topic
	partition int32
}

// DeadLetter publishes the raw payload of records that failed to decode
// to a separate topic, keeping their origin in headers.
// Offsets at or below the last one published for a partition are skipped.
type DeadLetter struct {
	publisher Publisher
	topic     Topic
	logger    log.Logger
	now       func() time.Time

	mu        sync.Mutex
	published map[topicPartition]int64
}

// DeadLetterOption sets an optional parameter for DeadLetter.
type DeadLetterOption func(*DeadLetter)

// DeadLetterLogger sets the logger used for publish failures.
func DeadLetterLogger(logger log.Logger) DeadLetterOption {
	return func(d *DeadLetter) {
		d.logger = logger
	}
}

// NewDeadLetter creates a dead letter sink publishing to topic.
func NewDeadLetter(publisher Publisher, topic Topic, opts ...DeadLetterOption) *DeadLetter {
	d := &DeadLetter{
		publisher: publisher,
		topic:     topic,
		logger:    log.NewNopLogger(),
		now:       time.Now,
		published: make(map[topicPartition]int64),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = log.With(d.logger, "component", "deadletter", "topic", topic)
	return d
}

// Publish sends a single failed record to the dead letter topic.
func (d *DeadLetter) Publish(ctx context.Context, derr *DecodeError) error {
	msg := &Message{
		Topic:     d.topic,
		Key:       derr.Key,
		Value:     derr.Raw,
		Timestamp: d.now(),
		Headers: []Header{
			{Key: []byte(HeaderOriginTopic), Value: []byte(derr.Topic)},
			{Key: []byte(HeaderOriginPartition), Value: []byte(strconv.FormatInt(int64(derr.Partition), 10))},
			{Key: []byte(HeaderOriginOffset), Value: []byte(strconv.FormatInt(derr.Offset, 10))},
			{Key: []byte(HeaderDecodeError), Value: []byte(derr.Err.Error())},
		},
	}
	return d.publisher.Publish(ctx, msg)
}

// Handle implements transport.ErrorHandler. Every *DecodeError found in err
// is published unless its offset was already published; other errors are ignored.
func (d *DeadLetter) Handle(ctx context.Context, err error) {
	for _, derr := range DecodeErrors(err) {
		tp := topicPartition{topic: derr.Topic, partition: derr.Partition}
		if d.seen(tp, derr.Offset) {
			continue
		}
		if perr := d.Publish(ctx, derr); perr != nil {
			_ = level.Error(d.logger).Log(
				"msg", "publish dead letter",
				"origin", derr.Topic,
				"partition", derr.Partition,
				"offset", derr.Offset,
				"err", perr,
			)
			continue
		}
		d.mark(tp, derr.Offset)
	}
}

func (d *DeadLetter) seen(tp topicPartition, offset int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	last, ok := d.published[tp]
	return ok && offset <= last
}

func (d *DeadLetter) mark(tp topicPartition, offset int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if last, ok := d.published[tp]; !ok || offset > last {
		d.published[tp] = offset
	}
}

var _ transport.ErrorHandler = (*DeadLetter)(nil)
