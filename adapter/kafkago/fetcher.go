package kafkago

import (
	"context"
	"errors"
	"time"

	"github.com/go-kit/kit/transport"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/segmentio/kafka-go"

	lazy "github.com/mmadfox/go-kafka-lazybatch"
)

const (
	defaultBatchSize        = 100
	defaultBatchWaitTimeout = time.Second
)

var (
	// ErrNilReader error returned when creating a fetcher with nil reader argument.
	ErrNilReader = errors.New("kafka/kafkago: reader cannot be nil")
	// ErrNilHandler error returned when creating a fetcher with nil handler argument.
	ErrNilHandler = errors.New("kafka/kafkago: handler cannot be nil")
)

// Reader is implemented by *kafka.Reader created with a GroupID.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Option func(*Fetcher)

// Fetcher reads messages from a kafka-go reader in batches, hands every
// batch to a lazy.MessagesHandler and commits the fetched offsets.
type Fetcher struct {
	reader           Reader
	handler          lazy.MessagesHandler
	errorHandler     transport.ErrorHandler
	logger           log.Logger
	stopOnError      bool
	batchSize        int
	batchWaitTimeout time.Duration
}

func NewFetcher(reader Reader, handler lazy.MessagesHandler, opts ...Option) (*Fetcher, error) {
	if reader == nil {
		return nil, ErrNilReader
	}
	if handler == nil {
		return nil, ErrNilHandler
	}
	f := &Fetcher{
		reader:           reader,
		handler:          handler,
		errorHandler:     transport.ErrorHandlerFunc(func(context.Context, error) {}),
		logger:           log.NewNopLogger(),
		batchSize:        defaultBatchSize,
		batchWaitTimeout: defaultBatchWaitTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func WithBatchSize(size int) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.batchSize = size
		}
	}
}

func WithBatchWaitTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.batchWaitTimeout = timeout
		}
	}
}

func WithErrorHandler(h transport.ErrorHandler) Option {
	return func(f *Fetcher) {
		f.errorHandler = h
	}
}

func WithLogger(logger log.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithStopOnError makes Run return the first handler error without
// committing the batch. By default errors are reported and offsets committed.
func WithStopOnError() Option {
	return func(f *Fetcher) {
		f.stopOnError = true
	}
}

// Run fetches and handles batches until ctx is done.
func (f *Fetcher) Run(ctx context.Context) error {
	fetched := make([]kafka.Message, 0, f.batchSize)
	buf := make([]*lazy.Message, f.batchSize)
	for i := 0; i < f.batchSize; i++ {
		buf[i] = &lazy.Message{Headers: make([]lazy.Header, 0, 8)}
	}

	for {
		var err error
		fetched, err = f.fetch(ctx, fetched[:0])
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			f.errorHandler.Handle(ctx, err)
			return err
		}
		if err = f.handle(ctx, fetched, buf); err != nil {
			return err
		}
	}
}

// fetch blocks for the first message, then collects more until the batch
// is full or the wait timeout expires.
func (f *Fetcher) fetch(ctx context.Context, dst []kafka.Message) ([]kafka.Message, error) {
	msg, err := f.reader.FetchMessage(ctx)
	if err != nil {
		return dst, err
	}
	dst = append(dst, msg)

	waitCtx, cancel := context.WithTimeout(ctx, f.batchWaitTimeout)
	defer cancel()
	for len(dst) < f.batchSize {
		msg, err = f.reader.FetchMessage(waitCtx)
		if err != nil {
			if ctx.Err() != nil {
				return dst, ctx.Err()
			}
			if waitCtx.Err() != nil {
				break
			}
			return dst, err
		}
		dst = append(dst, msg)
	}
	return dst, nil
}

// handle splits fetched messages into per topic runs, keeping fetch order
// inside every topic.
func (f *Fetcher) handle(ctx context.Context, fetched []kafka.Message, buf []*lazy.Message) error {
	var topics []string
	byTopic := make(map[string][]int)
	for i := range fetched {
		topic := fetched[i].Topic
		if _, ok := byTopic[topic]; !ok {
			topics = append(topics, topic)
		}
		byTopic[topic] = append(byTopic[topic], i)
	}

	for _, topic := range topics {
		indexes := byTopic[topic]
		for n, i := range indexes {
			convertMsg(buf[n], &fetched[i])
		}
		if err := f.handler.HandleMessages(ctx, lazy.Topic(topic), buf, len(indexes)); err != nil {
			f.errorHandler.Handle(ctx, err)
			if f.stopOnError {
				return err
			}
			_ = level.Warn(f.logger).Log("msg", "batch handled with error", "topic", topic, "size", len(indexes), "err", err)
		}
	}

	if err := f.reader.CommitMessages(ctx, fetched...); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		f.errorHandler.Handle(ctx, err)
		return err
	}
	return nil
}
