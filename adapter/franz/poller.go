package franz

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/transport"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/twmb/franz-go/pkg/kgo"

	lazy "github.com/mmadfox/go-kafka-lazybatch"
)

const defaultMaxPollRecords = 500

var (
	// ErrNilClient error returned when creating a poller with nil client argument.
	ErrNilClient = errors.New("kafka/franz: client cannot be nil")
	// ErrNilHandler error returned when creating a poller with nil handler argument.
	ErrNilHandler = errors.New("kafka/franz: handler cannot be nil")
)

// Client is implemented by *kgo.Client.
type Client interface {
	PollRecords(ctx context.Context, maxPollRecords int) kgo.Fetches
	CommitRecords(ctx context.Context, rs ...*kgo.Record) error
}

type Option func(*Poller)

// Poller polls a franz-go client and hands every fetched topic partition
// to a lazy.MessagesHandler as one batch.
type Poller struct {
	client         Client
	handler        lazy.MessagesHandler
	errorHandler   transport.ErrorHandler
	logger         log.Logger
	maxPollRecords int
}

func NewPoller(client Client, handler lazy.MessagesHandler, opts ...Option) (*Poller, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if handler == nil {
		return nil, ErrNilHandler
	}
	p := &Poller{
		client:         client,
		handler:        handler,
		errorHandler:   transport.ErrorHandlerFunc(func(context.Context, error) {}),
		logger:         log.NewNopLogger(),
		maxPollRecords: defaultMaxPollRecords,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func WithMaxPollRecords(n int) Option {
	return func(p *Poller) {
		if n > 0 {
			p.maxPollRecords = n
		}
	}
}

func WithErrorHandler(h transport.ErrorHandler) Option {
	return func(p *Poller) {
		p.errorHandler = h
	}
}

func WithLogger(logger log.Logger) Option {
	return func(p *Poller) {
		p.logger = logger
	}
}

// Run polls until ctx is done or the client is closed.
func (p *Poller) Run(ctx context.Context) error {
	var buf []*lazy.Message
	for {
		fetches := p.client.PollRecords(ctx, p.maxPollRecords)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return nil
		}
		for _, fe := range fetches.Errors() {
			p.errorHandler.Handle(ctx, fmt.Errorf("kafka/franz: fetch %s[%d]: %w", fe.Topic, fe.Partition, fe.Err))
		}

		var handled []*kgo.Record
		fetches.EachPartition(func(ftp kgo.FetchTopicPartition) {
			if len(ftp.Records) == 0 {
				return
			}
			buf = grow(buf, len(ftp.Records))
			for i, rec := range ftp.Records {
				convertRecord(buf[i], rec)
			}
			if err := p.handler.HandleMessages(ctx, lazy.Topic(ftp.Topic), buf, len(ftp.Records)); err != nil {
				p.errorHandler.Handle(ctx, err)
				_ = level.Warn(p.logger).Log("msg", "batch handled with error",
					"topic", ftp.Topic, "partition", ftp.Partition, "err", err)
			}
			handled = append(handled, ftp.Records...)
		})

		if len(handled) == 0 {
			continue
		}
		if err := p.client.CommitRecords(ctx, handled...); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.errorHandler.Handle(ctx, err)
			return err
		}
	}
}

func grow(buf []*lazy.Message, n int) []*lazy.Message {
	for len(buf) < n {
		buf = append(buf, &lazy.Message{Headers: make([]lazy.Header, 0, 8)})
	}
	return buf
}

func convertRecord(dst *lazy.Message, src *kgo.Record) {
	dst.Headers = dst.Headers[:0]
	for _, h := range src.Headers {
		dst.Headers = append(dst.Headers, lazy.Header{Key: []byte(h.Key), Value: h.Value})
	}
	dst.Topic = lazy.Topic(src.Topic)
	dst.Partition = src.Partition
	dst.Offset = src.Offset
	dst.Key = src.Key
	dst.Value = src.Value
	dst.Timestamp = src.Timestamp
}
