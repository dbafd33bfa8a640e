package sarama

import (
	"context"
	"errors"
	"sync"

	"github.com/IBM/sarama"
	"github.com/go-kit/kit/transport"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	// ErrTopicNotFound is the error returned when the list of topics is empty when the listener is created.
	ErrTopicNotFound = errors.New("kafka/sarama: topics not found")
	// ErrNilConsumerGroup error returned when creating a listener with nil consumerGroup argument.
	ErrNilConsumerGroup = errors.New("kafka/sarama: consumer cannot be nil")
	// ErrNilHandler error returned when creating a listener with nil groupHandler argument.
	ErrNilHandler = errors.New("kafka/sarama: handler cannot be nil")
)

// Listener runs a sarama.ConsumerGroup session loop.
type Listener struct {
	topics       []string
	group        sarama.ConsumerGroup
	groupHandler sarama.ConsumerGroupHandler
	errorHandler transport.ErrorHandler
	logger       log.Logger
}

type ListenerOption func(*Listener)

// ListenerErrorHandler receives Consume failures and the errors the group
// reports asynchronously when Consumer.Return.Errors is set.
func ListenerErrorHandler(h transport.ErrorHandler) ListenerOption {
	return func(l *Listener) {
		l.errorHandler = h
	}
}

func ListenerLogger(logger log.Logger) ListenerOption {
	return func(l *Listener) {
		l.logger = logger
	}
}

// NewListener creates a listener consuming topics with groupHandler.
func NewListener(
	topics []string,
	consumerGroup sarama.ConsumerGroup,
	groupHandler sarama.ConsumerGroupHandler,
	opts ...ListenerOption,
) (*Listener, error) {
	if len(topics) == 0 {
		return nil, ErrTopicNotFound
	}
	if consumerGroup == nil {
		return nil, ErrNilConsumerGroup
	}
	if groupHandler == nil {
		return nil, ErrNilHandler
	}
	l := &Listener{
		topics:       topics,
		group:        consumerGroup,
		groupHandler: groupHandler,
		errorHandler: transport.ErrorHandlerFunc(func(context.Context, error) {}),
		logger:       log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Listen joins the group and consumes until ctx is done or the group is closed.
// Consume returns on every rebalance, so it is called again in a loop.
func (l *Listener) Listen(ctx context.Context) error {
	var wg sync.WaitGroup
	drainCtx, stop := context.WithCancel(ctx)
	defer func() {
		stop()
		wg.Wait()
	}()

	if errs := l.group.Errors(); errs != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.drainErrors(drainCtx, errs)
		}()
	}

	for session := 1; ; session++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		_ = level.Debug(l.logger).Log("msg", "join group", "topics", len(l.topics), "session", session)
		if err := l.group.Consume(ctx, l.topics, l.groupHandler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) || errors.Is(err, sarama.ErrClosedClient) {
				return nil
			}
			l.errorHandler.Handle(ctx, err)
			return err
		}
	}
}

func (l *Listener) drainErrors(ctx context.Context, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				return
			}
			l.errorHandler.Handle(ctx, err)
		}
	}
}
