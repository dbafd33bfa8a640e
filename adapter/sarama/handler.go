package sarama

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"github.com/go-kit/kit/transport"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	kafka "github.com/mmadfox/go-kafka-lazybatch"
)

const (
	defaultBatchSize        = 100
	defaultBatchWaitTimeout = time.Second
)

// ErrHandler error returned when creating a handler with nil messages handler argument.
var ErrHandler = errors.New("kafka/sarama: messages handler cannot be nil")

type HandlerOption func(*Handler)

type HookFunc func(sarama.ConsumerGroupSession) error

// HandlerBeforeFunc is executed once per claim before the first batch is collected.
type HandlerBeforeFunc func(context.Context, sarama.ConsumerGroupSession, sarama.ConsumerGroupClaim) (context.Context, error)

// RebalanceFunc reports whether a handler error must end the claim.
type RebalanceFunc func(ctx context.Context, err error) bool

// forceCommitter is implemented by kafka.Broker.
type forceCommitter interface {
	IsForceCommit(topic kafka.Topic) bool
}

// Handler implements sarama.ConsumerGroupHandler. It collects up to batchSize
// messages of a claim, or whatever arrived within batchWaitTimeout, and hands
// them to a kafka.MessagesHandler, usually a *kafka.Broker.
type Handler struct {
	handler          kafka.MessagesHandler
	errorHandler     transport.ErrorHandler
	logger           log.Logger
	onSetup          []HookFunc
	onCleanup        []HookFunc
	before           []HandlerBeforeFunc
	rebalance        RebalanceFunc
	batchSize        int
	batchWaitTimeout time.Duration
}

func NewHandler(h kafka.MessagesHandler, opts ...HandlerOption) (*Handler, error) {
	if h == nil {
		return nil, ErrHandler
	}
	handler := &Handler{
		handler:          h,
		errorHandler:     transport.ErrorHandlerFunc(func(context.Context, error) {}),
		logger:           log.NewNopLogger(),
		rebalance:        func(context.Context, error) bool { return false },
		batchSize:        defaultBatchSize,
		batchWaitTimeout: defaultBatchWaitTimeout,
	}
	for _, opt := range opts {
		opt(handler)
	}
	return handler, nil
}

func WithBatchSize(size int) HandlerOption {
	return func(h *Handler) {
		if size > 0 {
			h.batchSize = size
		}
	}
}

func WithBatchWaitTimeout(timeout time.Duration) HandlerOption {
	return func(h *Handler) {
		if timeout > 0 {
			h.batchWaitTimeout = timeout
		}
	}
}

func WithLogger(logger log.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithRebalance sets the function deciding which handler errors end the claim.
// By default errors are reported and consumption goes on.
func WithRebalance(fn RebalanceFunc) HandlerOption {
	return func(h *Handler) {
		h.rebalance = fn
	}
}

func OnSetup(fn ...HookFunc) HandlerOption {
	return func(h *Handler) {
		h.onSetup = append(h.onSetup, fn...)
	}
}

func OnCleanup(fn ...HookFunc) HandlerOption {
	return func(h *Handler) {
		h.onCleanup = append(h.onCleanup, fn...)
	}
}

func HandlerBefore(before ...HandlerBeforeFunc) HandlerOption {
	return func(h *Handler) {
		h.before = append(h.before, before...)
	}
}

func HandlerError(handler transport.ErrorHandler) HandlerOption {
	return func(h *Handler) {
		h.errorHandler = handler
	}
}

func (h *Handler) Setup(session sarama.ConsumerGroupSession) error {
	_ = level.Debug(h.logger).Log("msg", "setup", "member", session.MemberID(), "generation", session.GenerationID())
	for i := 0; i < len(h.onSetup); i++ {
		if err := h.onSetup[i](session); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) Cleanup(session sarama.ConsumerGroupSession) error {
	_ = level.Debug(h.logger).Log("msg", "cleanup", "member", session.MemberID(), "generation", session.GenerationID())
	for i := 0; i < len(h.onCleanup); i++ {
		if err := h.onCleanup[i](session); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) ConsumeClaim(
	session sarama.ConsumerGroupSession,
	claim sarama.ConsumerGroupClaim,
) (err error) {
	ctx := session.Context()
	for i := 0; i < len(h.before); i++ {
		ctx, err = h.before[i](ctx, session, claim)
		if err != nil {
			return
		}
	}

	topic := kafka.Topic(claim.Topic())
	var forceCommit bool
	if fc, ok := h.handler.(forceCommitter); ok {
		forceCommit = fc.IsForceCommit(topic)
	}

	buf := make([]*kafka.Message, h.batchSize)
	for i := 0; i < h.batchSize; i++ {
		buf[i] = &kafka.Message{
			Headers: make([]kafka.Header, 0, 8),
		}
	}

	timeout := time.NewTimer(h.batchWaitTimeout)
	defer timeout.Stop()

	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			index := 0
			convertMsg(buf[index], msg)
			index++
			resetTimer(timeout, h.batchWaitTimeout)

			closed := false
		next:
			for index < h.batchSize {
				select {
				case <-ctx.Done():
					return nil
				case msg, ok = <-claim.Messages():
					if !ok {
						closed = true
						break next
					}
					convertMsg(buf[index], msg)
					index++
				case <-timeout.C:
					break next
				}
			}

			if err = h.flush(ctx, session, topic, claim.Partition(), buf, index, forceCommit); err != nil {
				return err
			}
			if closed {
				return nil
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (h *Handler) flush(
	ctx context.Context,
	session sarama.ConsumerGroupSession,
	topic kafka.Topic,
	partition int32,
	buf []*kafka.Message,
	size int,
	forceCommit bool,
) error {
	if err := h.handler.HandleMessages(ctx, topic, buf, size); err != nil {
		h.errorHandler.Handle(ctx, err)
		if h.rebalance(ctx, err) {
			return err
		}
	}
	session.MarkOffset(topic.String(), partition, buf[size-1].Offset+1, "")
	if forceCommit {
		session.Commit()
	}
	return nil
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

var _ sarama.ConsumerGroupHandler = (*Handler)(nil)
