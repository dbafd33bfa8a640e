package sarama

import (
	"context"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	kafka "github.com/mmadfox/go-kafka-lazybatch"
)

// AsyncProducer wraps a sarama asynchronous producer and implements kafka.Handler.
// Delivery results are reported to the OnSuccess and OnError callbacks.
type AsyncProducer struct {
	producer  sarama.AsyncProducer
	onSuccess func(msg *sarama.ProducerMessage)
	onError   func(err *sarama.ProducerError)
	closeCh   chan struct{}
	doneCh    chan struct{}
	once      sync.Once
}

// NewAsyncProducer creates an AsyncProducer. Delivery errors are logged to
// logger until OnError replaces the callback.
func NewAsyncProducer(producer sarama.AsyncProducer, logger log.Logger) *AsyncProducer {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	asyncProducer := &AsyncProducer{
		producer: producer,
		closeCh:  make(chan struct{}),
		doneCh:   make(chan struct{}),
		onError: func(err *sarama.ProducerError) {
			_ = level.Error(logger).Log("msg", "async produce", "topic", err.Msg.Topic, "err", err.Err)
		},
		onSuccess: func(msg *sarama.ProducerMessage) {},
	}
	go asyncProducer.dispatcher()
	return asyncProducer
}

// OnError must be called before the first message is sent.
func (p *AsyncProducer) OnError(fn func(err *sarama.ProducerError)) {
	p.onError = fn
}

// OnSuccess must be called before the first message is sent.
func (p *AsyncProducer) OnSuccess(fn func(msg *sarama.ProducerMessage)) {
	p.onSuccess = fn
}

func (p *AsyncProducer) HandleMessage(ctx context.Context, msg *kafka.Message) error {
	originMsg := new(sarama.ProducerMessage)
	makeSaramaMsg(originMsg, msg)
	select {
	case <-ctx.Done():
		return fmt.Errorf("kafka/asyncproducer: failed to send message: %w", ctx.Err())
	case p.producer.Input() <- originMsg:
		return nil
	}
}

func (p *AsyncProducer) Close() error {
	err := p.producer.Close()
	p.once.Do(func() {
		close(p.closeCh)
	})
	<-p.doneCh
	return err
}

func (p *AsyncProducer) dispatcher() {
	defer close(p.doneCh)
	errs, successes := p.producer.Errors(), p.producer.Successes()
	for errs != nil || successes != nil {
		select {
		case <-p.closeCh:
			return
		case msg, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			p.onError(msg)
		case msg, ok := <-successes:
			if !ok {
				successes = nil
				continue
			}
			p.onSuccess(msg)
		}
	}
}

var _ kafka.Handler = (*AsyncProducer)(nil)
