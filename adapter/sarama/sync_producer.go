package sarama

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	kafka "github.com/mmadfox/go-kafka-lazybatch"
)

// SyncProducer wraps a sarama synchronous producer and implements kafka.Handler.
// It is the usual dead letter sink.
type SyncProducer struct {
	producer sarama.SyncProducer
}

// NewSyncProducer creates a new SyncProducer instance.
func NewSyncProducer(producer sarama.SyncProducer) *SyncProducer {
	return &SyncProducer{producer: producer}
}

// HandleMessage sends a message to the kafka broker and waits for the ack.
func (p *SyncProducer) HandleMessage(ctx context.Context, msg *kafka.Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("kafka/syncproducer: failed to send message: %w", err)
	}
	originMsg := new(sarama.ProducerMessage)
	makeSaramaMsg(originMsg, msg)
	_, _, err := p.producer.SendMessage(originMsg)
	return err
}

// HandleMessages sends messages in one request.
func (p *SyncProducer) HandleMessages(ctx context.Context, msgs []*kafka.Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("kafka/syncproducer: failed to send messages: %w", err)
	}
	messages := make([]*sarama.ProducerMessage, len(msgs))
	for i := 0; i < len(msgs); i++ {
		originMsg := new(sarama.ProducerMessage)
		makeSaramaMsg(originMsg, msgs[i])
		messages[i] = originMsg
	}
	return p.producer.SendMessages(messages)
}

func (p *SyncProducer) Close() error {
	return p.producer.Close()
}

var _ kafka.Handler = (*SyncProducer)(nil)
