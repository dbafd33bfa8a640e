package kafkago

import (
	"context"

	"github.com/segmentio/kafka-go"

	lazy "github.com/mmadfox/go-kafka-lazybatch"
)

// MessageWriter is implemented by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Writer implements lazy.Handler on top of a kafka-go writer. Messages carry
// their own topic, so the kafka-go writer must be created without one.
type Writer struct {
	w MessageWriter
}

func NewWriter(w MessageWriter) *Writer {
	return &Writer{w: w}
}

func (w *Writer) HandleMessage(ctx context.Context, msg *lazy.Message) error {
	return w.w.WriteMessages(ctx, makeKafkaGoMsg(msg))
}

var _ lazy.Handler = (*Writer)(nil)
