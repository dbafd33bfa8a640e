package kafkago

import (
	"github.com/segmentio/kafka-go"

	lazy "github.com/mmadfox/go-kafka-lazybatch"
)

func convertMsg(dst *lazy.Message, src *kafka.Message) {
	dst.Headers = dst.Headers[:0]
	for _, h := range src.Headers {
		dst.Headers = append(dst.Headers, lazy.Header{
			Key:   []byte(h.Key),
			Value: h.Value,
		})
	}
	dst.Topic = lazy.Topic(src.Topic)
	dst.Partition = int32(src.Partition)
	dst.Offset = src.Offset
	dst.Key = src.Key
	dst.Value = src.Value
	dst.Timestamp = src.Time
}

func makeKafkaGoMsg(src *lazy.Message) kafka.Message {
	headers := make([]kafka.Header, len(src.Headers))
	for i, h := range src.Headers {
		headers[i] = kafka.Header{Key: string(h.Key), Value: h.Value}
	}
	return kafka.Message{
		Topic:   src.Topic.String(),
		Key:     src.Key,
		Value:   src.Value,
		Headers: headers,
		Time:    src.Timestamp,
	}
}
