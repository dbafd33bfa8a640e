package sarama

import (
	"github.com/IBM/sarama"
	kafka "github.com/mmadfox/go-kafka-lazybatch"
)

// convertMsg fills dst from src, reusing the dst header buffer.
func convertMsg(dst *kafka.Message, src *sarama.ConsumerMessage) {
	dst.Headers = dst.Headers[:0]
	for i := 0; i < len(src.Headers); i++ {
		if src.Headers[i] == nil {
			continue
		}
		dst.Headers = append(dst.Headers, kafka.Header{
			Key:   src.Headers[i].Key,
			Value: src.Headers[i].Value,
		})
	}
	dst.Topic = kafka.Topic(src.Topic)
	dst.Partition = src.Partition
	dst.Offset = src.Offset
	dst.Timestamp = src.Timestamp
	dst.Key = src.Key
	dst.Value = src.Value
}

func makeSaramaMsg(dst *sarama.ProducerMessage, src *kafka.Message) {
	headers := make([]sarama.RecordHeader, len(src.Headers))
	for i, h := range src.Headers {
		headers[i] = sarama.RecordHeader{
			Key:   h.Key,
			Value: h.Value,
		}
	}
	dst.Topic = src.Topic.String()
	dst.Headers = headers
	dst.Timestamp = src.Timestamp
	dst.Value = sarama.ByteEncoder(src.Value)
	if src.Key != nil {
		dst.Key = sarama.ByteEncoder(src.Key)
	}
}
