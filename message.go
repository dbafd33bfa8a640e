package kafka

import (
	"bytes"
	"time"
)

// Topic represents a topic Kafka.
type Topic string

func (t Topic) String() string {
	return string(t)
}

// Message represents a raw fetched Kafka message.
type Message struct {
	Topic     Topic
	Partition int32
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   []Header
	Timestamp time.Time
}

// Header represents a Kafka header.
type Header struct {
	Key   []byte
	Value []byte
}

// Headers are list of key:value pairs.
type Headers []Header

// Get returns the value of the first header with the given key or nil.
func (h Headers) Get(key []byte) []byte {
	for i := 0; i < len(h); i++ {
		if bytes.Equal(h[i].Key, key) {
			return h[i].Value
		}
	}
	return nil
}

func NewMessage(topic Topic) *Message {
	return &Message{Topic: topic}
}

// copyHeaders detaches headers and their bytes from a buffer that adapters
// reuse between fetches.
func copyHeaders(headers []Header) []Header {
	if len(headers) == 0 {
		return nil
	}
	out := make([]Header, len(headers))
	for i, h := range headers {
		out[i] = Header{Key: bytes.Clone(h.Key), Value: bytes.Clone(h.Value)}
	}
	return out
}
