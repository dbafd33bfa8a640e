package kafka

import (
	"context"
	"fmt"
	"sort"
)

// Broker routes fetched messages to the batch channel of their topic.
type Broker struct {
	channels        map[Topic]*BatchChannel
	notFoundHandler MessagesHandler
}

// NewBroker creates a new broker instance.
func NewBroker() *Broker {
	return &Broker{
		channels: make(map[Topic]*BatchChannel),
	}
}

// NewBatchChannel creates a new batch channel, registers it with the broker, and returns it.
func (b *Broker) NewBatchChannel(topic Topic, opts ...ChannelOption) *BatchChannel {
	channel := newBatchChannel(topic, opts...)
	b.channels[topic] = channel
	return channel
}

// SetNotFoundHandler sets a handler for topics without a channel.
func (b *Broker) SetNotFoundHandler(h MessagesHandler) {
	b.notFoundHandler = h
}

// Channels returns the registered channels ordered by topic.
func (b *Broker) Channels() []*BatchChannel {
	channels := make([]*BatchChannel, 0, len(b.channels))
	for _, channel := range b.channels {
		channels = append(channels, channel)
	}
	sort.Slice(channels, func(i, j int) bool {
		return channels[i].Topic() < channels[j].Topic()
	})
	return channels
}

// Topics returns every topic the broker consumes, joined topics included.
func (b *Broker) Topics() []string {
	seen := make(map[Topic]struct{})
	topics := make([]string, 0, len(b.channels))
	for _, channel := range b.Channels() {
		for _, topic := range append([]Topic{channel.Topic()}, channel.topicsForJoin...) {
			if _, ok := seen[topic]; ok {
				continue
			}
			seen[topic] = struct{}{}
			topics = append(topics, topic.String())
		}
	}
	return topics
}

// BatchChannel returns the channel for the topic, either its own or one joining it.
func (b *Broker) BatchChannel(topic Topic) (*BatchChannel, error) {
	channel, ok := b.channels[topic]
	if ok {
		return channel, nil
	}
	for _, channel = range b.Channels() {
		if channel.joins(topic) {
			return channel, nil
		}
	}
	return nil, b.channelNotFoundErr(topic)
}

// IsForceCommit reports whether offsets of the topic are committed after every batch.
func (b *Broker) IsForceCommit(topic Topic) bool {
	channel, err := b.BatchChannel(topic)
	if err != nil {
		return false
	}
	return channel.IsForceCommit()
}

// HandleMessages implements MessagesHandler.
func (b *Broker) HandleMessages(ctx context.Context, topic Topic, buf []*Message, size int) error {
	channel, err := b.BatchChannel(topic)
	if err == nil {
		return channel.HandleMessages(ctx, buf, size)
	}
	if b.notFoundHandler != nil {
		return b.notFoundHandler.HandleMessages(ctx, topic, buf, size)
	}
	return err
}

func (b *Broker) channelNotFoundErr(topic Topic) error {
	return fmt.Errorf("%w for %s topic",
		ErrChannelNotFound, topic)
}

var _ MessagesHandler = (*Broker)(nil)
