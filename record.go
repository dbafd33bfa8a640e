package kafka

import (
	"bytes"
	"fmt"
	"sync"
	"time"
)

// State is the decode state of a record.
type State int

const (
	StateRaw State = iota
	StateDecoded
	StateDecodeFailed
)

func (s State) String() (str string) {
	switch s {
	default:
		str = "Unknown"
	case StateRaw:
		str = "Raw"
	case StateDecoded:
		str = "Decoded"
	case StateDecodeFailed:
		str = "DecodeFailed"
	}
	return
}

// Metadata is the broker part of a record, available in every state.
type Metadata struct {
	Topic     Topic
	Partition int32
	Offset    int64
	Key       []byte
	Headers   []Header
	Timestamp time.Time
}

// RawFields is the undecoded view of a record.
type RawFields struct {
	Metadata
	Value []byte
}

// Decoded is the metadata of a record together with its decoded payload.
type Decoded struct {
	Metadata
	Payload any
}

// cache is one of rawCache, decodedCache or failedCache.
type cache interface {
	state() State
}

type rawCache struct{}

type decodedCache struct {
	value *Decoded
}

type failedCache struct {
	err *DecodeError
}

func (rawCache) state() State     { return StateRaw }
func (decodedCache) state() State { return StateDecoded }
func (failedCache) state() State  { return StateDecodeFailed }

// Record is a single fetched message with a lazily populated decode cache.
// A successful decode is performed at most once; a failed one may be retried.
type Record struct {
	route *Route
	index int
	raw   RawFields
	mu    sync.Locker
	cache cache
}

func newRecord(route *Route, index int, msg *Message, mu sync.Locker) *Record {
	return &Record{
		route: route,
		index: index,
		raw: RawFields{
			Metadata: Metadata{
				Topic:     msg.Topic,
				Partition: msg.Partition,
				Offset:    msg.Offset,
				Key:       bytes.Clone(msg.Key),
				Headers:   copyHeaders(msg.Headers),
				Timestamp: msg.Timestamp,
			},
			Value: bytes.Clone(msg.Value),
		},
		mu:    mu,
		cache: rawCache{},
	}
}

// Raw returns the undecoded fields of the record. It never decodes.
func (r *Record) Raw() RawFields {
	return r.raw
}

// Index returns the position of the record within its batch.
func (r *Record) Index() int {
	return r.index
}

// Route returns the route the record is decoded with.
func (r *Record) Route() *Route {
	return r.route
}

// Decode returns the decoded record, calling the route decoder on first use.
// Once it succeeded, the same *Decoded is returned without calling the decoder again.
// On failure a *DecodeError is returned and the next call tries again.
func (r *Record) Decode() (*Decoded, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.cache.(decodedCache); ok {
		return c.value, nil
	}

	payload, err := r.route.decoder.Decode(r.raw.Value)
	if err != nil {
		derr := &DecodeError{
			Topic:     r.raw.Topic,
			Partition: r.raw.Partition,
			Offset:    r.raw.Offset,
			Index:     r.index,
			Key:       r.raw.Key,
			Raw:       r.raw.Value,
			Err:       err,
		}
		r.cache = failedCache{err: derr}
		return nil, derr
	}

	decoded := &Decoded{Metadata: r.raw.Metadata, Payload: payload}
	r.cache = decodedCache{value: decoded}
	return decoded, nil
}

// Payload returns only the decoded payload. Same caching rules as Decode.
func (r *Record) Payload() (any, error) {
	decoded, err := r.Decode()
	if err != nil {
		return nil, err
	}
	return decoded.Payload, nil
}

// IsDecoded reports whether the record was decoded successfully.
func (r *Record) IsDecoded() bool {
	return r.State() == StateDecoded
}

// State returns the decode state without decoding.
func (r *Record) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.state()
}

// Err returns the last decode failure, or nil unless the record is in StateDecodeFailed.
func (r *Record) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cache.(failedCache); ok {
		return c.err
	}
	return nil
}

// PayloadAs returns the decoded payload of r as T.
func PayloadAs[T any](r *Record) (T, error) {
	var zero T
	payload, err := r.Payload()
	if err != nil {
		return zero, err
	}
	v, ok := payload.(T)
	if !ok {
		return zero, fmt.Errorf("%w %T at %s[%d]@%d",
			ErrPayloadType, payload, r.raw.Topic, r.raw.Partition, r.raw.Offset)
	}
	return v, nil
}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}
