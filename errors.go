package kafka

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("kafka: decode failed")
	// ErrIndexOutOfRange matches every *IndexError.
	ErrIndexOutOfRange = errors.New("kafka: index out of range")
	// ErrPayloadType is returned by PayloadAs when the decoded payload has another type.
	ErrPayloadType = errors.New("kafka: unexpected payload type")
	// ErrChannelNotFound is returned by the broker for a topic without a channel.
	ErrChannelNotFound = errors.New("kafka: channel not found")
)

// DecodeError is returned when the route decoder rejects a record payload.
// Position fields stay available so the caller can skip or dead-letter the record.
type DecodeError struct {
	Topic     Topic
	Partition int32
	Offset    int64
	Index     int
	Key       []byte
	Raw       []byte
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("kafka: decode %s[%d]@%d (index %d): %v",
		e.Topic, e.Partition, e.Offset, e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// IndexError is returned for out-of-range batch access.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("kafka: index %d out of range [0,%d)", e.Index, e.Size)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// DecodeErrors extracts the decode failures reported by a bulk batch operation,
// ordered by record index.
func DecodeErrors(err error) []*DecodeError {
	if err == nil {
		return nil
	}
	var errs []error
	var merr *multierror.Error
	if errors.As(err, &merr) {
		errs = merr.WrappedErrors()
	} else {
		errs = []error{err}
	}
	out := make([]*DecodeError, 0, len(errs))
	for _, e := range errs {
		var de *DecodeError
		if errors.As(e, &de) {
			out = append(out, de)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Index < out[j].Index
	})
	return out
}
