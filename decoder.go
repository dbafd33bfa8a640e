package kafka

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

var (
	errEmptyPayload = errors.New("empty payload")
	errTrailingData = errors.New("invalid character after top-level value")
)

// Decoder converts a raw payload into a structured value.
// Implementations must return the same value for the same bytes.
type Decoder interface {
	Decode(data []byte) (any, error)
}

// DecoderFunc type is an adapter to allow the use of ordinary
// functions as Decoder.
type DecoderFunc func(data []byte) (any, error)

func (f DecoderFunc) Decode(data []byte) (any, error) {
	return f(data)
}

// JSON decodes payloads into map[string]any, []any or scalars.
// An empty payload is rejected.
type JSON struct {
	// UseNumber keeps numbers as json.Number instead of float64.
	UseNumber bool
}

func (d JSON) Decode(data []byte) (v any, err error) {
	if len(data) == 0 {
		return nil, errEmptyPayload
	}
	if !d.UseNumber {
		err = json.Unmarshal(data, &v)
		return
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err = dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err = dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return v, nil
}

// JSONInto returns a decoder that unmarshals each payload into a new value
// created by newFn.
func JSONInto(newFn func() any) Decoder {
	return DecoderFunc(func(data []byte) (any, error) {
		v := newFn()
		if err := json.Unmarshal(data, v); err != nil {
			return nil, err
		}
		return v, nil
	})
}

// Raw leaves the payload untouched.
type Raw struct{}

func (Raw) Decode(data []byte) (any, error) {
	return data, nil
}
