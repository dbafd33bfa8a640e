package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/linkedin/goavro/v2"
)

const confluentHeaderSize = 5

var (
	// ErrWireFormat is returned for payloads without the schema registry header.
	ErrWireFormat = errors.New("codec: invalid schema registry wire format")
	// ErrUnknownSchema is returned for a schema ID no codec was registered for.
	ErrUnknownSchema = errors.New("codec: unknown schema")
	// ErrTrailingBytes is returned when a payload holds more than one datum.
	ErrTrailingBytes = errors.New("codec: trailing bytes after datum")
)

// Avro decodes Avro binary payloads into goavro native values
// (map[string]any for records).
type Avro struct {
	codec  *goavro.Codec
	codecs map[uint32]*goavro.Codec
}

// NewAvro creates a decoder for bare Avro binary payloads written with schema.
func NewAvro(schema string) (*Avro, error) {
	c, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, fmt.Errorf("codec: avro schema: %w", err)
	}
	return &Avro{codec: c}, nil
}

// NewConfluentAvro creates a decoder for payloads framed with the schema
// registry header: a zero magic byte followed by the big-endian schema ID.
func NewConfluentAvro(schemas map[uint32]string) (*Avro, error) {
	codecs := make(map[uint32]*goavro.Codec, len(schemas))
	for id, schema := range schemas {
		c, err := goavro.NewCodec(schema)
		if err != nil {
			return nil, fmt.Errorf("codec: avro schema %d: %w", id, err)
		}
		codecs[id] = c
	}
	return &Avro{codecs: codecs}, nil
}

// Decode implements kafka.Decoder.
func (a *Avro) Decode(data []byte) (any, error) {
	c := a.codec
	if a.codecs != nil {
		id, body, err := splitConfluent(data)
		if err != nil {
			return nil, err
		}
		var ok bool
		if c, ok = a.codecs[id]; !ok {
			return nil, fmt.Errorf("%w %d", ErrUnknownSchema, id)
		}
		data = body
	}
	native, rest, err := c.NativeFromBinary(data)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: %d", ErrTrailingBytes, len(rest))
	}
	return native, nil
}

func splitConfluent(data []byte) (id uint32, body []byte, err error) {
	if len(data) < confluentHeaderSize || data[0] != 0 {
		err = ErrWireFormat
		return
	}
	id = binary.BigEndian.Uint32(data[1:confluentHeaderSize])
	body = data[confluentHeaderSize:]
	return
}
