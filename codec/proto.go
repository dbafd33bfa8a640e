package codec

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Proto decodes protobuf payloads into messages created by a factory.
type Proto struct {
	newMsg func() proto.Message
	json   bool
}

// NewProto creates a decoder for protobuf binary payloads.
func NewProto(newMsg func() proto.Message) *Proto {
	return &Proto{newMsg: newMsg}
}

// NewProtoJSON creates a decoder for protobuf messages in their JSON mapping.
func NewProtoJSON(newMsg func() proto.Message) *Proto {
	return &Proto{newMsg: newMsg, json: true}
}

// Decode implements kafka.Decoder.
func (p *Proto) Decode(data []byte) (any, error) {
	msg := p.newMsg()
	var err error
	if p.json {
		err = protojson.Unmarshal(data, msg)
	} else {
		err = proto.Unmarshal(data, msg)
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}
