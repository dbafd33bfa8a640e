package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func newString() proto.Message { return new(wrapperspb.StringValue) }

func TestProto_Decode(t *testing.T) {
	data, err := proto.Marshal(wrapperspb.String("o-1"))
	require.NoError(t, err)

	v, err := NewProto(newString).Decode(data)
	require.NoError(t, err)
	require.Equal(t, "o-1", v.(*wrapperspb.StringValue).GetValue())

	_, err = NewProto(newString).Decode([]byte{0x0a, 0x05})
	require.Error(t, err)
}

func TestProtoJSON_Decode(t *testing.T) {
	v, err := NewProtoJSON(newString).Decode([]byte(`"o-2"`))
	require.NoError(t, err)
	require.Equal(t, "o-2", v.(*wrapperspb.StringValue).GetValue())

	_, err = NewProtoJSON(newString).Decode([]byte(`{`))
	require.Error(t, err)
}

func TestProto_NewMessagePerDecode(t *testing.T) {
	dec := NewProto(newString)
	a, err := dec.Decode(nil)
	require.NoError(t, err)
	b, err := dec.Decode(nil)
	require.NoError(t, err)
	require.NotSame(t, a, b)
}
