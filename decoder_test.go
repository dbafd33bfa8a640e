package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type order struct {
	ID    string  `json:"id"`
	Total float64 `json:"total"`
}

func TestJSON_Decode(t *testing.T) {
	v, err := JSON{}.Decode([]byte(`{"id":"o-1","total":12.5}`))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"id": "o-1", "total": 12.5}, v)

	v, err = JSON{UseNumber: true}.Decode([]byte(`{"total":12}`))
	require.NoError(t, err)
	require.Equal(t, json.Number("12"), v.(map[string]any)["total"])

	_, err = JSON{}.Decode(nil)
	require.Error(t, err)
	_, err = JSON{UseNumber: true}.Decode([]byte(`{`))
	require.Error(t, err)
}

func TestJSON_DecodeRejectsTrailingData(t *testing.T) {
	for _, dec := range []JSON{{}, {UseNumber: true}} {
		_, err := dec.Decode([]byte(`{"a":1} garbage`))
		require.Error(t, err)
		_, err = dec.Decode([]byte(`{"a":1} {"b":2}`))
		require.Error(t, err)

		v, err := dec.Decode([]byte("{\"a\":\"x\"} \n"))
		require.NoError(t, err)
		require.Equal(t, map[string]any{"a": "x"}, v)
	}

	batch := NewBatch(NewRoute(testTopic, JSON{UseNumber: true}), newMessages(`{"a":1} garbage`))
	_, err := batch.First()
	require.ErrorIs(t, err, ErrDecode)
}

func TestJSONInto(t *testing.T) {
	dec := JSONInto(func() any { return new(order) })

	v, err := dec.Decode([]byte(`{"id":"o-1","total":3}`))
	require.NoError(t, err)
	require.Equal(t, &order{ID: "o-1", Total: 3}, v)

	_, err = dec.Decode([]byte(`[]`))
	require.Error(t, err)
}

func TestRaw_Decode(t *testing.T) {
	v, err := Raw{}.Decode([]byte("bytes"))
	require.NoError(t, err)
	require.Equal(t, []byte("bytes"), v)
}

func TestNewRoute_DefaultsToJSON(t *testing.T) {
	route := NewRoute(testTopic, nil)
	require.Equal(t, testTopic, route.Topic())
	require.Equal(t, JSON{}, route.Decoder())
}
