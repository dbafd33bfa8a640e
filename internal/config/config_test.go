package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"

	kafka "github.com/mmadfox/go-kafka-lazybatch"
	"github.com/mmadfox/go-kafka-lazybatch/codec"
)

const paymentSchema = `{"type":"record","name":"Payment","fields":[{"name":"id","type":"string"}]}`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
brokers: [kafka-1:9092, kafka-2:9092]
group: orders
client: franz
batch_size: 50
batch_wait: 250ms
dead_letter: orders.dlq
topics:
  - name: orders.created
    decoder: json-number
    force_commit: true
  - name: orders.audit
    decoder: raw
`))
	require.NoError(t, err)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
	require.Equal(t, "orders", cfg.Group)
	require.Equal(t, "franz", cfg.Client)
	require.Equal(t, 50, cfg.BatchSize)
	require.Equal(t, 250*time.Millisecond, cfg.BatchWait)
	require.Equal(t, "orders.dlq", cfg.DeadLetter)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"orders.created", "orders.audit"}, cfg.TopicNames())
	require.True(t, cfg.Topics[0].ForceCommit)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("brokers: [b:9092]\ngroup: g\ntopics: [{name: t}]\n"))
	require.NoError(t, err)
	require.Equal(t, "sarama", cfg.Client)
	require.Equal(t, 100, cfg.BatchSize)
	require.Equal(t, time.Second, cfg.BatchWait)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "env-1:9092, env-2:9092,")
	t.Setenv("KAFKA_GROUP", "env-group")
	t.Setenv("KAFKA_CLIENT", "kafka-go")

	cfg, err := Parse([]byte("brokers: [file:9092]\ngroup: file\ntopics: [{name: t}]\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"env-1:9092", "env-2:9092"}, cfg.Brokers)
	require.Equal(t, "env-group", cfg.Group)
	require.Equal(t, "kafka-go", cfg.Client)
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		data string
		err  error
	}{
		{name: "no brokers", data: "group: g\ntopics: [{name: t}]", err: ErrNoBrokers},
		{name: "no group", data: "brokers: [b]\ntopics: [{name: t}]", err: ErrNoGroup},
		{name: "no topics", data: "brokers: [b]\ngroup: g", err: ErrNoTopics},
		{name: "topic without name", data: "brokers: [b]\ngroup: g\ntopics: [{decoder: raw}]", err: ErrTopicName},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			require.ErrorIs(t, err, tc.err)
		})
	}

	_, err := Parse([]byte("brokers: ["))
	require.Error(t, err)
}

func TestConfig_Decoder(t *testing.T) {
	cfg := &Config{}

	dec, err := cfg.Decoder(Topic{Name: "a"})
	require.NoError(t, err)
	require.Equal(t, kafka.JSON{}, dec)

	dec, err = cfg.Decoder(Topic{Name: "a", Decoder: DecoderJSONNumber})
	require.NoError(t, err)
	require.Equal(t, kafka.JSON{UseNumber: true}, dec)

	dec, err = cfg.Decoder(Topic{Name: "a", Decoder: DecoderRaw})
	require.NoError(t, err)
	require.Equal(t, kafka.Raw{}, dec)

	dec, err = cfg.Decoder(Topic{Name: "a", Decoder: DecoderAvro, Schema: paymentSchema})
	require.NoError(t, err)
	require.IsType(t, &codec.Avro{}, dec)

	_, err = cfg.Decoder(Topic{Name: "a", Decoder: DecoderAvro})
	require.Error(t, err)

	_, err = cfg.Decoder(Topic{Name: "a", Decoder: "xml"})
	require.ErrorIs(t, err, ErrDecoder)
}

func TestConfig_ProtoDecoder(t *testing.T) {
	cfg := &Config{}

	dec, err := cfg.Decoder(Topic{Name: "a", Decoder: DecoderProtoJSON, Message: "google.protobuf.StringValue"})
	require.NoError(t, err)
	v, err := dec.Decode([]byte(`"o-1"`))
	require.NoError(t, err)
	require.Equal(t, "o-1", v.(*wrapperspb.StringValue).GetValue())

	dec, err = cfg.Decoder(Topic{Name: "a", Decoder: DecoderProto, Message: "google.protobuf.StringValue"})
	require.NoError(t, err)
	require.IsType(t, &codec.Proto{}, dec)

	_, err = cfg.Decoder(Topic{Name: "a", Decoder: DecoderProto, Message: "acme.Missing"})
	require.Error(t, err)
}

func TestLoad_SchemaFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "schemas"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schemas", "payment.avsc"), []byte(paymentSchema), 0o600))

	path := filepath.Join(dir, "lazybatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
brokers: [b:9092]
group: g
topics:
  - name: payments
    decoder: avro-confluent
    schema_id: 3
    schema_file: schemas/payment.avsc
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	dec, err := cfg.Decoder(cfg.Topics[0])
	require.NoError(t, err)

	_, err = dec.Decode([]byte{0, 0, 0, 0, 9, 0})
	require.ErrorIs(t, err, codec.ErrUnknownSchema)
	v, err := dec.Decode([]byte{0, 0, 0, 0, 3, 0x04, 'p', '1'})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"id": "p1"}, v)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
