package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"gopkg.in/yaml.v3"

	kafka "github.com/mmadfox/go-kafka-lazybatch"
	"github.com/mmadfox/go-kafka-lazybatch/codec"
)

// Decoder names accepted in topic configs.
const (
	DecoderJSON          = "json"
	DecoderJSONNumber    = "json-number"
	DecoderRaw           = "raw"
	DecoderAvro          = "avro"
	DecoderAvroConfluent = "avro-confluent"
	DecoderProto         = "proto"
	DecoderProtoJSON     = "proto-json"
)

var (
	ErrNoBrokers = errors.New("config: no brokers")
	ErrNoGroup   = errors.New("config: no consumer group")
	ErrNoTopics  = errors.New("config: no topics")
	ErrDecoder   = errors.New("config: unknown decoder")
	ErrTopicName = errors.New("config: topic without name")
)

type Config struct {
	Brokers    []string      `yaml:"brokers"`
	Group      string        `yaml:"group"`
	Client     string        `yaml:"client"`
	BatchSize  int           `yaml:"batch_size"`
	BatchWait  time.Duration `yaml:"batch_wait"`
	DeadLetter string        `yaml:"dead_letter"`
	LogLevel   string        `yaml:"log_level"`
	Topics     []Topic       `yaml:"topics"`

	dir string
}

// Topic configures the decoding of one topic.
type Topic struct {
	Name        string `yaml:"name"`
	Decoder     string `yaml:"decoder"`
	Schema      string `yaml:"schema"`
	SchemaFile  string `yaml:"schema_file"`
	SchemaID    uint32 `yaml:"schema_id"`
	Message     string `yaml:"message"`
	ForceCommit bool   `yaml:"force_commit"`
}

// Load reads the YAML file at path. Variables from a .env file in the working
// directory are loaded first; KAFKA_BROKERS, KAFKA_GROUP and
// KAFKA_CLIENT override the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes a YAML config, applies environment overrides and defaults, and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Brokers = splitCSV(v)
	}
	if v := os.Getenv("KAFKA_GROUP"); v != "" {
		cfg.Group = v
	}
	if v := os.Getenv("KAFKA_CLIENT"); v != "" {
		cfg.Client = v
	}
	if cfg.Client == "" {
		cfg.Client = "sarama"
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchWait <= 0 {
		cfg.BatchWait = time.Second
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if len(c.Brokers) == 0 {
		return ErrNoBrokers
	}
	if c.Group == "" {
		return ErrNoGroup
	}
	if len(c.Topics) == 0 {
		return ErrNoTopics
	}
	for _, t := range c.Topics {
		if t.Name == "" {
			return ErrTopicName
		}
	}
	return nil
}

// TopicNames returns the configured topic names in file order.
func (c *Config) TopicNames() []string {
	names := make([]string, len(c.Topics))
	for i, t := range c.Topics {
		names[i] = t.Name
	}
	return names
}

// Decoder builds the decoder of topic t. Schema files are resolved
// relative to the config file. Protobuf messages are looked up by full name
// among the types linked into the binary.
func (c *Config) Decoder(t Topic) (kafka.Decoder, error) {
	switch t.Decoder {
	case "", DecoderJSON:
		return kafka.JSON{}, nil
	case DecoderJSONNumber:
		return kafka.JSON{UseNumber: true}, nil
	case DecoderRaw:
		return kafka.Raw{}, nil
	case DecoderAvro, DecoderAvroConfluent:
		schema, err := c.schema(t)
		if err != nil {
			return nil, err
		}
		if t.Decoder == DecoderAvro {
			return codec.NewAvro(schema)
		}
		return codec.NewConfluentAvro(map[uint32]string{t.SchemaID: schema})
	case DecoderProto, DecoderProtoJSON:
		mt, err := protoregistry.GlobalTypes.FindMessageByName(protoreflect.FullName(t.Message))
		if err != nil {
			return nil, fmt.Errorf("config: %s topic: message %q: %w", t.Name, t.Message, err)
		}
		newMsg := func() proto.Message { return mt.New().Interface() }
		if t.Decoder == DecoderProto {
			return codec.NewProto(newMsg), nil
		}
		return codec.NewProtoJSON(newMsg), nil
	default:
		return nil, fmt.Errorf("%w %q for %s topic", ErrDecoder, t.Decoder, t.Name)
	}
}

func (c *Config) schema(t Topic) (string, error) {
	if t.Schema != "" {
		return t.Schema, nil
	}
	if t.SchemaFile == "" {
		return "", fmt.Errorf("config: %s topic: avro decoder needs schema or schema_file", t.Name)
	}
	path := t.SchemaFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("config: %s topic: %w", t.Name, err)
	}
	return string(data), nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
