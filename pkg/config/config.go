package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"PairSignal/internal/services/pairs"
)

type Config struct {
	Environment string `yaml:"environment" validate:"required"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors"`
		RateLimitRPS    float64       `yaml:"rate_limit_rps" default:"5" validate:"gte=0"` // 0 disables
		RateLimitBurst  int           `yaml:"rate_limit_burst" default:"10" validate:"gte=0"`
	} `yaml:"server"`
	Metrics struct {
		Enabled       bool          `yaml:"enabled" default:"true"`
		Path          string        `yaml:"path" default:"/metrics"`
		SlowThreshold time.Duration `yaml:"slow_threshold" default:"2s"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Pair struct {
		SymbolA string `yaml:"symbol_a" default:"EURUSD" validate:"required"`
		SymbolB string `yaml:"symbol_b" default:"GBPUSD" validate:"required,nefield=SymbolA"`
	} `yaml:"pair"`
	Pipeline struct {
		Window              int           `yaml:"window" default:"5" validate:"gte=2"`
		RegressionThreshold float64       `yaml:"regression_threshold" default:"0.0002" validate:"gt=0"`
		DistanceThreshold   float64       `yaml:"distance_threshold" default:"0.9" validate:"gt=0,lt=1"`
		Horizon             int           `yaml:"horizon" default:"5" validate:"gte=2"`
		Workers             int           `yaml:"workers" validate:"gte=0"`
		Timeframe           string        `yaml:"timeframe" default:"1h" validate:"oneof=1s 1m 5m 1h"`
		Bars                int           `yaml:"bars" default:"50" validate:"gte=3"`
		CacheTTL            time.Duration `yaml:"cache_ttl" default:"1m"`
		Timeout             time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"pipeline"`
	ClickHouse struct {
		Host             string        `yaml:"host" default:"localhost" validate:"required"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"pairsignal"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"30s"`
		MaxOpenConns     int           `yaml:"max_open_conns" default:"10" validate:"gte=1"`
		InitSchema       bool          `yaml:"init_schema"`
		CandleTable      string        `yaml:"candle_table" default:"candles" validate:"required"`
		EventTable       string        `yaml:"event_table" default:"pair_events"` // empty disables event storage
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers" validate:"required_if=Enabled true"`
		Topic        string        `yaml:"topic" default:"pair.signals"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		Compression  string        `yaml:"compression" default:"snappy" validate:"oneof=gzip snappy lz4 zstd"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		BatchSize    int           `yaml:"batch_size" default:"100"`
		Linger       time.Duration `yaml:"linger" default:"50ms"`
	} `yaml:"kafka"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr" default:"localhost:6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size" default:"10" validate:"gte=1"`
		Prefix   string `yaml:"prefix" default:"pairsignal"`
	} `yaml:"redis"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse applies defaults to raw YAML, then validates it.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PAIRSIGNAL_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// PipelineConfig maps the pipeline section to the immutable run configuration.
func (c *Config) PipelineConfig() pairs.Config {
	return pairs.Config{
		Window:              c.Pipeline.Window,
		RegressionThreshold: c.Pipeline.RegressionThreshold,
		DistanceThreshold:   c.Pipeline.DistanceThreshold,
		Horizon:             c.Pipeline.Horizon,
		Workers:             c.Pipeline.Workers,
	}
}
