package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Logging     struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Server struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Scanner struct {
		Symbols         []string      `yaml:"symbols"`
		RefreshInterval time.Duration `yaml:"refresh_interval"`
		MaxParallel     int           `yaml:"max_parallel"`
	} `yaml:"scanner"`
	Providers struct {
		RequestTimeout time.Duration `yaml:"request_timeout"`
		QuoteCacheTTL  time.Duration `yaml:"quote_cache_ttl"`
		RateLimit      struct {
			Capacity     float64 `yaml:"capacity"`
			RefillPerSec float64 `yaml:"refill_per_sec"`
		} `yaml:"rate_limit"`
		Polygon struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"polygon"`
		TwelveData struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"twelve_data"`
		AlphaVantage struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"alpha_vantage"`
		UnusualWhales struct {
			APIKey   string        `yaml:"api_key"`
			BaseURL  string        `yaml:"base_url"`
			CacheTTL time.Duration `yaml:"cache_ttl"`
			Limit    int           `yaml:"limit"`
		} `yaml:"unusual_whales"`
	} `yaml:"providers"`
	Stream struct {
		Enabled        bool          `yaml:"enabled"`
		APIKey         string        `yaml:"api_key"`
		WebSocketURL   string        `yaml:"websocket_url"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
	} `yaml:"stream"`
	History struct {
		Retention int `yaml:"retention"`
	} `yaml:"history"`
	Model struct {
		LearningRate float64 `yaml:"learning_rate"`
		Momentum     float64 `yaml:"momentum"`
		Store        string  `yaml:"store"` // file or redis
		Path         string  `yaml:"path"`
		Redis        struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"model"`
	Trades struct {
		Capacity int `yaml:"capacity"`
	} `yaml:"trades"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			BatchTimeout time.Duration `yaml:"batch_timeout"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Override with environment variables
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		c.Providers.Polygon.APIKey = v
	}
	if v := os.Getenv("TWELVE_DATA_API_KEY"); v != "" {
		c.Providers.TwelveData.APIKey = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		c.Providers.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("UNUSUAL_WHALES_API_KEY"); v != "" {
		c.Providers.UnusualWhales.APIKey = v
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		c.Stream.APIKey = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Scanner.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Model.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Scanner.RefreshInterval == 0 {
		c.Scanner.RefreshInterval = 30 * time.Second
	}
	if c.Scanner.MaxParallel == 0 {
		c.Scanner.MaxParallel = 8
	}
	if c.Providers.RequestTimeout == 0 {
		c.Providers.RequestTimeout = 5 * time.Second
	}
	if c.Providers.QuoteCacheTTL == 0 {
		c.Providers.QuoteCacheTTL = 30 * time.Second
	}
	if c.Providers.UnusualWhales.CacheTTL == 0 {
		c.Providers.UnusualWhales.CacheTTL = 60 * time.Second
	}
	if c.Providers.UnusualWhales.Limit == 0 {
		c.Providers.UnusualWhales.Limit = 50
	}
	if c.Stream.ReconnectDelay == 0 {
		c.Stream.ReconnectDelay = 5 * time.Second
	}
	if c.Stream.PingInterval == 0 {
		c.Stream.PingInterval = 30 * time.Second
	}
	if c.History.Retention == 0 {
		c.History.Retention = 250
	}
	if c.Model.LearningRate == 0 {
		c.Model.LearningRate = 0.01
	}
	if c.Model.Store == "" {
		c.Model.Store = "file"
	}
	if c.Model.Path == "" {
		c.Model.Path = "data/model.json"
	}
	if c.Trades.Capacity == 0 {
		c.Trades.Capacity = 100
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if len(c.Scanner.Symbols) == 0 {
		return fmt.Errorf("scanner.symbols cannot be empty")
	}
	if c.Model.Store != "file" && c.Model.Store != "redis" {
		return fmt.Errorf("model.store must be 'file' or 'redis', got '%s'", c.Model.Store)
	}
	if c.Model.Store == "redis" && c.Model.Redis.Addr == "" {
		return fmt.Errorf("model.redis.addr is required when model.store is 'redis'")
	}
	if c.Stream.Enabled && c.Stream.APIKey == "" {
		return fmt.Errorf("stream.api_key is required when stream is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Kafka.Enabled && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when kafka is enabled")
	}
	return nil
}
