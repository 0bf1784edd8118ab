// Package config loads the talentrank YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/poiesic/talentrank/ai"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the talentrank service and CLI.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Cache     CacheConfig     `yaml:"cache"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider    string        `yaml:"provider"` // "openai" or "hash"
	Host        string        `yaml:"host"`
	Model       string        `yaml:"model"`
	APIKeyEnv   string        `yaml:"api_key_env"` // Environment variable for API key
	Dimension   int           `yaml:"dimension"`   // hash provider only
	BatchSize   int           `yaml:"batch_size"`
	MaxAttempts int           `yaml:"max_attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
}

// CacheConfig holds embedding cache configuration.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"` // empty keeps the cache in memory
}

// RankingConfig holds ranking engine configuration.
type RankingConfig struct {
	RawPoolSize int `yaml:"raw_pool_size"`
	PoolSize    int `yaml:"pool_size"` // 0 picks NumCPU/2
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Addr:            ":8000",
			MaxUploadBytes:  32 << 20,
			ReadTimeout:     time.Minute,
			WriteTimeout:    5 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Embedding: EmbeddingConfig{
			Provider:    aiDefaults.Provider,
			Host:        aiDefaults.EmbeddingHost,
			Model:       aiDefaults.EmbeddingModel,
			APIKeyEnv:   "OPENAI_API_KEY",
			Dimension:   aiDefaults.Dimension,
			BatchSize:   aiDefaults.BatchSize,
			MaxAttempts: 3,
			RetryDelay:  500 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Ranking: RankingConfig{
			RawPoolSize: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.MaxUploadBytes < 1 {
		errs = append(errs, errors.New("server.max_upload_bytes must be positive"))
	}
	if c.Embedding.MaxAttempts < 1 {
		errs = append(errs, errors.New("embedding.max_attempts must be at least 1"))
	}
	if c.Ranking.RawPoolSize < 1 {
		errs = append(errs, errors.New("ranking.raw_pool_size must be positive"))
	}
	if c.Ranking.PoolSize < 0 {
		errs = append(errs, errors.New("ranking.pool_size must not be negative"))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be text or json", c.Logging.Format))
	}
	if err := c.AIConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// AIConfig maps the embedding section onto an ai.Config. The API token is
// read from the environment variable named by APIKeyEnv.
func (c *Config) AIConfig() *ai.Config {
	var token string
	if c.Embedding.APIKeyEnv != "" {
		token = os.Getenv(c.Embedding.APIKeyEnv)
	}
	cfg := ai.NewConfig(
		ai.WithProvider(c.Embedding.Provider),
		ai.WithEmbeddingHost(c.Embedding.Host),
		ai.WithEmbeddingModel(c.Embedding.Model),
		ai.WithAPIToken(token),
		ai.WithDimension(c.Embedding.Dimension),
		ai.WithBatchSize(c.Embedding.BatchSize),
	)
	cfg.Normalize()
	return cfg
}
