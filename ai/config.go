// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ProviderOpenAI selects an OpenAI-compatible embedding API.
	ProviderOpenAI = "openai"
	// ProviderHash selects the offline feature-hashing embedder from ai/mock.
	ProviderHash = "hash"
)

// Config holds configuration for the embedding service.
type Config struct {
	// Provider selects the embedding backend: "openai" or "hash".
	Provider string

	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "all-minilm", "text-embedding-3-small"
	EmbeddingModel string

	// APIToken is sent as the bearer token. Local servers accept any value.
	APIToken string

	// Dimension is the vector size produced by the hash provider.
	// It is ignored by the openai provider, whose model fixes the size.
	Dimension int

	// BatchSize is the number of texts sent per API request.
	BatchSize int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider sets the embedding backend.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAPIToken sets the bearer token.
func WithAPIToken(token string) ConfigOption {
	return func(c *Config) {
		c.APIToken = token
	}
}

// WithDimension sets the hash provider vector size.
func WithDimension(dim int) ConfigOption {
	return func(c *Config) {
		c.Dimension = dim
	}
}

// WithBatchSize sets the number of texts per API request.
func WithBatchSize(size int) ConfigOption {
	return func(c *Config) {
		c.BatchSize = size
	}
}

// DefaultConfig returns a Config with sensible defaults for a local OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderOpenAI,
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "all-minilm",
		APIToken:       "none",
		Dimension:      384,
		BatchSize:      64,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithEmbeddingHost("http://localhost:11434/v1"),
//	    WithEmbeddingModel("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the host if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.APIToken == "" {
		c.APIToken = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Provider {
	case ProviderOpenAI:
		if c.EmbeddingHost == "" {
			return errors.New("ai config: EmbeddingHost is required")
		}
	case ProviderHash:
		if c.Dimension < 1 {
			return errors.New("ai config: Dimension must be positive")
		}
	default:
		return fmt.Errorf("ai config: unsupported provider %q", c.Provider)
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.BatchSize < 1 {
		return errors.New("ai config: BatchSize must be positive")
	}
	return nil
}

// ModelID identifies the vectors this configuration produces.
// Cached vectors are namespaced by it.
func (c *Config) ModelID() string {
	if c.Provider == ProviderHash {
		return fmt.Sprintf("%s/%s/%d", c.Provider, c.EmbeddingModel, c.Dimension)
	}
	return c.Provider + "/" + c.EmbeddingModel
}
