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
	"strings"
	"time"
)

// Config holds configuration for the embedding service.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// RequestTimeout bounds a single call into the embedding service.
	// Expiry surfaces to callers as an encoder-unavailable condition.
	// Zero means no bound beyond the caller's context.
	RequestTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

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

// WithRequestTimeout sets the per-request embedding service timeout.
func WithRequestTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.RequestTimeout = timeout
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible embedding service.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "embeddinggemma",
		RequestTimeout: 30 * time.Second,
	}
}

// NewConfig creates a Config from defaults plus the given options.
func NewConfig(opts ...ConfigOption) *Config {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Validation errors
var (
	// ErrEmptyEmbeddingHost indicates the embedding host is not set.
	ErrEmptyEmbeddingHost = errors.New("embedding host cannot be empty")

	// ErrEmptyEmbeddingModel indicates the embedding model is not set.
	ErrEmptyEmbeddingModel = errors.New("embedding model cannot be empty")

	// ErrInvalidHostURL indicates a host URL without an http(s) scheme.
	ErrInvalidHostURL = errors.New("host must start with http:// or https://")

	// ErrNegativeTimeout indicates a negative request timeout.
	ErrNegativeTimeout = errors.New("request timeout cannot be negative")
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.EmbeddingHost == "" {
		return ErrEmptyEmbeddingHost
	}
	if !strings.HasPrefix(c.EmbeddingHost, "http://") && !strings.HasPrefix(c.EmbeddingHost, "https://") {
		return ErrInvalidHostURL
	}
	if c.EmbeddingModel == "" {
		return ErrEmptyEmbeddingModel
	}
	if c.RequestTimeout < 0 {
		return ErrNegativeTimeout
	}
	return nil
}
