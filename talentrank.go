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

// Package talentrank ranks employee records against free-text requirements.
//
// A Service wires the configured embedder, the optional embedding cache, the
// ranking engine and the dataset registry together:
//
//	svc, err := talentrank.NewService(talentrank.WithConfig(cfg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	table, err := tabular.ReadFile("staff.xlsx")
//	id, err := svc.LoadDataset(ctx, table)
//	results, err := svc.Search(ctx, id, ranking.Query{
//	    Text:   "analytics engineer snowflake dbt",
//	    Skills: []string{"snowflake", "dbt"},
//	    AgeMin: 30,
//	    AgeMax: 50,
//	    TopK:   5,
//	})
package talentrank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/ai/mock"
	"github.com/poiesic/talentrank/ai/openai"
	"github.com/poiesic/talentrank/config"
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/ranking"
	"github.com/poiesic/talentrank/registry"
	"github.com/poiesic/talentrank/storage"
	"github.com/poiesic/talentrank/storage/badger"
	"github.com/poiesic/talentrank/tabular"
)

// DatasetID identifies a loaded dataset.
type DatasetID = registry.ID

type Service struct {
	cache    storage.VectorCache
	engine   *ranking.Engine
	registry *registry.Registry
	monitor  ranking.Monitor
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	config     *config.Config
	embedder   ai.Embedder
	engineOpts []ranking.Option
	logger     *slog.Logger
}

// WithConfig sets the configuration. Default is config.DefaultConfig().
func WithConfig(cfg *config.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.config = cfg
	}
}

// WithEmbedder replaces the embedder built from the configuration.
// Retry and cache decorators are still applied.
func WithEmbedder(embedder ai.Embedder) ServiceOption {
	return func(o *serviceOptions) {
		o.embedder = embedder
	}
}

// WithEngineOptions appends options passed to the ranking engine.
func WithEngineOptions(opts ...ranking.Option) ServiceOption {
	return func(o *serviceOptions) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewEmbedder builds the embedder selected by cfg.Provider.
func NewEmbedder(cfg *ai.Config) (ai.Embedder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ai.ProviderHash:
		return mock.NewHashEmbedder(cfg.Dimension), nil
	default:
		return openai.NewEmbedder(cfg)
	}
}

func NewService(opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		config: config.DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	cfg := options.config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	aiCfg := cfg.AIConfig()
	modelID := aiCfg.ModelID()

	embedder := options.embedder
	if embedder == nil {
		var err error
		embedder, err = NewEmbedder(aiCfg)
		if err != nil {
			return nil, err
		}
	}

	embedder, err := ai.NewRetryingEmbedder(embedder, cfg.Embedding.MaxAttempts, cfg.Embedding.RetryDelay)
	if err != nil {
		return nil, err
	}

	var cache storage.VectorCache
	if cfg.Cache.Enabled {
		cache, err = badger.OpenVectorCache(cfg.Cache.Dir, cfg.Cache.Dir == "", options.logger)
		if err != nil {
			return nil, fmt.Errorf("opening embedding cache: %w", err)
		}
		embedder = ai.NewCachingEmbedder(embedder, cache, modelID)
	}

	engineOpts := []ranking.Option{
		ranking.WithModelID(modelID),
		ranking.WithBatchSize(aiCfg.BatchSize),
		ranking.WithRawPoolSize(cfg.Ranking.RawPoolSize),
		ranking.WithLogger(options.logger),
	}
	if cfg.Ranking.PoolSize > 0 {
		engineOpts = append(engineOpts, ranking.WithPoolSize(cfg.Ranking.PoolSize))
	}
	engine, err := ranking.NewEngine(embedder, append(engineOpts, options.engineOpts...)...)
	if err != nil {
		if cache != nil {
			cache.Close()
		}
		return nil, err
	}

	return &Service{
		cache:    cache,
		engine:   engine,
		registry: registry.New(registry.WithLogger(options.logger)),
		monitor:  ranking.NewLogMonitor(options.logger),
		logger:   options.logger.With("component", "service"),
	}, nil
}

// LoadDataset builds a dataset from table and registers it.
func (s *Service) LoadDataset(ctx context.Context, table *tabular.Table) (DatasetID, error) {
	ds, err := s.engine.Load(ctx, table)
	if err != nil {
		return "", err
	}
	return s.registry.Add(ds)
}

// Search ranks the dataset registered under id. Unknown ids fail with
// core.ErrNotFound; AgeMin above AgeMax fails with ranking.ErrInvalidQuery.
func (s *Service) Search(ctx context.Context, id DatasetID, q ranking.Query) ([]core.Candidate, error) {
	ds, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	if q.AgeMin > q.AgeMax {
		return nil, fmt.Errorf("%w: age_min %d cannot exceed age_max %d", ranking.ErrInvalidQuery, q.AgeMin, q.AgeMax)
	}
	return s.engine.QueryWithMonitor(ctx, ds, q, s.monitor)
}

// Evict drops the dataset registered under id.
func (s *Service) Evict(id DatasetID) error {
	return s.registry.Evict(id)
}

// Datasets lists loaded datasets.
func (s *Service) Datasets() []registry.Info {
	return s.registry.List()
}

// Close releases the engine's worker pool and the embedding cache.
func (s *Service) Close() error {
	s.engine.Close()
	s.registry.Clear()

	var errs []error
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("error closing embedding cache", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
