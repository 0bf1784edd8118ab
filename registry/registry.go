// Package registry keeps loaded datasets addressable by opaque ids.
//
// Datasets live only in memory. Creation and eviction are explicit; nothing
// expires on its own.
package registry

import (
	"cmp"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/ranking"
)

// ID identifies a registered dataset.
type ID string

// idLength is the number of hex characters kept from a random UUID.
const idLength = 8

// NewID returns a short random id.
func NewID() ID {
	return ID(strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength])
}

// Info summarizes a registered dataset.
type Info struct {
	ID        ID        `json:"dataset_id"`
	Rows      int       `json:"rows"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// Registry is a concurrency-safe map of datasets.
type Registry struct {
	mu       sync.RWMutex
	datasets map[ID]entry
	seq      uint64
	newID    func() ID
	logger   *slog.Logger
}

type entry struct {
	id  ID
	ds  *ranking.Dataset
	seq uint64 // registration order
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithIDGenerator replaces NewID.
func WithIDGenerator(gen func() ID) Option {
	return func(r *Registry) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		datasets: make(map[ID]entry),
		newID:    NewID,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "registry")
	return r
}

// maxIDAttempts bounds retries when a generated id is already taken.
const maxIDAttempts = 16

// Add registers ds under a fresh id.
func (r *Registry) Add(ds *ranking.Dataset) (ID, error) {
	if ds == nil {
		return "", fmt.Errorf("registry: nil dataset")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for range maxIDAttempts {
		id := r.newID()
		if _, taken := r.datasets[id]; taken {
			continue
		}
		r.seq++
		r.datasets[id] = entry{id: id, ds: ds, seq: r.seq}
		r.logger.Info("registered dataset", "dataset_id", id, "rows", ds.Len())
		return id, nil
	}
	return "", fmt.Errorf("registry: could not allocate a unique id after %d attempts", maxIDAttempts)
}

// Get returns the dataset registered under id.
func (r *Registry) Get(id ID) (*ranking.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.datasets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return e.ds, nil
}

// Evict removes the dataset registered under id.
func (r *Registry) Evict(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.datasets[id]; !ok {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	delete(r.datasets, id)
	r.logger.Info("evicted dataset", "dataset_id", id)
	return nil
}

// List describes every registered dataset in registration order.
func (r *Registry) List() []Info {
	r.mu.RLock()
	entries := slices.Collect(maps.Values(r.datasets))
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.seq, b.seq)
	})

	infos := make([]Info, len(entries))
	for i, e := range entries {
		infos[i] = Info{
			ID:        e.id,
			Rows:      e.ds.Len(),
			Model:     e.ds.ModelID(),
			CreatedAt: e.ds.CreatedAt(),
		}
	}
	return infos
}

// Len returns the number of registered datasets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.datasets)
}

// Clear removes every dataset.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.datasets)
}
