package ranking

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/index"
	"github.com/poiesic/talentrank/tabular"
)

const (
	// DefaultRawPoolSize is the number of hits retrieved before filtering.
	DefaultRawPoolSize = 20

	// DefaultBatchSize is the number of role texts per embedding call.
	DefaultBatchSize = 64

	defaultModelID = "unknown"
)

// Engine loads datasets and ranks their records.
type Engine struct {
	embedder         ai.Embedder
	pool             *ants.Pool
	batchSize        int
	rawPoolSize      int
	modelID          string
	progress         io.Writer
	progressInterval int
	logger           *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if e.pool != nil {
			e.pool.Release()
		}
		e.pool = pool
		return nil
	}
}

// WithBatchSize sets how many role texts are sent per embedding call.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		e.batchSize = size
		return nil
	}
}

// WithRawPoolSize sets how many nearest neighbours are retrieved before
// the hard filters run. Default is DefaultRawPoolSize.
func WithRawPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			return fmt.Errorf("raw pool size must be positive, got %d", size)
		}
		e.rawPoolSize = size
		return nil
	}
}

// WithModelID records which model produced dataset vectors.
func WithModelID(id string) Option {
	return func(e *Engine) error {
		if id != "" {
			e.modelID = id
		}
		return nil
	}
}

// WithProgress reports embedding progress to w every interval rows.
func WithProgress(w io.Writer, interval int) Option {
	return func(e *Engine) error {
		e.progress = w
		e.progressInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a ranking engine around embedder.
// Call Close to release the worker pool.
func NewEngine(embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		embedder:    embedder,
		batchSize:   DefaultBatchSize,
		rawPoolSize: DefaultRawPoolSize,
		modelID:     defaultModelID,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.Close()
			return nil, err
		}
	}

	if e.pool == nil {
		poolSize := max(runtime.NumCPU()/2, 1)
		pool, err := ants.NewPool(poolSize)
		if err != nil {
			return nil, err
		}
		e.pool = pool
	}

	e.logger = e.logger.With("component", "ranking-engine")
	return e, nil
}

// Close releases the worker pool. The engine must not be used afterwards.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// ModelID returns the model id stamped on loaded datasets.
func (e *Engine) ModelID() string {
	return e.modelID
}

// Load validates table and builds a Dataset from it.
func (e *Engine) Load(ctx context.Context, table *tabular.Table) (*Dataset, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: no table", core.ErrSchema)
	}
	start := time.Now()

	cols, err := resolveColumns(table.Header)
	if err != nil {
		return nil, err
	}

	employees, err := parseEmployees(table, cols)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("%w: %w", core.ErrEmbedding, index.ErrEmptyDataset)
	}

	vectors, err := e.embedRoles(ctx, employees)
	if err != nil {
		return nil, err
	}

	idx, err := index.Build(vectors)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrEmbedding, err)
	}
	for i := range employees {
		employees[i].Vector = vectors[i]
	}

	ds := &Dataset{
		employees: employees,
		index:     idx,
		modelID:   e.modelID,
		createdAt: time.Now().UTC(),
	}
	e.logger.Info("loaded dataset", "rows", ds.Len(), "dim", ds.Dim(), "elapsed", time.Since(start))
	return ds, nil
}

// parseEmployees converts table rows into validated records.
func parseEmployees(table *tabular.Table, cols columns) ([]core.Employee, error) {
	employees := make([]core.Employee, 0, table.Len())
	for i := range table.Rows {
		emp := core.Employee{
			Position: i,
			Name:     table.Cell(i, cols.name),
			Skills:   core.ParseSkills(table.Cell(i, cols.skills)),
			Roles:    table.Cell(i, cols.roles),
		}
		if err := core.ValidateEmployee(&emp); err != nil {
			return nil, newRowError(i+1, ColumnName, err)
		}

		age, err := core.ParseAge(table.Cell(i, cols.age))
		if err != nil {
			return nil, newRowError(i+1, ColumnAge, err)
		}
		emp.Age = age

		employees = append(employees, emp)
	}
	return employees, nil
}

// embedRoles embeds each employee's role text in batches on the worker pool
// and returns unit vectors in row order.
func (e *Engine) embedRoles(ctx context.Context, employees []core.Employee) ([][]float32, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	texts := make([]string, len(employees))
	for i := range employees {
		texts[i] = employees[i].Roles
	}

	vectors := make([][]float32, len(texts))
	tracker := newProgressTracker(e.progress, len(texts), e.progressInterval)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for lo := 0; lo < len(texts); lo += e.batchSize {
		hi := min(lo+e.batchSize, len(texts))
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			batch, err := e.embedder.EmbedTexts(ctx, texts[lo:hi])
			if err != nil {
				fail(err)
				return
			}
			if len(batch) != hi-lo {
				fail(fmt.Errorf("%w: rows %d-%d: want %d, got %d", ai.ErrVectorCount, lo+1, hi, hi-lo, len(batch)))
				return
			}
			copy(vectors[lo:hi], batch)
			tracker.Increment(hi - lo)
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr == nil {
		firstErr = ctx.Err()
	}
	if firstErr != nil {
		e.logger.Error("failed to embed roles", "rows", len(texts), "err", firstErr)
		return nil, fmt.Errorf("%w: %w", core.ErrEmbedding, firstErr)
	}
	tracker.Finish()

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: row %d: empty vector", core.ErrEmbedding, i+1)
		}
		if len(v) != dim {
			return nil, fmt.Errorf("%w: row %d: dimension %d, want %d: %w", core.ErrEmbedding, i+1, len(v), dim, index.ErrDimensionMismatch)
		}
		vectors[i] = ai.NormalizeVector(v)
	}
	return vectors, nil
}

