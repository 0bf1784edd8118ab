package ranking

import (
	"log/slog"

	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/index"
)

// DiscardReason says why a retrieved record was dropped.
type DiscardReason string

const (
	DiscardMissingSkills DiscardReason = "missing required skills"
	DiscardAgeOutOfRange DiscardReason = "age out of range"
)

// Monitor provides hooks to observe the query pipeline.
type Monitor interface {
	Start(q Query)
	AfterRetrieval(hits []index.Hit)
	Discarded(record *core.Employee, reason DiscardReason)
	Scored(candidate *core.Candidate)
	Finish(results []core.Candidate)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Query)                              {}
func (n *noopMonitor) AfterRetrieval(_ []index.Hit)               {}
func (n *noopMonitor) Discarded(_ *core.Employee, _ DiscardReason) {}
func (n *noopMonitor) Scored(_ *core.Candidate)                   {}
func (n *noopMonitor) Finish(_ []core.Candidate)                  {}

// logMonitor writes each pipeline stage to a logger at debug level.
type logMonitor struct {
	logger *slog.Logger
}

// NewLogMonitor returns a Monitor that logs every stage at debug level.
// A nil logger uses slog.Default().
func NewLogMonitor(logger *slog.Logger) Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &logMonitor{logger: logger.With("component", "ranking-monitor")}
}

func (m *logMonitor) Start(q Query) {
	m.logger.Debug("query started", "text", q.Text, "skills", q.Skills,
		"age_min", q.AgeMin, "age_max", q.AgeMax, "top_k", q.TopK)
}

func (m *logMonitor) AfterRetrieval(hits []index.Hit) {
	m.logger.Debug("retrieved raw pool", "hits", len(hits))
}

func (m *logMonitor) Discarded(record *core.Employee, reason DiscardReason) {
	m.logger.Debug("discarded record", "position", record.Position, "name", record.Name, "reason", string(reason))
}

func (m *logMonitor) Scored(c *core.Candidate) {
	m.logger.Debug("scored record", "position", c.Position, "name", c.Name, "score", c.Score)
}

func (m *logMonitor) Finish(results []core.Candidate) {
	m.logger.Debug("query finished", "results", len(results))
}
