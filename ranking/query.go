package ranking

import (
	"context"
	"fmt"

	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/core"
)

// Query describes one ranking request.
type Query struct {
	// Text is the free-text requirement. It may be empty.
	Text string
	// Skills are required skills, matched case-insensitively.
	Skills []string
	// AgeMin and AgeMax bound the accepted age, inclusive.
	AgeMin int
	AgeMax int
	// TopK caps the number of results. Must be at least 1.
	TopK int
}

// Validate reports whether q can be evaluated.
func (q Query) Validate() error {
	if q.TopK < 1 {
		return fmt.Errorf("%w: top_k must be at least 1, got %d", ErrInvalidQuery, q.TopK)
	}
	return nil
}

// Query ranks the records of ds against q.
func (e *Engine) Query(ctx context.Context, ds *Dataset, q Query) ([]core.Candidate, error) {
	return e.QueryWithMonitor(ctx, ds, q, nil)
}

// QueryWithMonitor ranks the records of ds against q with monitoring.
// The monitor receives callbacks at each stage of the pipeline.
func (e *Engine) QueryWithMonitor(ctx context.Context, ds *Dataset, q Query, monitor Monitor) ([]core.Candidate, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if ds == nil {
		return nil, core.ErrNotFound
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	monitor.Start(q)

	// 1. Encode the requirement
	raw, err := e.embedder.EmbedText(ctx, q.Text)
	if err != nil {
		e.logger.Error("error generating embedding for query", "err", err)
		return nil, fmt.Errorf("%w: query: %w", core.ErrEmbedding, err)
	}
	vector := ai.NormalizeVector(raw)

	// 2. Retrieve the raw pool
	hits, err := ds.index.Query(vector, e.rawPoolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", core.ErrEmbedding, err)
	}
	monitor.AfterRetrieval(hits)

	// 3. Filter and score
	required := core.NewSkillSet(q.Skills...)
	hasRequired := required.Len() > 0
	results := make([]core.Candidate, 0, len(hits))
	for _, hit := range hits {
		record := &ds.employees[hit.Position]

		if hasRequired && !record.Skills.Contains(required) {
			monitor.Discarded(record, DiscardMissingSkills)
			continue
		}
		if record.Age < q.AgeMin || record.Age > q.AgeMax {
			monitor.Discarded(record, DiscardAgeOutOfRange)
			continue
		}

		ratio := skillRatio(required, record.Skills)
		age := ageScore(record.Age)
		candidate := core.Candidate{
			Position:      record.Position,
			Name:          record.Name,
			Age:           record.Age,
			Skills:        record.Skills.Sorted(),
			Roles:         record.Roles,
			Similarity:    hit.Score,
			SkillRatio:    ratio,
			AgeScore:      age,
			Score:         composite(hit.Score, ratio, age),
			Justification: justify(hit.Score, age, hasRequired),
		}
		monitor.Scored(&candidate)
		results = append(results, candidate)
	}

	// 4. Order and cap
	core.SortCandidates(results)
	if len(results) > q.TopK {
		results = results[:q.TopK]
	}

	monitor.Finish(results)
	return results, nil
}
