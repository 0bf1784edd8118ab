package ranking

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// progressTracker reports embedding progress of a Load.
// Safe for use from pool workers.
type progressTracker struct {
	writer         io.Writer
	total          int
	current        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	mu             sync.Mutex
}

// newProgressTracker starts tracking total rows, reporting every
// reportInterval rows. A nil writer yields nil; methods on a nil tracker
// do nothing.
func newProgressTracker(writer io.Writer, total, reportInterval int) *progressTracker {
	if writer == nil {
		return nil
	}
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &progressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
		startTime:      time.Now(),
	}
}

// Increment records delta more rows as embedded.
func (p *progressTracker) Increment(delta int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = min(p.current+delta, p.total)
	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// Finish prints the final line.
func (p *progressTracker) Finish() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.report()
	fmt.Fprintln(p.writer)
}

// report prints the current progress. Must be called with lock held.
func (p *progressTracker) report() {
	rate := 0.0
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 {
		rate = float64(p.current) / elapsed
	}

	percentage := 100.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rEmbedding: %d/%d (%.1f%%) - %.1f rows/s",
		p.current, p.total, percentage, rate)
}
