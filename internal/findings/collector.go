// File: internal/findings/collector.go
package findings

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Collector consumes findings from concurrent per-file producers over a
// channel and assembles the final Run. Producers send on In(); once they
// are done the owner calls Finalize, which drains the channel, closes it
// and returns the sorted, summarized aggregate.
type Collector struct {
	logger *zap.Logger

	in   chan Finding
	done chan struct{}

	mu       sync.Mutex
	findings []Finding
}

// NewCollector starts a collector with the given channel buffer.
func NewCollector(buffer int, logger *zap.Logger) *Collector {
	if buffer <= 0 {
		buffer = 64
	}
	c := &Collector{
		logger: logger.Named("collector"),
		in:     make(chan Finding, buffer),
		done:   make(chan struct{}),
	}
	go c.run()
	return c
}

// In returns the channel producers send findings on.
func (c *Collector) In() chan<- Finding {
	return c.in
}

func (c *Collector) run() {
	defer close(c.done)
	for f := range c.in {
		c.mu.Lock()
		c.findings = append(c.findings, f)
		c.mu.Unlock()
	}
}

// Finalize closes the intake channel, waits for the consumer goroutine to
// drain it, and returns the completed Run. All producers must have stopped
// sending before Finalize is called; sending afterwards panics.
func (c *Collector) Finalize(runID string, startedAt time.Time, filesScanned, filesFailed int) *Run {
	close(c.in)
	<-c.done

	c.mu.Lock()
	collected := make([]Finding, len(c.findings))
	copy(collected, c.findings)
	c.mu.Unlock()

	// Deterministic order regardless of which file finished first:
	// severity (most severe first), then file, then line, then column.
	sort.SliceStable(collected, func(i, j int) bool {
		a, b := collected[i], collected[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	run := &Run{
		RunID:        runID,
		StartedAt:    startedAt,
		FinishedAt:   time.Now().UTC(),
		FilesScanned: filesScanned,
		FilesFailed:  filesFailed,
		Findings:     collected,
		Summary:      summarize(collected),
	}

	c.logger.Debug("Collector finalized",
		zap.Int("findings", run.Summary.Total),
		zap.Int("files_scanned", filesScanned),
		zap.Int("files_failed", filesFailed),
	)
	return run
}
