// File: internal/engine/engine.go
// Package engine is the concurrent shell around the single-threaded core:
// files are analyzed in parallel, but each file's walk stays strictly
// sequential on its own goroutine.
package engine

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/expectlint/internal/analysis/expectchain"
	"github.com/xkilldash9x/expectlint/internal/config"
	"github.com/xkilldash9x/expectlint/internal/findings"
	"github.com/xkilldash9x/expectlint/internal/source"
)

// defaultFileTimeout bounds one file's parse+walk when the configured
// duration is missing or unparseable.
const defaultFileTimeout = 30 * time.Second

// Engine runs the analyzer over a set of files.
type Engine struct {
	cfg      config.EngineConfig
	parser   *source.Parser
	analyzer *expectchain.Analyzer
	logger   *zap.Logger
}

// New creates an engine. All dependencies are required.
func New(cfg config.EngineConfig, parser *source.Parser, analyzer *expectchain.Analyzer, logger *zap.Logger) (*Engine, error) {
	if parser == nil {
		return nil, errors.New("parser cannot be nil")
	}
	if analyzer == nil {
		return nil, errors.New("analyzer cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Engine{
		cfg:      cfg,
		parser:   parser,
		analyzer: analyzer,
		logger:   logger.Named("engine"),
	}, nil
}

func (e *Engine) fileTimeout() time.Duration {
	if d, err := time.ParseDuration(e.cfg.FileTimeout); err == nil && d > 0 {
		return d
	}
	return defaultFileTimeout
}

// Run analyzes every file and returns the aggregated run. A file that
// fails to read or parse is logged, counted and skipped; it never aborts
// the run. Context cancellation stops scheduling new files and is reported
// as the returned error alongside the partial run.
func (e *Engine) Run(ctx context.Context, files []string) (*findings.Run, error) {
	runID := uuid.NewString()
	startedAt := time.Now().UTC()

	concurrency := e.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	timeout := e.fileTimeout()

	e.logger.Info("Starting analysis run",
		zap.String("run_id", runID),
		zap.Int("files", len(files)),
		zap.Int("concurrency", concurrency),
		zap.Duration("file_timeout", timeout),
	)

	collector := findings.NewCollector(concurrency*4, e.logger)
	var scanned, failed atomic.Int64

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, file := range files {
		if groupCtx.Err() != nil {
			break
		}
		file := file
		g.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			if e.analyzeOne(groupCtx, runID, file, timeout, collector.In()) {
				scanned.Add(1)
			} else {
				failed.Add(1)
			}
			// File-level failures are findings of the run, not errors of
			// the group; returning non-nil would cancel sibling files.
			return nil
		})
	}

	_ = g.Wait()
	run := collector.Finalize(runID, startedAt, int(scanned.Load()), int(failed.Load()))

	e.logger.Info("Analysis run finished",
		zap.String("run_id", runID),
		zap.Int("files_scanned", run.FilesScanned),
		zap.Int("files_failed", run.FilesFailed),
		zap.Int("findings", run.Summary.Total),
		zap.Duration("elapsed", run.FinishedAt.Sub(run.StartedAt)),
	)

	return run, ctx.Err()
}

// analyzeOne processes a single file to completion: read, parse, walk,
// convert diagnostics, send to the collector. Returns false on an
// operational failure.
func (e *Engine) analyzeOne(ctx context.Context, runID, file string, timeout time.Duration, sink chan<- findings.Finding) bool {
	content, err := os.ReadFile(file)
	if err != nil {
		e.logger.Warn("Failed to read file; skipping", zap.String("file", file), zap.Error(err))
		return false
	}

	parseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	parsed, err := e.parser.Parse(parseCtx, file, content)
	if err != nil {
		e.logger.Warn("Failed to parse file; skipping", zap.String("file", file), zap.Error(err))
		return false
	}
	defer parsed.Close()

	for _, diag := range e.analyzer.AnalyzeFile(parsed) {
		sink <- findings.FromDiagnostic(runID, diag, parsed.Path, parsed.Source)
	}
	return true
}
