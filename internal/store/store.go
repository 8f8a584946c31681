// File: internal/store/store.go
// Package store persists analysis runs to PostgreSQL so findings can be
// tracked across runs by fingerprint. The store is optional: the CLI only
// constructs one when a history DSN is configured, and a failed save never
// fails the run itself.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/xkilldash9x/expectlint/internal/analysis/expectchain"
	"github.com/xkilldash9x/expectlint/internal/findings"
)

// DBPool abstracts pgxpool.Pool to allow for mocking in tests.
type DBPool interface {
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Store provides the PostgreSQL-backed run history.
type Store struct {
	pool DBPool
	log  *zap.Logger
}

// New creates a new store instance and verifies the connection.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*Store, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		pool: pool,
		log:  logger.Named("store"),
	}, nil
}

// SaveRun persists a completed run and its findings in one transaction.
func (s *Store) SaveRun(ctx context.Context, run *findings.Run) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful commit reports ErrTxClosed, which is
		// not a failure.
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	insertRun := `
        INSERT INTO lint_runs (id, started_at, finished_at, files_scanned, files_failed, total_findings)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	if _, err := tx.Exec(ctx, insertRun,
		run.RunID, run.StartedAt.UTC(), run.FinishedAt.UTC(),
		run.FilesScanned, run.FilesFailed, run.Summary.Total,
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if len(run.Findings) > 0 {
		if err := s.persistFindings(ctx, tx, run.Findings); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) persistFindings(ctx context.Context, tx pgx.Tx, items []findings.Finding) error {
	rows := make([][]interface{}, len(items))
	for i, f := range items {
		rows[i] = []interface{}{
			f.ID, f.RunID, f.Rule, string(f.Kind),
			string(f.Severity), f.Message,
			f.File, f.Line, f.Column, f.Snippet,
			f.Fingerprint,
			f.ObservedAt.UTC(),
		}
	}

	copyCount, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"lint_findings"},
		[]string{"id", "run_id", "rule", "kind", "severity", "message", "file", "line", "col", "snippet", "fingerprint", "observed_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy findings: %w", err)
	}
	if int(copyCount) != len(items) {
		return fmt.Errorf("mismatch in copied findings count: expected %d, got %d", len(items), copyCount)
	}

	return nil
}

// FindingsByRun returns the stored findings of one run, oldest first.
func (s *Store) FindingsByRun(ctx context.Context, runID string) ([]findings.Finding, error) {
	query := `
        SELECT id, rule, kind, severity, message, file, line, col, snippet, fingerprint, observed_at
        FROM lint_findings
        WHERE run_id = $1
        ORDER BY observed_at ASC;
    `
	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer rows.Close()

	var results []findings.Finding
	for rows.Next() {
		var f findings.Finding
		var kindStr, severityStr string

		err := rows.Scan(
			&f.ID, &f.Rule, &kindStr, &severityStr, &f.Message,
			&f.File, &f.Line, &f.Column, &f.Snippet,
			&f.Fingerprint, &f.ObservedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan finding row: %w", err)
		}

		f.Kind = expectchain.MessageKind(kindStr)
		f.Severity = findings.Severity(severityStr)
		f.RunID = runID
		results = append(results, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	return results, nil
}
