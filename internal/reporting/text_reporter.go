// File: internal/reporting/text_reporter.go
package reporting

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/xkilldash9x/expectlint/internal/findings"
)

// TextReporter renders a human-readable console report: findings grouped
// per file, then a summary footer.
type TextReporter struct {
	writer io.WriteCloser
	logger *zap.Logger
}

// NewTextReporter creates a text reporter. It takes ownership of the writer.
func NewTextReporter(writer io.WriteCloser, logger *zap.Logger) *TextReporter {
	return &TextReporter{
		writer: writer,
		logger: logger.Named("text_reporter"),
	}
}

// Write renders the run. Findings arrive pre-sorted by severity, file and
// line; the per-file grouping preserves that order.
func (r *TextReporter) Write(run *findings.Run) error {
	if len(run.Findings) == 0 {
		if _, err := fmt.Fprintf(r.writer, "No problems found in %d file(s).\n", run.FilesScanned); err != nil {
			return fmt.Errorf("failed to write text report: %w", err)
		}
		return nil
	}

	var currentFile string
	for _, f := range run.Findings {
		if f.File != currentFile {
			if currentFile != "" {
				if _, err := fmt.Fprintln(r.writer); err != nil {
					return fmt.Errorf("failed to write text report: %w", err)
				}
			}
			currentFile = f.File
			if _, err := fmt.Fprintf(r.writer, "%s\n", f.File); err != nil {
				return fmt.Errorf("failed to write text report: %w", err)
			}
		}
		if _, err := fmt.Fprintf(r.writer, "  %d:%d  %-7s  %s  (%s/%s)\n",
			f.Line, f.Column, f.Severity, f.Message, f.Rule, f.Kind); err != nil {
			return fmt.Errorf("failed to write text report: %w", err)
		}
	}

	if _, err := fmt.Fprintf(r.writer, "\n%d problem(s) in %d file(s)", run.Summary.Total, run.FilesScanned); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	if errs := run.Summary.BySeverity[findings.SeverityError]; errs > 0 {
		if _, err := fmt.Fprintf(r.writer, " (%d error(s))", errs); err != nil {
			return fmt.Errorf("failed to write text report: %w", err)
		}
	}
	if _, err := fmt.Fprintln(r.writer); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}

	return nil
}

// Close releases the underlying writer.
func (r *TextReporter) Close() error {
	if err := r.writer.Close(); err != nil {
		return fmt.Errorf("failed to close output writer: %w", err)
	}
	return nil
}
