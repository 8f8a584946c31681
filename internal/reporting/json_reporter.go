// File: internal/reporting/json_reporter.go
package reporting

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/expectlint/internal/findings"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONReporter writes the run as a single indented JSON document whose
// shape is pinned by ReportSchema.
type JSONReporter struct {
	writer io.WriteCloser
	logger *zap.Logger
}

// NewJSONReporter creates a JSON reporter. It takes ownership of the writer.
func NewJSONReporter(writer io.WriteCloser, logger *zap.Logger) *JSONReporter {
	return &JSONReporter{
		writer: writer,
		logger: logger.Named("json_reporter"),
	}
}

// Write encodes the run. Findings is forced to an empty slice so a clean
// run serializes as [] rather than null.
func (r *JSONReporter) Write(run *findings.Run) error {
	out := *run
	if out.Findings == nil {
		out.Findings = []findings.Finding{}
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&out); err != nil {
		r.logger.Error("Failed to encode JSON report", zap.Error(err))
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}

	r.logger.Debug("Wrote JSON report",
		zap.String("run_id", run.RunID),
		zap.Int("findings", len(run.Findings)),
	)
	return nil
}

// Close releases the underlying writer.
func (r *JSONReporter) Close() error {
	if err := r.writer.Close(); err != nil {
		return fmt.Errorf("failed to close output writer: %w", err)
	}
	return nil
}
