// File: internal/reporting/reporter.go
package reporting

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/xkilldash9x/expectlint/internal/findings"
)

// Reporter defines the interface for writing an analysis run to an output.
type Reporter interface {
	// Write renders a completed run.
	Write(run *findings.Run) error
	// Close finalizes the report and releases the underlying writer.
	Close() error
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method, so
// closing a stdout-backed reporter never closes stdout itself.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// New creates a reporter for the given format. An empty path, "-" or
// "stdout" targets standard output.
func New(format, outputPath string, logger *zap.Logger) (Reporter, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	var writer io.WriteCloser
	isStdOut := outputPath == "" || outputPath == "-" || outputPath == "stdout"

	if isStdOut {
		writer = &nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}

	cleanup := func() {
		if !isStdOut {
			writer.Close()
		}
	}

	switch format {
	case "text":
		return NewTextReporter(writer, logger), nil
	case "json":
		return NewJSONReporter(writer, logger), nil
	case "junit":
		return NewJUnitReporter(writer, logger), nil
	case "sarif":
		return NewSARIFReporter(writer, logger), nil
	default:
		cleanup()
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
