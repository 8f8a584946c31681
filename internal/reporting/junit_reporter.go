// File: internal/reporting/junit_reporter.go
package reporting

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/xkilldash9x/expectlint/internal/findings"
)

// JUnitReporter renders the run as a JUnit XML document: one testsuite per
// analyzed file that has findings, one failing testcase per finding. CI
// systems that ingest JUnit surface each violation as a test failure.
type JUnitReporter struct {
	writer io.WriteCloser
	logger *zap.Logger
}

// NewJUnitReporter creates a JUnit XML reporter. It takes ownership of the
// writer.
func NewJUnitReporter(writer io.WriteCloser, logger *zap.Logger) *JUnitReporter {
	return &JUnitReporter{
		writer: writer,
		logger: logger.Named("junit_reporter"),
	}
}

// Write builds and serializes the XML document.
func (r *JUnitReporter) Write(run *findings.Run) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	suites := doc.CreateElement("testsuites")
	suites.CreateAttr("name", "expectlint")
	suites.CreateAttr("tests", strconv.Itoa(run.FilesScanned))
	suites.CreateAttr("failures", strconv.Itoa(run.Summary.Total))
	suites.CreateAttr("time", fmt.Sprintf("%.3f", run.FinishedAt.Sub(run.StartedAt).Seconds()))

	// Findings arrive sorted by severity first, so group by file here
	// rather than relying on adjacency.
	byFile := make(map[string][]findings.Finding)
	var order []string
	for _, f := range run.Findings {
		if _, seen := byFile[f.File]; !seen {
			order = append(order, f.File)
		}
		byFile[f.File] = append(byFile[f.File], f)
	}

	for _, file := range order {
		fileFindings := byFile[file]

		suite := suites.CreateElement("testsuite")
		suite.CreateAttr("name", file)
		suite.CreateAttr("tests", strconv.Itoa(len(fileFindings)))
		suite.CreateAttr("failures", strconv.Itoa(len(fileFindings)))

		for _, f := range fileFindings {
			testcase := suite.CreateElement("testcase")
			testcase.CreateAttr("name", fmt.Sprintf("%s:%d:%d", f.Rule, f.Line, f.Column))
			testcase.CreateAttr("classname", file)

			failure := testcase.CreateElement("failure")
			failure.CreateAttr("message", f.Message)
			failure.CreateAttr("type", string(f.Kind))
			if f.Snippet != "" {
				failure.SetText(fmt.Sprintf("%s:%d:%d\n%s", f.File, f.Line, f.Column, f.Snippet))
			} else {
				failure.SetText(fmt.Sprintf("%s:%d:%d", f.File, f.Line, f.Column))
			}
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(r.writer); err != nil {
		r.logger.Error("Failed to write JUnit report", zap.Error(err))
		return fmt.Errorf("failed to write JUnit report: %w", err)
	}

	r.logger.Debug("Wrote JUnit report",
		zap.String("run_id", run.RunID),
		zap.Int("suites", len(order)),
		zap.Int("failures", run.Summary.Total),
	)
	return nil
}

// Close releases the underlying writer.
func (r *JUnitReporter) Close() error {
	if err := r.writer.Close(); err != nil {
		return fmt.Errorf("failed to close output writer: %w", err)
	}
	return nil
}
