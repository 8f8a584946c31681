// File: internal/reporting/sarif_reporter.go
package reporting

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/expectlint/internal/analysis/expectchain"
	"github.com/xkilldash9x/expectlint/internal/findings"
	"github.com/xkilldash9x/expectlint/internal/reporting/sarif"
)

// Constants for tool identification in the SARIF report.
const (
	ToolName     = "expectlint"
	ToolInfoURI  = "https://github.com/xkilldash9x/expectlint"
	SARIFVersion = "2.1.0"
	SARIFSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
)

// ruleIDSanitizer replaces characters not allowed in SARIF rule IDs.
// Alphanumerics, underscore and dot pass through; everything else collapses
// to a single hyphen.
var ruleIDSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_.]+`)

// kindDescriptions provides the per-kind rule documentation embedded in the
// SARIF tool driver.
var kindDescriptions = map[expectchain.MessageKind]string{
	expectchain.MatcherNotFound:  "An expect() chain ends without a matcher, so the assertion can never run.",
	expectchain.MatcherNotCalled: "An expect() chain names a matcher but never invokes it, so the assertion can never run.",
	expectchain.NotEnoughArgs:    "expect() was called with fewer arguments than the configured minimum.",
	expectchain.TooManyArgs:      "expect() was called with more arguments than the configured maximum.",
}

// SARIFReporter implements the Reporter interface for the SARIF 2.1.0
// format. Each distinct message kind becomes its own rule descriptor so
// SARIF viewers can filter by failure class.
type SARIFReporter struct {
	writer io.WriteCloser
	logger *zap.Logger
	log    *sarif.Log
	// ruleIndex maps a registered rule ID to its position in the driver's
	// rule list, so each kind is registered exactly once.
	ruleIndex map[string]int
}

// NewSARIFReporter creates a new reporter that writes SARIF output.
func NewSARIFReporter(writer io.WriteCloser, logger *zap.Logger) *SARIFReporter {
	log := &sarif.Log{
		Version: SARIFVersion,
		Schema:  SARIFSchema,
		Runs: []*sarif.Run{
			{
				Tool: &sarif.Tool{
					Driver: &sarif.ToolComponent{
						Name:           ToolName,
						InformationURI: pString(ToolInfoURI),
						// Empty slices (not nil) for proper JSON marshalling.
						Rules: []*sarif.ReportingDescriptor{},
					},
				},
				Results: []*sarif.Result{},
			},
		},
	}

	return &SARIFReporter{
		writer:    writer,
		logger:    logger.Named("sarif_reporter"),
		log:       log,
		ruleIndex: make(map[string]int),
	}
}

// Write converts the run's findings into SARIF results.
func (r *SARIFReporter) Write(run *findings.Run) error {
	sarifRun := r.log.Runs[0]

	for _, f := range run.Findings {
		ruleID := r.ensureRule(f)

		sarifRun.Results = append(sarifRun.Results, &sarif.Result{
			RuleID:    ruleID,
			Message:   &sarif.Message{Text: pString(f.Message)},
			Level:     mapSeverityToSARIFLevel(f.Severity),
			Locations: createLocations(f),
			PartialFingerprints: map[string]string{
				"expectlint/v1": f.Fingerprint,
			},
		})
	}

	r.logger.Debug("Buffered findings as SARIF results",
		zap.String("run_id", run.RunID),
		zap.Int("results", len(run.Findings)),
	)
	return nil
}

// Close finalizes the SARIF log and writes it to the output writer.
func (r *SARIFReporter) Close() error {
	var resultsCount, rulesCount int
	if len(r.log.Runs) > 0 && r.log.Runs[0] != nil {
		resultsCount = len(r.log.Runs[0].Results)
		if r.log.Runs[0].Tool != nil && r.log.Runs[0].Tool.Driver != nil {
			rulesCount = len(r.log.Runs[0].Tool.Driver.Rules)
		}
	}
	r.logger.Debug("Finalizing SARIF report",
		zap.Int("total_results", resultsCount),
		zap.Int("total_rules", rulesCount),
	)

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	encodeErr := encoder.Encode(r.log)

	// Always attempt to close the writer, regardless of encoding success.
	closeErr := r.writer.Close()

	if encodeErr != nil {
		r.logger.Error("Failed to encode SARIF log", zap.Error(encodeErr))
		return fmt.Errorf("failed to encode SARIF output: %w", encodeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close output writer: %w", closeErr)
	}
	return nil
}

// ensureRule registers a rule descriptor for the finding's kind once and
// returns its ID.
func (r *SARIFReporter) ensureRule(f findings.Finding) string {
	base := strings.Trim(ruleIDSanitizer.ReplaceAllString(f.Rule, "-"), "-")
	if base == "" {
		base = "rule"
	}
	ruleID := fmt.Sprintf("%s.%s", base, f.Kind)

	if _, exists := r.ruleIndex[ruleID]; exists {
		return ruleID
	}

	description := kindDescriptions[f.Kind]
	if description == "" {
		description = fmt.Sprintf("Assertion chain violation of kind %s.", f.Kind)
	}

	driver := r.log.Runs[0].Tool.Driver
	driver.Rules = append(driver.Rules, &sarif.ReportingDescriptor{
		ID:               ruleID,
		Name:             pString(string(f.Kind)),
		ShortDescription: &sarif.MultiformatMessageString{Text: pString(description)},
		FullDescription:  &sarif.MultiformatMessageString{Text: pString(description)},
		Properties: &sarif.PropertyBag{
			"tags": []string{"correctness", "testing"},
		},
	})
	r.ruleIndex[ruleID] = len(driver.Rules) - 1

	r.logger.Debug("Registered SARIF rule descriptor", zap.String("rule_id", ruleID))
	return ruleID
}

// createLocations converts a finding's position into a SARIF location with
// a line/column region.
func createLocations(f findings.Finding) []*sarif.Location {
	region := &sarif.Region{
		StartLine:   f.Line,
		StartColumn: pInt(f.Column),
	}
	if f.Snippet != "" {
		region.Snippet = &sarif.ArtifactContent{Text: pString(f.Snippet)}
	}

	return []*sarif.Location{
		{
			PhysicalLocation: &sarif.PhysicalLocation{
				ArtifactLocation: &sarif.ArtifactLocation{
					URI: pString(filepath.ToSlash(f.File)),
				},
				Region: region,
			},
		},
	}
}

// mapSeverityToSARIFLevel converts the analyzer's severity to the SARIF
// standard levels.
func mapSeverityToSARIFLevel(severity findings.Severity) sarif.Level {
	switch severity {
	case findings.SeverityError:
		return sarif.LevelError
	case findings.SeverityWarning:
		return sarif.LevelWarning
	default:
		return sarif.LevelNote
	}
}

// pString returns a pointer to the given string. Helper for optional SARIF
// fields.
func pString(s string) *string {
	return &s
}

func pInt(i int) *int {
	return &i
}
