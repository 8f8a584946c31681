// File: internal/findings/findings.go
// Package findings is the reporting boundary of the analysis: diagnostics
// from the core become Findings here, get collected across files, and are
// aggregated into the Run that reporters and the history store consume.
package findings

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xkilldash9x/expectlint/internal/analysis/expectchain"
)

// Severity classifies how a finding affects the run outcome.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank orders severities for sorting and threshold checks. Higher is more
// severe; unknown severities rank lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Finding is one reported rule violation, located in a file.
type Finding struct {
	ID       string                  `json:"id"`
	RunID    string                  `json:"run_id"`
	Rule     string                  `json:"rule"`
	Kind     expectchain.MessageKind `json:"kind"`
	Severity Severity                `json:"severity"`
	Message  string                  `json:"message"`
	File     string                  `json:"file"`
	Line     int                     `json:"line"`
	Column   int                     `json:"column"`
	Snippet  string                  `json:"snippet,omitempty"`
	// Fingerprint is a stable content hash used to correlate the same
	// finding across runs; it must not depend on RunID or ID.
	Fingerprint string    `json:"fingerprint"`
	ObservedAt  time.Time `json:"observed_at"`
}

// FromDiagnostic converts a core diagnostic into a Finding. All four
// message kinds of the valid-expect rule default to error severity.
func FromDiagnostic(runID string, d expectchain.Diagnostic, filename string, src []byte) Finding {
	loc := d.Location(filename, src)
	f := Finding{
		ID:         uuid.NewString(),
		RunID:      runID,
		Rule:       expectchain.RuleName,
		Kind:       d.Kind,
		Severity:   SeverityError,
		Message:    d.Message(),
		File:       loc.File,
		Line:       loc.Line,
		Column:     loc.Column,
		Snippet:    loc.Snippet,
		ObservedAt: time.Now().UTC(),
	}
	f.Fingerprint = fingerprint(f)
	return f
}

// fingerprint hashes the identity-bearing fields of a finding.
func fingerprint(f Finding) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%d|%s", f.Rule, f.Kind, f.File, f.Line, f.Message)
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Summary aggregates counts over a run's findings.
type Summary struct {
	Total      int                             `json:"total"`
	BySeverity map[Severity]int                `json:"by_severity"`
	ByKind     map[expectchain.MessageKind]int `json:"by_kind"`
}

// Run is the complete outcome of one analysis run.
type Run struct {
	RunID        string    `json:"run_id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	FilesScanned int       `json:"files_scanned"`
	FilesFailed  int       `json:"files_failed"`
	Findings     []Finding `json:"findings"`
	Summary      Summary   `json:"summary"`
}

// HasAtOrAbove reports whether any finding meets the given severity. Used
// for the --fail-on exit-status decision.
func (r *Run) HasAtOrAbove(threshold Severity) bool {
	for _, f := range r.Findings {
		if f.Severity.Rank() >= threshold.Rank() {
			return true
		}
	}
	return false
}

func summarize(findings []Finding) Summary {
	s := Summary{
		Total:      len(findings),
		BySeverity: make(map[Severity]int),
		ByKind:     make(map[expectchain.MessageKind]int),
	}
	for _, f := range findings {
		s.BySeverity[f.Severity]++
		s.ByKind[f.Kind]++
	}
	return s
}
