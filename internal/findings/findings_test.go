// File: internal/findings/findings_test.go
package findings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/expectlint/internal/analysis/expectchain"
)

func TestSeverityRank(t *testing.T) {
	assert.Greater(t, SeverityError.Rank(), SeverityWarning.Rank())
	assert.Greater(t, SeverityWarning.Rank(), SeverityInfo.Rank())
	assert.Greater(t, SeverityInfo.Rank(), Severity("bogus").Rank())
}

func TestFromDiagnostic(t *testing.T) {
	src := []byte(`expect(foo);`)
	diag := expectchain.Diagnostic{Kind: expectchain.MatcherNotFound}

	f := FromDiagnostic("run-1", diag, "a.spec.js", src)

	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "run-1", f.RunID)
	assert.Equal(t, expectchain.RuleName, f.Rule)
	assert.Equal(t, expectchain.MatcherNotFound, f.Kind)
	assert.Equal(t, SeverityError, f.Severity)
	assert.Equal(t, "Expect must have a corresponding matcher call.", f.Message)
	assert.Equal(t, "a.spec.js", f.File)
	assert.Regexp(t, "^[0-9a-f]{16}$", f.Fingerprint)
	assert.False(t, f.ObservedAt.IsZero())
}

func TestFingerprint_StableAcrossRuns(t *testing.T) {
	src := []byte(`expect(foo);`)
	diag := expectchain.Diagnostic{Kind: expectchain.MatcherNotFound}

	a := FromDiagnostic("run-1", diag, "a.spec.js", src)
	b := FromDiagnostic("run-2", diag, "a.spec.js", src)
	c := FromDiagnostic("run-1", diag, "b.spec.js", src)

	// Identity excludes the run and finding IDs, includes the file.
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRunHasAtOrAbove(t *testing.T) {
	run := &Run{
		Findings: []Finding{
			{Severity: SeverityWarning},
			{Severity: SeverityInfo},
		},
	}

	assert.False(t, run.HasAtOrAbove(SeverityError))
	assert.True(t, run.HasAtOrAbove(SeverityWarning))
	assert.True(t, run.HasAtOrAbove(SeverityInfo))

	empty := &Run{}
	assert.False(t, empty.HasAtOrAbove(SeverityInfo))
}

func TestSummarize(t *testing.T) {
	items := []Finding{
		{Severity: SeverityError, Kind: expectchain.MatcherNotFound},
		{Severity: SeverityError, Kind: expectchain.TooManyArgs},
		{Severity: SeverityWarning, Kind: expectchain.MatcherNotFound},
	}

	s := summarize(items)
	require.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.BySeverity[SeverityError])
	assert.Equal(t, 1, s.BySeverity[SeverityWarning])
	assert.Equal(t, 2, s.ByKind[expectchain.MatcherNotFound])
	assert.Equal(t, 1, s.ByKind[expectchain.TooManyArgs])
}

func TestSummarize_Empty(t *testing.T) {
	s := summarize(nil)
	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.BySeverity)
	assert.Empty(t, s.ByKind)
}
