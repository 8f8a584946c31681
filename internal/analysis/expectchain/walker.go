// Filename: expectchain/walker.go
// The walker is the driver side of the analyzer contract: a single forward
// depth-first walk over a parsed file that hands every call-expression node
// to the analyzer exactly once.
package expectchain

import (
	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/xkilldash9x/expectlint/internal/source"
)

// Walker traverses one file's tree and collects the diagnostics the
// analyzer produces. A walker is single-use and single-threaded; the
// concurrent engine creates one per file.
type Walker struct {
	logger      *zap.Logger
	analyzer    *Analyzer
	filename    string
	source      []byte
	diagnostics []Diagnostic
}

// NewWalker creates a walker for one file's source.
func NewWalker(analyzer *Analyzer, filename string, src []byte, logger *zap.Logger) *Walker {
	return &Walker{
		logger:   logger.Named("walker"),
		analyzer: analyzer,
		filename: filename,
		source:   src,
	}
}

// Diagnostics returns the diagnostics collected so far, in visit order.
func (w *Walker) Diagnostics() []Diagnostic {
	return w.diagnostics
}

// Walk visits nodes depth-first. A malformed call never aborts the walk:
// its diagnostics are recorded and traversal continues with the next node.
func (w *Walker) Walk(node *sitter.Node) {
	if node == nil || node.IsNull() {
		return
	}

	if node.Type() == nodeCallExpression {
		if diags := w.analyzer.CheckCall(node, w.source); len(diags) > 0 {
			for _, d := range diags {
				w.logger.Debug("Assertion chain misuse detected",
					zap.String("kind", string(d.Kind)),
					zap.String("location", d.Location(w.filename, w.source).String()),
				)
			}
			w.diagnostics = append(w.diagnostics, diags...)
		}
	}

	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if ok := cursor.GoToFirstChild(); ok {
		for {
			w.Walk(cursor.CurrentNode())
			if ok := cursor.GoToNextSibling(); !ok {
				break
			}
		}
	}
}

// AnalyzeFile runs a fresh walk over a parsed file and returns its
// diagnostics.
func (a *Analyzer) AnalyzeFile(f *source.File) []Diagnostic {
	walker := NewWalker(a, f.Path, f.Source, a.logger)
	walker.Walk(f.Root())
	return walker.Diagnostics()
}
