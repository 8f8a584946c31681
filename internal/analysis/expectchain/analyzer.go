// Filename: expectchain/analyzer.go
package expectchain

import (
	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"
)

// Analyzer validates expect() assertion chains. It holds no per-node state:
// the options are fixed for the lifetime of one analysis run and every call
// node is classified independently, so a single Analyzer is safe to share
// across files.
type Analyzer struct {
	logger *zap.Logger
	opts   Options
}

// NewAnalyzer creates an analyzer with the merged rule options.
func NewAnalyzer(opts Options, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		logger: logger.Named("expectchain"),
		opts:   opts,
	}
}

// Options returns the analyzer's effective rule options.
func (a *Analyzer) Options() Options {
	return a.opts
}

// isInitiatingCall reports whether the node is a call expression whose
// callee is the bare `expect` identifier. Member callees (x.expect(...))
// and other identifiers do not open an assertion chain.
func isInitiatingCall(node *sitter.Node, source []byte) bool {
	if node == nil || node.Type() != nodeCallExpression {
		return false
	}
	callee := node.ChildByFieldName("function")
	if callee == nil || callee.Type() != nodeIdentifier {
		return false
	}
	return NodeContent(callee, source) == entryIdentifier
}

// CheckCall classifies one call-expression node and returns the diagnostics
// for it. Non-initiating calls return nil immediately. The chain checks and
// the argument-count check are independent; both may contribute diagnostics
// for the same call, and each category fires at most once.
func (a *Analyzer) CheckCall(node *sitter.Node, source []byte) []Diagnostic {
	if !isInitiatingCall(node, source) {
		return nil
	}

	var diags []Diagnostic

	if found, offending := matcherFound(node, source); !found {
		diags = append(diags, Diagnostic{Kind: MatcherNotFound, Node: offending})
	} else if called, offending := matcherCalled(node); !called {
		diags = append(diags, Diagnostic{Kind: MatcherNotCalled, Node: offending})
	}

	diags = append(diags, checkArgumentCount(node, a.opts)...)

	return diags
}
