// Filename: expectchain/definitions.go
// Package expectchain validates expect(value).modifier.matcher(args)
// assertion chains in JavaScript and TypeScript test sources.
package expectchain

// Tree-sitter node kinds the analyzer dispatches on.
const (
	nodeCallExpression     = "call_expression"
	nodeMemberExpression   = "member_expression"
	nodeIdentifier         = "identifier"
	nodePropertyIdentifier = "property_identifier"
	nodeArguments          = "arguments"
	nodeComment            = "comment"
)

// entryIdentifier is the callee name that opens an assertion chain.
const entryIdentifier = "expect"

// maxChainDepth bounds the upward walk over member-access parents. Parent
// links in a syntax tree are acyclic, so the cap only guards against
// degenerate machine-generated chains.
const maxChainDepth = 128

// Modifier names recognized between the initiating call and the matcher.
// Modifiers never assert anything on their own.
const (
	modifierNot      = "not"
	modifierResolves = "resolves"
	modifierRejects  = "rejects"
)

var knownModifiers = map[string]bool{
	modifierNot:      true,
	modifierResolves: true,
	modifierRejects:  true,
}

// MessageKind identifies one of the fixed diagnostic messages.
type MessageKind string

const (
	// MatcherNotFound fires when nothing follows the initiating call, or
	// when the chain is exactly `expect(...).not`.
	MatcherNotFound MessageKind = "matcherNotFound"
	// MatcherNotCalled fires when a matcher is accessed but never invoked.
	MatcherNotCalled MessageKind = "matcherNotCalled"
	// NotEnoughArgs fires when the initiating call has fewer arguments than
	// the configured minimum.
	NotEnoughArgs MessageKind = "notEnoughArgs"
	// TooManyArgs fires when the initiating call has more arguments than
	// the configured maximum.
	TooManyArgs MessageKind = "tooManyArgs"
)

// messageTemplates maps each kind to its report template. {{key}}
// placeholders are substituted from Diagnostic.Data.
var messageTemplates = map[MessageKind]string{
	MatcherNotFound:  "Expect must have a corresponding matcher call.",
	MatcherNotCalled: "Matchers must be called to assert.",
	NotEnoughArgs:    "Expect requires at least {{amount}} argument{{s}}.",
	TooManyArgs:      "Expect takes at most {{amount}} argument{{s}}.",
}

// RuleName is the identifier reported for every diagnostic this package
// produces.
const RuleName = "valid-expect"
