// Filename: expectchain/chain.go
// Chain reconstruction and modifier/matcher separation. ParseChain is shared
// infrastructure: other rules that need to understand an expect() chain
// should build on it rather than re-walking parents themselves.
package expectchain

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ChainLink is one member-access step following the initiating call
// (`.not`, `.toBe`). Member is the member_expression node, Property its
// property_identifier child.
type ChainLink struct {
	Member   *sitter.Node
	Property *sitter.Node
	Name     string
}

// IsModifier reports whether the link's name is in the recognized modifier
// set. Modifiers never assert anything on their own.
func (l ChainLink) IsModifier() bool {
	return knownModifiers[l.Name]
}

// ParsedAssertion is the read-only aggregate for one fully parsed assertion
// chain. It is only constructed when a matcher link exists.
type ParsedAssertion struct {
	// Links is the full chain in discovery order, innermost to outermost.
	Links []ChainLink
	// Matcher is the terminal link naming the assertion to perform.
	Matcher ChainLink
	// MatcherName is the matcher's property name.
	MatcherName string
	// Modifiers are the recognized non-terminal links, in discovery order.
	Modifiers []ChainLink
	// Arguments is the argument list of the call invoking the matcher.
	// Empty when the matcher is never called.
	Arguments []*sitter.Node
}

// chainLinks walks upward from the initiating call, collecting every
// member-access parent whose object is the previous step. The walk stops at
// the first non-member parent; a syntax tree's parent links are acyclic, so
// the depth cap only guards against degenerate machine-generated chains.
func chainLinks(call *sitter.Node, source []byte) []ChainLink {
	var links []ChainLink
	current := call
	for depth := 0; depth < maxChainDepth; depth++ {
		parent := current.Parent()
		if parent == nil || parent.Type() != nodeMemberExpression {
			return links
		}
		object := parent.ChildByFieldName("object")
		if !sameNode(object, current) {
			// The chain continues only through the object position; showing
			// up as e.g. a computed property index terminates it.
			return links
		}
		property := parent.ChildByFieldName("property")
		if property == nil || property.Type() != nodePropertyIdentifier {
			return links
		}
		links = append(links, ChainLink{
			Member:   parent,
			Property: property,
			Name:     NodeContent(property, source),
		})
		current = parent
	}
	return links
}

// ParseChain reconstructs the assertion chain hanging off an initiating call
// and separates modifiers from the matcher. It returns nil when no
// non-modifier link exists: the node is then not a validatable assertion and
// callers must skip it, which is deliberately not an error.
//
// When more than one non-modifier link exists the last one encountered wins
// as the matcher and earlier ones are discarded without diagnostic.
func ParseChain(call *sitter.Node, source []byte) *ParsedAssertion {
	if call == nil || call.Type() != nodeCallExpression {
		return nil
	}

	links := chainLinks(call, source)

	var modifiers []ChainLink
	var matcher *ChainLink
	for i := range links {
		if links[i].IsModifier() {
			modifiers = append(modifiers, links[i])
			continue
		}
		matcher = &links[i]
	}
	if matcher == nil {
		return nil
	}

	return &ParsedAssertion{
		Links:       links,
		Matcher:     *matcher,
		MatcherName: matcher.Name,
		Modifiers:   modifiers,
		Arguments:   matcherArguments(*matcher),
	}
}

// matcherArguments derives the argument list of the call that invokes the
// matcher. It succeeds only when the matcher's member access is itself the
// callee of a call expression; otherwise the list is empty.
func matcherArguments(matcher ChainLink) []*sitter.Node {
	parent := matcher.Member.Parent()
	if parent == nil || parent.Type() != nodeCallExpression {
		return nil
	}
	if !sameNode(parent.ChildByFieldName("function"), matcher.Member) {
		return nil
	}
	return extractArguments(parent.ChildByFieldName("arguments"))
}

// extractArguments flattens an arguments node into its expression children,
// skipping punctuation.
func extractArguments(argsNode *sitter.Node) []*sitter.Node {
	var args []*sitter.Node
	if argsNode == nil {
		return args
	}
	for i := 0; i < int(argsNode.ChildCount()); i++ {
		child := argsNode.Child(i)
		switch child.Type() {
		case "(", ")", ",", nodeComment:
		default:
			args = append(args, child)
		}
	}
	return args
}
