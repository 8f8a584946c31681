// Filename: expectchain/classifier.go
// The chain classifier answers two independent questions about an initiating
// call: does a matcher exist at all, and is the chain ultimately invoked.
package expectchain

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// matcherFound performs the shallow matcher-presence check. It detects the
// "completely missing matcher" and "bare .not" cases only; deeper chains
// pass and are then subject to matcherCalled. On failure the returned node
// is where the diagnostic should point: the initiating call itself when
// nothing follows it, or the incomplete .not member access.
func matcherFound(call *sitter.Node, source []byte) (bool, *sitter.Node) {
	parent := call.Parent()
	if parent == nil || parent.Type() != nodeMemberExpression || !sameNode(parent.ChildByFieldName("object"), call) {
		return false, call
	}

	property := parent.ChildByFieldName("property")
	if property != nil && NodeContent(property, source) == modifierNot {
		grandparent := parent.Parent()
		if grandparent == nil || grandparent.Type() != nodeMemberExpression {
			// The chain is exactly `expect(...).not` with nothing after.
			return false, parent
		}
	}

	return true, nil
}

// matcherCalled checks that the chain terminates in an actual invocation.
// It walks up through member-access parents to the outermost link, then
// requires that link's parent to be a call expression whose callee is the
// link itself. The callee identity check matters: the outermost link merely
// appearing as an argument to some call must not count as invocation.
//
// The returned node is the deepest node reached, i.e. the outermost link,
// which is where a "matcher must be called" diagnostic points.
func matcherCalled(call *sitter.Node) (bool, *sitter.Node) {
	current := call
	for depth := 0; depth < maxChainDepth; depth++ {
		parent := current.Parent()
		if parent != nil && parent.Type() == nodeMemberExpression && sameNode(parent.ChildByFieldName("object"), current) {
			current = parent
			continue
		}

		called := parent != nil &&
			parent.Type() == nodeCallExpression &&
			sameNode(parent.ChildByFieldName("function"), current)
		return called, current
	}
	// Depth cap hit; treat the chain as not called and point at the last
	// link reached.
	return false, current
}
