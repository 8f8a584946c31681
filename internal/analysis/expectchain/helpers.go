// Filename: expectchain/helpers.go
package expectchain

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// LocationInfo holds the resolved location and snippet of a diagnostic.
type LocationInfo struct {
	File    string
	Line    int
	Column  int
	Snippet string
}

func (l LocationInfo) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// NodeContent extracts the string content of a node from the source bytes.
func NodeContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(source)
}

// sameNode reports whether two nodes denote the same position in the tree.
// Node identity is structural: two handles to the same node always cover the
// same byte range, and no two distinct nodes returned by parent/child
// navigation share one.
func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

// FormatLocation converts a node position to a LocationInfo, including the
// trimmed source line as a snippet.
func FormatLocation(filename string, node *sitter.Node, source []byte) LocationInfo {
	if node == nil {
		return LocationInfo{File: filename, Snippet: "N/A"}
	}

	startByte := int(node.StartByte())
	endByte := int(node.EndByte())
	startPoint := node.StartPoint()

	snippet := "N/A"
	if endByte <= len(source) && startByte < endByte {
		lineStart := findLineStart(source, startByte)
		lineEnd := findLineEnd(source, startByte)
		if lineStart >= 0 && lineEnd > lineStart {
			snippet = strings.TrimSpace(string(source[lineStart:lineEnd]))
		} else {
			snippet = node.Content(source)
		}
	}

	return LocationInfo{
		File:    filename,
		Line:    int(startPoint.Row) + 1, // 0-indexed to 1-indexed
		Column:  int(startPoint.Column) + 1,
		Snippet: snippet,
	}
}

func findLineStart(source []byte, idx int) int {
	if idx >= len(source) {
		if len(source) == 0 {
			return 0
		}
		idx = len(source) - 1
	}
	if idx < 0 {
		return 0
	}
	for i := idx; i >= 0; i-- {
		if source[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

func findLineEnd(source []byte, idx int) int {
	for i := idx; i < len(source); i++ {
		if source[i] == '\n' {
			return i
		}
	}
	return len(source)
}
