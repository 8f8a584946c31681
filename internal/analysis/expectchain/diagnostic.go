// Filename: expectchain/diagnostic.go
package expectchain

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Diagnostic is one detected misuse of an assertion chain. It targets a
// specific node and is produced, never stored: the walker hands it straight
// to whatever sink consumes it.
type Diagnostic struct {
	Kind MessageKind
	Node *sitter.Node
	// Data holds template interpolation values (amount, pluralization
	// suffix). Nil for the chain diagnostics, which carry no data.
	Data map[string]string
}

// Message renders the fixed template for the diagnostic's kind,
// substituting {{key}} placeholders from Data.
func (d Diagnostic) Message() string {
	msg := messageTemplates[d.Kind]
	for key, value := range d.Data {
		msg = strings.ReplaceAll(msg, "{{"+key+"}}", value)
	}
	return msg
}

// Location resolves the diagnostic's target node against the file it came
// from.
func (d Diagnostic) Location(filename string, source []byte) LocationInfo {
	return FormatLocation(filename, d.Node, source)
}
