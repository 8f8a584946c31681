// File: internal/source/source.go
// Package source turns JavaScript and TypeScript test files into parse
// trees. It is the only place in the repository that touches tree-sitter
// grammars; everything downstream consumes the resulting *File.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"go.uber.org/zap"
)

// Sentinel errors callers branch on with errors.Is.
var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
)

// Language identifies the grammar used to parse a file.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
)

// LanguageForPath maps a file extension to its grammar. The second return
// value is false for files this tool does not analyze.
func LanguageForPath(path string) (Language, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs", ".jsx":
		return LangJavaScript, true
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	default:
		return "", false
	}
}

func grammarFor(lang Language) *sitter.Language {
	switch lang {
	case LangTypeScript:
		return typescript.GetLanguage()
	case LangTSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// File bundles a parsed source file with its owning tree. Close must be
// called to release the tree; the root node is invalid afterwards.
type File struct {
	Path     string
	Language Language
	Source   []byte

	tree *sitter.Tree
}

// Root returns the root node of the parse tree.
func (f *File) Root() *sitter.Node {
	if f.tree == nil {
		return nil
	}
	return f.tree.RootNode()
}

// Close releases the underlying tree-sitter tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Parser parses source files into trees, guarding against oversized and
// non-UTF-8 input before handing bytes to the grammar.
type Parser struct {
	logger      *zap.Logger
	maxFileSize int64
}

// NewParser creates a parser. maxFileSize bounds accepted input in bytes;
// values <= 0 disable the guard.
func NewParser(logger *zap.Logger, maxFileSize int64) *Parser {
	return &Parser{
		logger:      logger.Named("parser"),
		maxFileSize: maxFileSize,
	}
}

// Parse builds the tree for one file. The language is selected from the
// path extension. A tree with syntax errors is still returned: partial
// trees are useful, and broken regions simply yield no assertion chains.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*File, error) {
	lang, ok := LanguageForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	if p.maxFileSize > 0 && int64(len(content)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, path, len(content), p.maxFileSize)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEncoding, path)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammarFor(lang))

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter failed to parse %s: %w", path, err)
	}

	if tree.RootNode().HasError() {
		p.logger.Debug("Syntax errors in source; analysis proceeds on the partial tree",
			zap.String("file", path),
			zap.String("language", string(lang)),
		)
	}

	return &File{
		Path:     path,
		Language: lang,
		Source:   content,
		tree:     tree,
	}, nil
}
