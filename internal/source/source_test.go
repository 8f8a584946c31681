// File: internal/source/source_test.go
package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLanguageForPath(t *testing.T) {
	testCases := []struct {
		path string
		lang Language
		ok   bool
	}{
		{"app.test.js", LangJavaScript, true},
		{"app.spec.mjs", LangJavaScript, true},
		{"legacy.cjs", LangJavaScript, true},
		{"component.spec.jsx", LangJavaScript, true},
		{"service.spec.ts", LangTypeScript, true},
		{"service.spec.mts", LangTypeScript, true},
		{"service.spec.cts", LangTypeScript, true},
		{"view.spec.tsx", LangTSX, true},
		{"UPPER.SPEC.TS", LangTypeScript, true},
		{"readme.md", "", false},
		{"styles.css", "", false},
		{"noextension", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			lang, ok := LanguageForPath(tc.path)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.lang, lang)
		})
	}
}

func TestParser_Parse(t *testing.T) {
	parser := NewParser(zaptest.NewLogger(t), 0)

	file, err := parser.Parse(context.Background(), "ok.spec.js", []byte(`expect(foo).toBe(1);`))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, LangJavaScript, file.Language)
	require.NotNil(t, file.Root())
	assert.Equal(t, "program", file.Root().Type())
	assert.False(t, file.Root().HasError())
}

func TestParser_Parse_Guards(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		parser := NewParser(zaptest.NewLogger(t), 0)
		_, err := parser.Parse(context.Background(), "notes.txt", []byte(`hello`))
		assert.ErrorIs(t, err, ErrUnsupportedFile)
	})

	t.Run("oversized input", func(t *testing.T) {
		parser := NewParser(zaptest.NewLogger(t), 8)
		_, err := parser.Parse(context.Background(), "big.spec.js", []byte(`expect(foo).toBe(1);`))
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("size guard disabled when non-positive", func(t *testing.T) {
		parser := NewParser(zaptest.NewLogger(t), 0)
		file, err := parser.Parse(context.Background(), "big.spec.js", []byte(`expect(foo).toBe(1);`))
		require.NoError(t, err)
		file.Close()
	})

	t.Run("invalid utf8", func(t *testing.T) {
		parser := NewParser(zaptest.NewLogger(t), 0)
		_, err := parser.Parse(context.Background(), "bin.spec.js", []byte{0xff, 0xfe, 0x00})
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})
}

func TestParser_Parse_PartialTree(t *testing.T) {
	parser := NewParser(zaptest.NewLogger(t), 0)

	file, err := parser.Parse(context.Background(), "broken.spec.js", []byte("expect(foo).toBe(1);\nfunction {{{"))
	require.NoError(t, err)
	defer file.Close()

	assert.True(t, file.Root().HasError())
}

func TestFile_CloseIsIdempotent(t *testing.T) {
	parser := NewParser(zaptest.NewLogger(t), 0)
	file, err := parser.Parse(context.Background(), "x.spec.ts", []byte(`const a: number = 1;`))
	require.NoError(t, err)

	file.Close()
	file.Close()
	assert.Nil(t, file.Root())
}
