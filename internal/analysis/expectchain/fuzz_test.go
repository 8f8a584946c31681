// Filename: expectchain/fuzz_test.go
package expectchain

import (
	"context"
	"testing"

	fuzzheaders "github.com/AdaLogics/go-fuzz-headers"
	"go.uber.org/zap"

	"github.com/xkilldash9x/expectlint/internal/source"
)

// FuzzAnalyzeFile asserts the analyzer's robustness contract: arbitrary
// input may yield diagnostics or none, but never a panic, and every
// produced diagnostic must render a message and resolve a location.
func FuzzAnalyzeFile(f *testing.F) {
	seeds := []string{
		`expect(foo).toBe(1);`,
		`expect(foo);`,
		`expect(foo).not;`,
		`expect(foo).not.toBe;`,
		`expect().resolves.not.toEqual({a: [1, 2]});`,
		`expect(a, b, c).toHaveLength(3);`,
		`expect(foo)["toBe"](1);`,
		`expect(expect(x).toBe).toBe(1);`,
		"function {{{ expect(",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		consumer := fuzzheaders.NewConsumer(data)

		src, err := consumer.GetString()
		if err != nil {
			t.Skip()
		}
		minArgs, err := consumer.GetInt()
		if err != nil {
			minArgs = 1
		}
		maxArgs, err := consumer.GetInt()
		if err != nil {
			maxArgs = 2
		}

		parser := source.NewParser(zap.NewNop(), 1<<20)
		file, err := parser.Parse(context.Background(), "fuzz.spec.js", []byte(src))
		if err != nil {
			t.Skip()
		}
		defer file.Close()

		analyzer := NewAnalyzer(Options{
			MinArgs: minArgs%16 + 1,
			MaxArgs: maxArgs%16 + 1,
		}, zap.NewNop())

		for _, d := range analyzer.AnalyzeFile(file) {
			if d.Message() == "" {
				t.Fatalf("diagnostic %s rendered an empty message", d.Kind)
			}
			loc := d.Location(file.Path, file.Source)
			if loc.Line < 1 || loc.Column < 1 {
				t.Fatalf("diagnostic %s resolved to invalid location %s", d.Kind, loc)
			}
		}
	})
}
