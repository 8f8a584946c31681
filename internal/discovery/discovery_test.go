// File: internal/discovery/discovery_test.go
package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/expectlint/internal/config"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	var out []string
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func defaultDiscoveryConfig() config.DiscoveryConfig {
	return config.DiscoveryConfig{MaxFileSize: 2 * 1024 * 1024}
}

func TestDiscover_WalksConventions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/math.test.js", "expect(1).toBe(1);")
	writeFile(t, root, "src/api.spec.ts", "expect(1).toBe(1);")
	writeFile(t, root, "src/__tests__/helpers.js", "expect(1).toBe(1);")
	writeFile(t, root, "src/math.js", "module.exports = {};")
	writeFile(t, root, "src/readme.test.md", "not code")
	writeFile(t, root, "node_modules/pkg/pkg.test.js", "ignored")
	writeFile(t, root, ".git/hooks/x.test.js", "ignored")

	files, err := Discover(context.Background(), defaultDiscoveryConfig(), []string{root}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"src/math.test.js",
		"src/api.spec.ts",
		"src/__tests__/helpers.js",
	}, relPaths(t, root, files))
}

func TestDiscover_ExplicitFileBypassesNameConvention(t *testing.T) {
	root := t.TempDir()
	plain := writeFile(t, root, "plain.js", "expect(1);")

	files, err := Discover(context.Background(), defaultDiscoveryConfig(), []string{plain}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{plain}, files)

	// Still gated on a supported extension.
	md := writeFile(t, root, "notes.md", "# notes")
	files, err = Discover(context.Background(), defaultDiscoveryConfig(), []string{md}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscover_IncludeExcludeFilters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.test.js", "x")
	writeFile(t, root, "b.test.js", "x")
	writeFile(t, root, "c.spec.ts", "x")

	cfg := defaultDiscoveryConfig()
	cfg.Include = []string{"*.test.js"}
	cfg.Exclude = []string{"b.test.js"}

	files, err := Discover(context.Background(), cfg, []string{root}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.test.js"}, relPaths(t, root, files))
}

func TestDiscover_SkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.test.js", "expect(1).toBe(1);")
	writeFile(t, root, "large.test.js", string(make([]byte, 256)))

	cfg := defaultDiscoveryConfig()
	cfg.MaxFileSize = 64

	files, err := Discover(context.Background(), cfg, []string{root}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"small.test.js"}, relPaths(t, root, files))
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(context.Background(), defaultDiscoveryConfig(), []string{filepath.Join(t.TempDir(), "gone")}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestDiscover_CanceledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.test.js", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, defaultDiscoveryConfig(), []string{root}, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsTestFile(t *testing.T) {
	assert.True(t, isTestFile(filepath.FromSlash("src/a.test.js")))
	assert.True(t, isTestFile(filepath.FromSlash("src/a.spec.tsx")))
	assert.True(t, isTestFile(filepath.FromSlash("src/__tests__/a.js")))
	assert.True(t, isTestFile(filepath.FromSlash("__tests__/a.js")))
	assert.False(t, isTestFile(filepath.FromSlash("src/a.js")))
	assert.False(t, isTestFile(filepath.FromSlash("src/testing/a.js")))
}
