// File: internal/discovery/discovery.go
// Package discovery finds the test files an analysis run should cover.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/expectlint/internal/config"
	"github.com/xkilldash9x/expectlint/internal/source"
)

// testFileMarkers are the filename conventions that mark a file as a test.
// A file inside a __tests__ directory qualifies regardless of its name.
var testFileMarkers = []string{".test.", ".spec."}

// Discover walks the requested roots and returns the candidate test files,
// in walk order. Roots that name a file directly are accepted without the
// test-name convention check; directories are walked recursively, always
// skipping node_modules and dot-directories.
func Discover(ctx context.Context, cfg config.DiscoveryConfig, roots []string, logger *zap.Logger) ([]string, error) {
	log := logger.Named("discovery")
	var files []string

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			name := d.Name()
			if d.IsDir() {
				if path != root && (name == "node_modules" || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				return nil
			}

			explicit := path == root
			if !explicit && !isTestFile(path) {
				return nil
			}
			if _, ok := source.LanguageForPath(path); !ok {
				return nil
			}
			if !matchesFilters(path, cfg.Include, cfg.Exclude) {
				return nil
			}

			// Enforce the size guard early so the engine never reads a
			// file it would refuse to parse anyway.
			if info, err := d.Info(); err == nil && cfg.MaxFileSize > 0 && info.Size() > cfg.MaxFileSize {
				log.Debug("Skipping oversized file",
					zap.String("file", path),
					zap.Int64("size_bytes", info.Size()),
					zap.Int64("limit_bytes", cfg.MaxFileSize),
				)
				return nil
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	log.Debug("Discovery complete", zap.Int("files", len(files)))
	return files, nil
}

// isTestFile applies the naming conventions: *.test.*, *.spec.*, or any
// file under a __tests__ subtree.
func isTestFile(path string) bool {
	base := filepath.Base(path)
	for _, marker := range testFileMarkers {
		if strings.Contains(base, marker) {
			return true
		}
	}
	dir := filepath.ToSlash(filepath.Dir(path))
	return strings.HasSuffix(dir, "/__tests__") || strings.Contains(dir, "/__tests__/") || dir == "__tests__" || strings.HasPrefix(dir, "__tests__/")
}

// matchesFilters applies the include/exclude glob lists from config.
// Globs match against the file's base name or its slash-separated path.
// An empty include list admits everything; exclude wins over include.
func matchesFilters(path string, include, exclude []string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)

	matches := func(pattern string) bool {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		ok, _ := filepath.Match(pattern, slashed)
		return ok
	}

	for _, pattern := range exclude {
		if matches(pattern) {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, pattern := range include {
		if matches(pattern) {
			return true
		}
	}
	return false
}
