// File: internal/discovery/gitdiff.go
package discovery

import (
	"fmt"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"go.uber.org/zap"
)

// ChangedOnly restricts a discovered candidate set to files the enclosing
// git worktree reports as modified, added, or untracked. Files outside the
// repository, or an unborn repository, simply yield an empty result; a
// missing repository is an operational error because --changed was asked
// for explicitly.
func ChangedOnly(repoRoot string, candidates []string, logger *zap.Logger) ([]string, error) {
	log := logger.Named("discovery")

	repo, err := git.PlainOpenWithOptions(repoRoot, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", repoRoot, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to compute worktree status: %w", err)
	}

	// Status keys are slash-separated paths relative to the worktree root.
	changed := make(map[string]bool, len(status))
	for path, st := range status {
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		changed[path] = true
	}

	wtRoot := worktree.Filesystem.Root()
	var kept []string
	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(wtRoot, abs)
		if err != nil {
			continue
		}
		if changed[filepath.ToSlash(rel)] {
			kept = append(kept, candidate)
		}
	}

	log.Debug("Changed-files filter applied",
		zap.Int("candidates", len(candidates)),
		zap.Int("kept", len(kept)),
	)
	return kept, nil
}
