// File: internal/discovery/gitdiff_test.go
package discovery

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func initRepo(t *testing.T) (string, *git.Worktree) {
	t.Helper()
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	return root, worktree
}

func commitAll(t *testing.T, worktree *git.Worktree, msg string) {
	t.Helper()
	_, err := worktree.Add(".")
	require.NoError(t, err)
	_, err = worktree.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestChangedOnly(t *testing.T) {
	root, worktree := initRepo(t)

	clean := writeFile(t, root, "clean.test.js", "expect(a).toBe(1);")
	modified := writeFile(t, root, "modified.test.js", "expect(b).toBe(1);")
	commitAll(t, worktree, "initial")

	// One committed file is edited, one new file appears untracked.
	require.NoError(t, os.WriteFile(modified, []byte("expect(b).toBe(2);"), 0o644))
	fresh := writeFile(t, root, "fresh.test.js", "expect(c);")

	kept, err := ChangedOnly(root, []string{clean, modified, fresh}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{modified, fresh}, kept)
}

func TestChangedOnly_CleanWorktree(t *testing.T) {
	root, worktree := initRepo(t)
	clean := writeFile(t, root, "clean.test.js", "expect(a).toBe(1);")
	commitAll(t, worktree, "initial")

	kept, err := ChangedOnly(root, []string{clean}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Empty(t, kept)
}

func TestChangedOnly_CandidateOutsideWorktree(t *testing.T) {
	root, worktree := initRepo(t)
	writeFile(t, root, "a.test.js", "x")
	commitAll(t, worktree, "initial")

	outside := writeFile(t, t.TempDir(), "outside.test.js", "x")
	kept, err := ChangedOnly(root, []string{outside}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Empty(t, kept)
}

func TestChangedOnly_NoRepository(t *testing.T) {
	root := t.TempDir()
	_, err := ChangedOnly(root, []string{filepath.Join(root, "a.test.js")}, zaptest.NewLogger(t))
	assert.Error(t, err)
}
