package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmkit/cpmkit/internal/adapters/outbound/gitinfo"
)

func initRepoWithCommit(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("content"), 0o644))
	tree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = tree.Add("file.txt")
	require.NoError(t, err)

	hash, err := tree.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	require.NoError(t, err)
	return dir, hash.String()
}

func TestCommitHash(t *testing.T) {
	dir, want := initRepoWithCommit(t)

	hash, err := gitinfo.New().CommitHash(dir)

	require.NoError(t, err)
	assert.Equal(t, want, hash)
}

func TestCommitHash_NotARepo(t *testing.T) {
	_, err := gitinfo.New().CommitHash(t.TempDir())
	assert.Error(t, err)
}

func TestIsGitRepo(t *testing.T) {
	dir, _ := initRepoWithCommit(t)

	assert.True(t, gitinfo.New().IsGitRepo(dir))
	assert.False(t, gitinfo.New().IsGitRepo(t.TempDir()))
}
