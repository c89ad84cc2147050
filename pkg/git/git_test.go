// pkg/git/git_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: git binary, real filesystem (t.TempDir)
// PURPOSE: Test clone, commit/push and remote verification against a local bare repository

package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	t.Setenv("GIT_AUTHOR_NAME", "syncd test")
	t.Setenv("GIT_AUTHOR_EMAIL", "syncd@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "syncd test")
	t.Setenv("GIT_COMMITTER_EMAIL", "syncd@example.com")
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
}

func bareRemote(t *testing.T) string {
	t.Helper()
	remote := filepath.Join(t.TempDir(), "remote.git")
	out, err := exec.Command("git", "init", "--bare", remote).CombinedOutput()
	require.NoError(t, err, string(out))
	return remote
}

func TestParseGitlinks(t *testing.T) {
	listing := "100644 aaaa 0\t.config/a\n" +
		"160000 bbbb 0\t.config/nvim/pack/plugin\n" +
		"120000 cccc 0\tlink\n"
	assert.Equal(t, []string{".config/nvim/pack/plugin"}, parseGitlinks(listing))
	assert.Empty(t, parseGitlinks(""))
}

func TestCloneCommitPush_EmptyRemote(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	client := New()
	remote := bareRemote(t)
	work := filepath.Join(t.TempDir(), "repo")

	require.NoError(t, client.Clone(ctx, remote, "main", work))
	require.NoError(t, os.WriteFile(filepath.Join(work, ".bashrc"), []byte("rc"), 0644))

	committed, err := client.CommitAndPush(ctx, work, "Automated backup", "main")
	require.NoError(t, err)
	assert.True(t, committed)

	committed, err = client.CommitAndPush(ctx, work, "Automated backup", "main")
	require.NoError(t, err)
	assert.False(t, committed, "nothing changed")

	require.NoError(t, client.VerifyRemote(ctx, remote, "main"))

	again := filepath.Join(t.TempDir(), "again")
	require.NoError(t, client.Clone(ctx, remote, "main", again))
	data, err := os.ReadFile(filepath.Join(again, ".bashrc"))
	require.NoError(t, err)
	assert.Equal(t, "rc", string(data))
}

func TestVerifyRemote_MissingBranch(t *testing.T) {
	requireGit(t)
	remote := bareRemote(t)

	err := New().VerifyRemote(context.Background(), remote, "does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGitRemote))
}

func TestClone_BadRemote(t *testing.T) {
	requireGit(t)
	work := filepath.Join(t.TempDir(), "repo")

	err := New().Clone(context.Background(), filepath.Join(t.TempDir(), "missing.git"), "main", work)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGitClone))
}
