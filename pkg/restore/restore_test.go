// pkg/restore/restore_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (testutil.EnvIsolated), pkg/snapshot
// PURPOSE: Test restore of files, directories and the symlink ledger into home

package restore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/restore"
	"github.com/arthur-debert/syncd/pkg/snapshot"
	"github.com/arthur-debert/syncd/pkg/testutil"
	"github.com/arthur-debert/syncd/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotAll(t *testing.T, env *testutil.TestEnvironment, specs ...string) {
	t.Helper()
	_, err := snapshot.Run(snapshot.Options{
		Paths:      specs,
		Home:       env.HomeDir,
		TreeRoot:   env.TreeRoot,
		FileSystem: env.FS,
	})
	require.NoError(t, err)
}

func restoreAll(t *testing.T, env *testutil.TestEnvironment, specs ...string) (*types.RunResult, *types.RecordingReporter) {
	t.Helper()
	reporter := &types.RecordingReporter{}
	result, err := restore.Run(restore.Options{
		Paths:      specs,
		Home:       env.HomeDir,
		TreeRoot:   env.TreeRoot,
		FileSystem: env.FS,
		Reporter:   reporter,
	})
	require.NoError(t, err)
	return result, reporter
}

func TestRun_FileRoundTrip(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	original := env.WriteHome(".config/x/f", "C\x00\nbytes")

	snapshotAll(t, env, "~/.config/x/f")
	require.NoError(t, os.RemoveAll(env.Home(".config")))
	testutil.AssertNoFile(t, original)

	result, _ := restoreAll(t, env, "~/.config/x/f")

	assert.Equal(t, types.OutcomeCopiedFile, result.Specs[0].Outcome)
	testutil.AssertFileContent(t, original, "C\x00\nbytes")
}

func TestRun_SymlinkRoundTripIndependentOfWorkingDirectory(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteHome(".config/b", "b content")
	env.LinkHome(".config/sub/a", "../b")
	before, err := filepath.EvalSymlinks(env.Home(".config/sub/a"))
	require.NoError(t, err)

	snapshotAll(t, env, "~/.config")
	require.NoError(t, os.RemoveAll(env.Home(".config")))

	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	restoreAll(t, env, "~/.config")

	link := env.Home(".config/sub/a")
	require.True(t, testutil.SymlinkExists(t, link), "restored entry must be a symlink, not a copy")

	after, err := filepath.EvalSymlinks(link)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, "b content", testutil.ReadFile(t, link))
}

func TestRun_DirectoryMirror(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteTree(".config/d/1", "one")
	env.WriteTree(".config/d/3", "three")
	env.WriteHome(".config/d/1", "local one")
	env.WriteHome(".config/d/2", "local two")

	result, _ := restoreAll(t, env, "~/.config/d")

	assert.Equal(t, types.OutcomeMirroredDir, result.Specs[0].Outcome)
	assert.Equal(t, map[string]string{
		".config/d/1": "one",
		".config/d/3": "three",
	}, testutil.TreeSnapshot(t, env.HomeDir))
}

func TestRun_ReplacesSymlinkAtDestination(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	outside := t.TempDir()
	testutil.CreateFile(t, outside, "keep", "must survive")
	env.LinkHome(".config/d", outside)
	env.WriteTree(".config/d/file", "from tree")

	restoreAll(t, env, "~/.config/d")

	assert.False(t, testutil.SymlinkExists(t, env.Home(".config/d")))
	testutil.AssertFileContent(t, env.Home(".config/d/file"), "from tree")
	testutil.AssertFileContent(t, filepath.Join(outside, "keep"), "must survive")
}

func TestRun_AbsentSpecSkipped(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteTree(".bashrc", "rc")

	result, reporter := restoreAll(t, env, "~/.config/missing", "~/.bashrc")

	assert.Equal(t, types.OutcomeSkipped, result.Specs[0].Outcome)
	assert.Equal(t, "it is not present in the repository", result.Specs[0].Reason)
	assert.Equal(t, types.OutcomeCopiedFile, result.Specs[1].Outcome)
	assert.Equal(t, []string{"~/.config/missing: it is not present in the repository"}, reporter.Skips)
}

func TestRun_OutsideHomeRejected(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	result, _ := restoreAll(t, env, "/etc/passwd")

	assert.Equal(t, types.OutcomeSkipped, result.Specs[0].Outcome)
	assert.True(t, errors.IsErrorCode(result.Specs[0].Err, errors.ErrConfiguration))
}

func TestRun_ScopedRestoreReplaysWholeLedger(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteHome(".config/one/file", "1")
	env.LinkHome(".config/one/link", "file")
	env.WriteHome(".config/two/file", "2")
	env.LinkHome(".config/two/link", "/usr/share/two")

	snapshotAll(t, env, "~/.config/one", "~/.config/two")
	require.NoError(t, os.RemoveAll(env.Home(".config")))

	result, _ := restoreAll(t, env, "~/.config/one")

	require.Len(t, result.Specs, 1)
	assert.Len(t, result.Symlinks, 2)
	testutil.AssertFileContent(t, env.Home(".config/one/file"), "1")
	testutil.AssertNoFile(t, env.Home(".config/two/file"))
	testutil.AssertSymlink(t, env.Home(".config/two/link"), "/usr/share/two")
	assert.True(t, testutil.SymlinkExists(t, env.Home(".config/one/link")))
}

func TestRun_ReplayCarriesRecordedLinkKind(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteHome("dotfiles/nvim/init.lua", "set number")
	env.LinkHome(".config/nvim", "../dotfiles/nvim")
	env.LinkHome(".config/theme", "/themes/dark")

	snapshotAll(t, env, "~/.config")
	require.NoError(t, os.RemoveAll(env.Home(".config")))
	require.NoError(t, os.RemoveAll(env.Home("dotfiles")))

	result, _ := restoreAll(t, env, "~/.config")

	kinds := map[string]bool{}
	for _, link := range result.Symlinks {
		require.NoError(t, link.Err)
		kinds[filepath.ToSlash(link.Path)] = link.IsDir
	}
	assert.Equal(t, map[string]bool{".config/nvim": true, ".config/theme": false}, kinds)
	assert.True(t, testutil.SymlinkExists(t, env.Home(".config/nvim")))
}

func TestRun_TopLevelSymlinkSpec(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.LinkHome(".gitconfig", "/etc/gitconfig")

	snapshotAll(t, env, "~/.gitconfig")
	require.NoError(t, os.Remove(env.Home(".gitconfig")))

	result, reporter := restoreAll(t, env, "~/.gitconfig")

	assert.Equal(t, types.OutcomeSymlink, result.Specs[0].Outcome)
	assert.Empty(t, reporter.Skips, "recorded symlinks are not reported as missing")
	testutil.AssertSymlink(t, env.Home(".gitconfig"), "/etc/gitconfig")
}

func TestRun_ReplayOverwritesExisting(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.LinkHome(".config/theme", "/themes/dark")
	snapshotAll(t, env, "~/.config/theme")

	require.NoError(t, os.Remove(env.Home(".config/theme")))
	env.WriteHome(".config/theme/stale", "directory in the way")
	restoreAll(t, env)
	testutil.AssertSymlink(t, env.Home(".config/theme"), "/themes/dark")

	require.NoError(t, os.Remove(env.Home(".config/theme")))
	env.LinkHome(".config/theme", "/themes/light")
	restoreAll(t, env)
	testutil.AssertSymlink(t, env.Home(".config/theme"), "/themes/dark")
}

func TestRun_MissingLedgerTolerated(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteTree(".bashrc", "rc")

	result, _ := restoreAll(t, env, "~/.bashrc")

	assert.Empty(t, result.Symlinks)
	testutil.AssertFileContent(t, env.Home(".bashrc"), "rc")
}

func TestRun_CorruptLedgerIsFatal(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteTree(".bashrc", "rc")
	env.WriteTree(".syncd/symlinks.json", "{not json")

	result, err := restore.Run(restore.Options{
		Paths:    []string{"~/.bashrc"},
		Home:     env.HomeDir,
		TreeRoot: env.TreeRoot,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLedgerCorrupt))
	testutil.AssertNoFile(t, env.Home(".bashrc"))
}

func TestRun_ReplayFailureDoesNotAbort(t *testing.T) {
	testutil.SkipIfRoot(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.LinkHome(".locked/link", "/x")
	env.LinkHome(".config/ok", "/y")
	snapshotAll(t, env, "~/.locked/link", "~/.config/ok")

	require.NoError(t, os.Remove(env.Home(".locked/link")))
	require.NoError(t, os.Remove(env.Home(".config/ok")))
	testutil.Chmod(t, env.Home(".locked"), 0555)
	t.Cleanup(func() { _ = os.Chmod(env.Home(".locked"), 0755) })

	result, reporter := restoreAll(t, env)

	failed := result.FailedLinks()
	require.Len(t, failed, 1)
	assert.Equal(t, filepath.Join(".locked", "link"), failed[0].Path)
	assert.Len(t, reporter.Skips, 1)
	testutil.AssertSymlink(t, env.Home(".config/ok"), "/y")
}

func TestRun_MissingTreeIsFatal(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	_, err := restore.Run(restore.Options{
		Paths:    []string{"~/.bashrc"},
		Home:     env.HomeDir,
		TreeRoot: filepath.Join(env.TreeRoot, "missing"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFatalIO))
}
