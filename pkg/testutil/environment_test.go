// pkg/testutil/environment_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test TestEnvironment orchestration

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnvironment_MemoryOnly(t *testing.T) {
	env := NewTestEnvironment(t, EnvMemoryOnly)

	env.WriteHome(".config/app/conf", "x")
	data, err := env.FS.ReadFile(env.Home(".config/app/conf"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestTestEnvironment_Isolated(t *testing.T) {
	env := NewTestEnvironment(t, EnvIsolated)

	assert.Equal(t, env.HomeDir, os.Getenv("HOME"))
	assert.Equal(t, env.ConfigDir, os.Getenv("SYNCD_CONFIG_DIR"))
	assert.DirExists(t, env.TreeRoot)

	env.WriteHome(".config/a/file", "content")
	env.LinkHome(".config/link", "a/file")

	AssertFileContent(t, env.Home(".config/a/file"), "content")
	AssertSymlink(t, env.Home(".config/link"), "a/file")
	assert.Equal(t, []string{".config/", ".config/a/", ".config/a/file", ".config/link@"}, TreeListing(t, env.HomeDir))
	assert.Equal(t, map[string]string{".config/a/file": "content"}, TreeSnapshot(t, env.HomeDir))
	assert.Equal(t, filepath.Join(env.TreeRoot, ".config", "a"), env.Tree(".config/a"))
}
