// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments with isolated home and working tree

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/syncd/pkg/filesystem"
	"github.com/arthur-debert/syncd/pkg/paths"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a home directory and a working tree for one test
type TestEnvironment struct {
	// Core paths
	HomeDir   string
	TreeRoot  string
	ConfigDir string
	StateDir  string

	FS filesystem.FS

	// Environment type
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment.
// HOME, XDG_STATE_HOME and SYNCD_CONFIG_DIR point into the environment so
// nothing leaks into the real user's configuration.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.HomeDir = "/virtual/home"
		env.TreeRoot = "/virtual/tree"
		env.ConfigDir = "/virtual/home/.config/syncd"
		env.StateDir = "/virtual/home/.local/state"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		root := t.TempDir()
		env.HomeDir = filepath.Join(root, "home")
		env.TreeRoot = filepath.Join(root, "tree")
		env.ConfigDir = filepath.Join(root, "config")
		env.StateDir = filepath.Join(root, "state")
		env.FS = filesystem.NewOS()
	}

	for _, dir := range []string{env.HomeDir, env.TreeRoot, env.ConfigDir, env.StateDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	if envType == EnvIsolated {
		t.Setenv(paths.EnvHome, env.HomeDir)
		t.Setenv(paths.EnvStateHome, env.StateDir)
		t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	}

	return env
}

// Home returns the absolute location of a home-relative path
func (env *TestEnvironment) Home(rel string) string {
	return filepath.Join(env.HomeDir, filepath.FromSlash(rel))
}

// Tree returns the absolute location of a working-tree-relative path
func (env *TestEnvironment) Tree(rel string) string {
	return filepath.Join(env.TreeRoot, filepath.FromSlash(rel))
}

// WriteHome creates a file under the home directory
func (env *TestEnvironment) WriteHome(rel, content string) string {
	env.t.Helper()
	return env.write(env.Home(rel), content)
}

// WriteTree creates a file under the working tree
func (env *TestEnvironment) WriteTree(rel, content string) string {
	env.t.Helper()
	return env.write(env.Tree(rel), content)
}

// LinkHome creates a symlink under the home directory with a verbatim target
func (env *TestEnvironment) LinkHome(rel, target string) string {
	env.t.Helper()
	link := env.Home(rel)
	if err := env.FS.MkdirAll(filepath.Dir(link), 0755); err != nil {
		env.t.Fatalf("Failed to create parent directory for symlink %s: %v", link, err)
	}
	if err := env.FS.Symlink(target, link); err != nil {
		env.t.Fatalf("Failed to create symlink %s -> %s: %v", link, target, err)
	}
	return link
}

func (env *TestEnvironment) write(path, content string) string {
	env.t.Helper()
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}
