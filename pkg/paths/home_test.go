// pkg/paths/home_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test tilde expansion and home-relative path resolution

package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const home = "/home/alice"

func TestExpandTilde(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want string
	}{
		{"bare tilde", "~", home},
		{"tilde slash", "~/.config/nvim", "/home/alice/.config/nvim"},
		{"trailing slash cleaned", "~/.config/nvim/", "/home/alice/.config/nvim"},
		{"absolute untouched", "/etc/passwd", "/etc/passwd"},
		{"other user untouched", "~bob/.bashrc", "~bob/.bashrc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), paths.ExpandTilde(tt.spec, home))
		})
	}
}

func TestHomeRelative(t *testing.T) {
	rel, err := paths.HomeRelative("/home/alice/.config/nvim", home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".config", "nvim"), rel)

	rejected := []string{
		"/home/alice",
		"/home/alicebob/.bashrc",
		"/home/alice/../bob/.bashrc",
		"/etc/passwd",
		"relative/path",
	}
	for _, abs := range rejected {
		t.Run(abs, func(t *testing.T) {
			_, err := paths.HomeRelative(abs, home)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
		})
	}
}

func TestResolve(t *testing.T) {
	r, err := paths.Resolve("~/.config/hypr", home)
	require.NoError(t, err)
	assert.Equal(t, "~/.config/hypr", r.Spec)
	assert.Equal(t, "/home/alice/.config/hypr", r.Abs)
	assert.Equal(t, filepath.Join(".config", "hypr"), r.Rel)

	_, err = paths.Resolve("", home)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))

	_, err = paths.Resolve("~", home)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration), "home itself is not strictly under home")

	_, err = paths.Resolve("~/.syncd/symlinks.json", home)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration), "metadata dir is reserved")

	_, err = paths.Resolve("~/.git", home)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration), "tree .git is reserved")

	_, err = paths.Resolve(".bashrc", home)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration), "relative specs are not anchored at home")
}

func TestIsReserved(t *testing.T) {
	assert.True(t, paths.IsReserved(".syncd"))
	assert.True(t, paths.IsReserved(filepath.Join(".git", "config")))
	assert.False(t, paths.IsReserved(filepath.Join(".config", ".git")))
	assert.False(t, paths.IsReserved(".syncdrc"))
}

func TestResolve_SameItemDifferentSpellings(t *testing.T) {
	a, err := paths.Resolve("~/.config/nvim", home)
	require.NoError(t, err)
	b, err := paths.Resolve("/home/alice/.config/./nvim/", home)
	require.NoError(t, err)
	assert.Equal(t, a.Rel, b.Rel)
}

func TestValidateSpecs(t *testing.T) {
	assert.NoError(t, paths.ValidateSpecs([]string{"~/.config/a", "~/.bashrc"}, home))

	err := paths.ValidateSpecs([]string{"~/.config/a", "/etc/passwd"}, home)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
	assert.Contains(t, err.Error(), "/etc/passwd")
}

func TestTilde(t *testing.T) {
	assert.Equal(t, "~/.config/nvim", paths.Tilde(filepath.Join(".config", "nvim")))
	assert.Equal(t, "~", paths.Tilde(""))
}

func TestIsRelativeLocal(t *testing.T) {
	assert.True(t, paths.IsRelativeLocal(".config/a"))
	assert.False(t, paths.IsRelativeLocal(""))
	assert.False(t, paths.IsRelativeLocal("/abs"))
	assert.False(t, paths.IsRelativeLocal("../escape"))
	assert.False(t, paths.IsRelativeLocal(".config/../../escape"))
}

func TestMetadataPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/tmp/repo", ".syncd", "symlinks.json"), paths.MetadataPath("/tmp/repo"))
	assert.Equal(t, filepath.Join("/tmp/repo", ".syncd"), paths.MetadataDir("/tmp/repo"))
}

func TestConfigDir(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(paths.EnvConfigDir, dir)
		assert.Equal(t, dir, paths.ConfigDir())
		assert.Equal(t, filepath.Join(dir, "config.toml"), paths.ConfigFile())
	})

	t.Run("xdg", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(paths.EnvConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", dir)
		assert.Equal(t, filepath.Join(dir, "syncd"), paths.ConfigDir())
	})
}

func TestHomeDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	got, err := paths.HomeDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}
