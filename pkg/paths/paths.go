// Package paths provides centralized path handling for syncd.
// It holds the tilde and home-relative path utilities shared by the
// snapshot and restore engines, plus the thin boundary adapter that
// reads the process environment (home directory, XDG locations).
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/mitchellh/go-homedir"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvConfigDir overrides the XDG config directory for syncd
	EnvConfigDir = "SYNCD_CONFIG_DIR"

	// EnvStateHome is the XDG state directory variable
	EnvStateHome = "XDG_STATE_HOME"
)

// Default directories and files
// IMPORTANT: MetadataDirName and MetadataFileName define the on-disk layout of
// the working tree. Changing them orphans the symlink ledger of every existing
// backup repository.
const (
	// AppDirName is the directory name for syncd-specific files
	AppDirName = "syncd"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "config.toml"

	// MetadataDirName is the reserved working-tree directory holding the ledger
	MetadataDirName = ".syncd"

	// MetadataFileName is the serialized symlink ledger inside MetadataDirName
	MetadataFileName = "symlinks.json"

	// GitDirName is the version-control metadata directory pruned from copies
	GitDirName = ".git"

	// LogFileName is the name of the log file
	LogFileName = "syncd.log"
)

func init() {
	// Tests and the CLI may change HOME during the life of the process.
	homedir.DisableCache = true
}

// HomeDir returns the user's home directory.
// This is the only place the engines' HomeRoot is read from the environment.
func HomeDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfiguration, "unable to determine home directory")
	}
	if home == "" {
		return "", errors.New(errors.ErrConfiguration, "home directory is empty")
	}
	abs, err := filepath.Abs(home)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfiguration, "failed to get absolute path for home %s", home)
	}
	return abs, nil
}

// ConfigDir returns the syncd configuration directory.
// SYNCD_CONFIG_DIR wins, otherwise $XDG_CONFIG_HOME/syncd.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		if expanded, err := homedir.Expand(dir); err == nil {
			return expanded
		}
		return dir
	}
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the path to the configuration file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateDir returns the syncd state directory, respecting XDG_STATE_HOME
func StateDir() string {
	if stateHome := os.Getenv(EnvStateHome); stateHome != "" {
		return filepath.Join(stateHome, AppDirName)
	}
	home, err := HomeDir()
	if err != nil {
		return AppDirName
	}
	return filepath.Join(home, ".local", "state", AppDirName)
}

// LogFilePath returns the path to the syncd log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// MetadataDir returns the reserved metadata directory of a working tree
func MetadataDir(treeRoot string) string {
	return filepath.Join(treeRoot, MetadataDirName)
}

// MetadataPath returns the location of the serialized symlink ledger
func MetadataPath(treeRoot string) string {
	return filepath.Join(treeRoot, MetadataDirName, MetadataFileName)
}
