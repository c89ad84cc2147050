package config

import (
	"github.com/arthur-debert/syncd/pkg/bundles"
	"github.com/arthur-debert/syncd/pkg/errors"
)

// DefaultBranch is used when no branch is configured
const DefaultBranch = "main"

// RepoConfig describes the backup remote
type RepoConfig struct {
	URL    string `koanf:"url" toml:"url"`
	Branch string `koanf:"branch" toml:"branch"`
}

// FilesConfig is the tracked selection: explicit path specs and bundle ids
type FilesConfig struct {
	Paths   []string `koanf:"paths" toml:"paths"`
	Bundles []string `koanf:"bundles" toml:"bundles"`
}

// RestoreConfig tunes what happens after a restore
type RestoreConfig struct {
	// ReloadCommand runs after a restore; empty disables it
	ReloadCommand []string `koanf:"reload_command" toml:"reload_command"`
}

// SyncConfig is the whole configuration file
type SyncConfig struct {
	Repo    RepoConfig    `koanf:"repo" toml:"repo"`
	Files   FilesConfig   `koanf:"files" toml:"files"`
	Restore RestoreConfig `koanf:"restore" toml:"restore"`
}

// ResolvedPaths returns the explicit paths merged with the bundle paths,
// sorted and deduplicated.
func (c *SyncConfig) ResolvedPaths() ([]string, error) {
	return bundles.Resolve(c.Files.Paths, c.Files.Bundles)
}

// EnsureNonEmptyPaths fails when nothing is selected for syncing.
func (c *SyncConfig) EnsureNonEmptyPaths() error {
	resolved, err := c.ResolvedPaths()
	if err != nil {
		return err
	}
	if len(resolved) == 0 {
		return errors.New(errors.ErrConfiguration,
			"no paths configured. Run 'syncd install' or 'syncd init --include-defaults'")
	}
	return nil
}
