// Package commands implements the syncd operations behind the CLI: writing
// the configuration (init, install), and the backup and restore cycles that
// clone the remote into a scratch working tree, run an engine against it
// and, for backups, commit and push the result.
//
// Every operation takes an Options struct whose collaborators (git client,
// filesystem, home directory, reporter, config location) default to the
// real ones when left empty.
package commands

import (
	"context"

	"github.com/arthur-debert/syncd/pkg/config"
	"github.com/arthur-debert/syncd/pkg/filesystem"
	"github.com/arthur-debert/syncd/pkg/git"
	"github.com/arthur-debert/syncd/pkg/paths"
	"github.com/arthur-debert/syncd/pkg/types"
)

// DefaultCommitMessage is used by Backup when no message is given
const DefaultCommitMessage = "Automated backup"

// Env holds the collaborators shared by every command.
type Env struct {
	// Context bounds git and reload invocations, defaults to Background
	Context context.Context
	// Git defaults to the git binary on PATH
	Git git.Client
	// FileSystem defaults to the OS filesystem
	FileSystem filesystem.FS
	// Home defaults to the current user's home directory
	Home string
	// ConfigPath defaults to config.toml in the syncd config directory
	ConfigPath string
	// Reporter receives engine notices, defaults to a no-op
	Reporter types.Reporter
}

func (e Env) withDefaults() (Env, error) {
	if e.Context == nil {
		e.Context = context.Background()
	}
	if e.Git == nil {
		e.Git = git.New()
	}
	if e.FileSystem == nil {
		e.FileSystem = filesystem.NewOS()
	}
	if e.ConfigPath == "" {
		e.ConfigPath = paths.ConfigFile()
	}
	if e.Reporter == nil {
		e.Reporter = types.NopReporter{}
	}
	if e.Home == "" {
		home, err := paths.HomeDir()
		if err != nil {
			return e, err
		}
		e.Home = home
	}
	return e, nil
}

// loadSelection reads the configuration and returns it together with the
// validated, resolved path specs. A spec that does not resolve under home
// fails the whole run here, before any engine touches the disk.
func loadSelection(env Env) (*config.SyncConfig, []string, error) {
	cfg, err := config.LoadFrom(env.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.EnsureNonEmptyPaths(); err != nil {
		return nil, nil, err
	}
	specs, err := cfg.ResolvedPaths()
	if err != nil {
		return nil, nil, err
	}
	if err := paths.ValidateSpecs(specs, env.Home); err != nil {
		return nil, nil, err
	}
	return cfg, specs, nil
}
