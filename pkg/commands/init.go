package commands

import (
	"github.com/arthur-debert/syncd/pkg/bundles"
	"github.com/arthur-debert/syncd/pkg/config"
	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/filesystem"
	"github.com/arthur-debert/syncd/pkg/logging"
	"github.com/arthur-debert/syncd/pkg/paths"
	"github.com/samber/lo"
)

// InitOptions holds options for the init command
type InitOptions struct {
	Env

	// RepoURL is the backup remote
	RepoURL string
	// Branch defaults to config.DefaultBranch
	Branch string
	// Paths are explicit path specs to track
	Paths []string
	// Bundles are bundle ids to track
	Bundles []string
	// IncludeDefaults adds the catalog's default bundles
	IncludeDefaults bool
	// Force overwrites an existing configuration
	Force bool
	// VerifyRemote checks that the remote branch exists before writing
	VerifyRemote bool
}

// InitResult describes the configuration that was written
type InitResult struct {
	ConfigPath string
	Config     *config.SyncConfig
}

// Init writes a new configuration file.
func Init(opts InitOptions) (*InitResult, error) {
	log := logging.GetLogger("commands.init")
	log.Debug().
		Str("command", "Init").
		Str("repo", opts.RepoURL).
		Strs("paths", opts.Paths).
		Strs("bundles", opts.Bundles).
		Bool("includeDefaults", opts.IncludeDefaults).
		Msg("Executing command")

	env, err := opts.Env.withDefaults()
	if err != nil {
		return nil, err
	}

	exists, err := filesystem.Exists(env.FileSystem, env.ConfigPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to access config %s", env.ConfigPath)
	}
	if exists && !opts.Force {
		return nil, errors.Newf(errors.ErrAlreadyExists,
			"config already exists at %s. Use --force to overwrite it", env.ConfigPath).
			WithDetail("path", env.ConfigPath)
	}

	selected := opts.Bundles
	if opts.IncludeDefaults {
		selected = append(append([]string(nil), bundles.DefaultIDs()...), selected...)
	}
	selected = lo.Uniq(lo.Compact(selected))
	explicit := lo.Compact(opts.Paths)
	if len(selected) == 0 && len(explicit) == 0 {
		return nil, errors.New(errors.ErrInvalidInput,
			"no paths selected. Pass --path, --bundle or --include-defaults")
	}

	cfg, err := config.Normalize(&config.SyncConfig{
		Repo:    config.RepoConfig{URL: opts.RepoURL, Branch: opts.Branch},
		Files:   config.FilesConfig{Paths: explicit, Bundles: selected},
		Restore: config.RestoreConfig{ReloadCommand: config.DefaultReloadCommand()},
	})
	if err != nil {
		return nil, err
	}
	if err := validateSelection(cfg, env.Home); err != nil {
		return nil, err
	}

	if opts.VerifyRemote {
		if err := env.Git.VerifyRemote(env.Context, cfg.Repo.URL, cfg.Repo.Branch); err != nil {
			return nil, err
		}
	}

	if err := config.WriteTo(env.FileSystem, env.ConfigPath, cfg); err != nil {
		return nil, err
	}

	log.Info().Str("path", env.ConfigPath).Msg("Configuration initialized")
	return &InitResult{ConfigPath: env.ConfigPath, Config: cfg}, nil
}

func validateSelection(cfg *config.SyncConfig, home string) error {
	specs, err := cfg.ResolvedPaths()
	if err != nil {
		return err
	}
	return paths.ValidateSpecs(specs, home)
}
