package commands

import (
	"github.com/arthur-debert/syncd/pkg/config"
	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/logging"
	"github.com/samber/lo"
)

// InstallOptions holds options for the install command
type InstallOptions struct {
	Env

	// Paths replace the configured explicit path specs
	Paths []string
	// Bundles replace the configured bundle ids
	Bundles []string
}

// Install replaces the path and bundle selection of an existing
// configuration, keeping the repository and restore settings.
func Install(opts InstallOptions) (*config.SyncConfig, error) {
	log := logging.GetLogger("commands.install")
	log.Debug().
		Str("command", "Install").
		Strs("paths", opts.Paths).
		Strs("bundles", opts.Bundles).
		Msg("Executing command")

	env, err := opts.Env.withDefaults()
	if err != nil {
		return nil, err
	}

	current, err := config.LoadFrom(env.ConfigPath)
	if err != nil {
		return nil, err
	}

	explicit := lo.Compact(opts.Paths)
	selected := lo.Uniq(lo.Compact(opts.Bundles))
	if len(explicit) == 0 && len(selected) == 0 {
		return nil, errors.New(errors.ErrInvalidInput,
			"no paths selected. Pass --path or --bundle")
	}

	updated := *current
	updated.Files = config.FilesConfig{Paths: explicit, Bundles: selected}
	cfg, err := config.Normalize(&updated)
	if err != nil {
		return nil, err
	}
	if err := validateSelection(cfg, env.Home); err != nil {
		return nil, err
	}

	if err := config.WriteTo(env.FileSystem, env.ConfigPath, cfg); err != nil {
		return nil, err
	}

	log.Info().
		Int("paths", len(cfg.Files.Paths)).
		Int("bundles", len(cfg.Files.Bundles)).
		Msg("Selection updated")
	return cfg, nil
}
