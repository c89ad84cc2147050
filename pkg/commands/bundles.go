package commands

import (
	"github.com/arthur-debert/syncd/pkg/bundles"
	"github.com/arthur-debert/syncd/pkg/config"
	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/filesystem"
	"github.com/arthur-debert/syncd/pkg/logging"
	"github.com/arthur-debert/syncd/pkg/paths"
)

// ListBundlesResult is the catalog plus the ids the configuration selects
type ListBundlesResult struct {
	Bundles  []bundles.Bundle
	Selected []string
}

// ListBundles returns the bundle catalog. When a configuration exists its
// selected bundle ids are returned too.
func ListBundles(env Env) (*ListBundlesResult, error) {
	log := logging.GetLogger("commands.bundles")
	log.Debug().Str("command", "ListBundles").Msg("Executing command")

	if env.ConfigPath == "" {
		env.ConfigPath = paths.ConfigFile()
	}
	if env.FileSystem == nil {
		env.FileSystem = filesystem.NewOS()
	}

	result := &ListBundlesResult{Bundles: bundles.All()}

	exists, err := filesystem.Exists(env.FileSystem, env.ConfigPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to access config %s", env.ConfigPath)
	}
	if !exists {
		return result, nil
	}
	cfg, err := config.LoadFrom(env.ConfigPath)
	if err != nil {
		return nil, err
	}
	result.Selected = cfg.Files.Bundles
	return result, nil
}
