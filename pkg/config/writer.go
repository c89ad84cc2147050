package config

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/syncd/pkg/bundles"
	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/filesystem"
	"github.com/arthur-debert/syncd/pkg/logging"
	"github.com/arthur-debert/syncd/pkg/paths"
	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
)

// Normalize returns a cleaned copy of cfg: bundles sorted and checked,
// explicit paths sorted, deduplicated and pruned of paths a selected
// bundle already provides, branch defaulted.
func Normalize(cfg *SyncConfig) (*SyncConfig, error) {
	out := *cfg
	out.Repo.URL = strings.TrimSpace(cfg.Repo.URL)
	if out.Repo.URL == "" {
		return nil, errors.New(errors.ErrConfiguration, "repository URL is required")
	}
	if strings.TrimSpace(out.Repo.Branch) == "" {
		out.Repo.Branch = DefaultBranch
	}

	out.Files.Bundles = lo.Uniq(lo.Compact(cfg.Files.Bundles))
	sort.Strings(out.Files.Bundles)
	if err := bundles.EnsureKnown(out.Files.Bundles); err != nil {
		return nil, err
	}

	pruned, err := bundles.PruneCovered(cfg.Files.Paths, out.Files.Bundles)
	if err != nil {
		return nil, err
	}
	out.Files.Paths = pruned
	if out.Files.Paths == nil {
		out.Files.Paths = []string{}
	}
	out.Restore.ReloadCommand = append([]string(nil), cfg.Restore.ReloadCommand...)
	return &out, nil
}

// Write normalizes cfg and stores it in the syncd config directory.
func Write(cfg *SyncConfig) (string, error) {
	path := paths.ConfigFile()
	return path, WriteTo(filesystem.NewOS(), path, cfg)
}

// WriteTo normalizes cfg and writes it to path, replacing the file
// atomically.
func WriteTo(fsys filesystem.FS, path string, cfg *SyncConfig) error {
	logger := logging.GetLogger("config.write")

	normalized, err := Normalize(cfg)
	if err != nil {
		return err
	}

	data, err := toml.Marshal(normalized)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to encode config")
	}

	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to create config directory %s", dir)
	}

	tmp := path + ".tmp"
	if err := fsys.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write config file %s", tmp)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to replace config file %s", path)
	}

	logger.Info().Str("path", path).Msg("Configuration written")
	return nil
}
