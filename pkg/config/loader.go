package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/logging"
	"github.com/arthur-debert/syncd/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SYNCD_"

// DefaultReloadCommand is run after a restore unless configured otherwise.
func DefaultReloadCommand() []string {
	return []string{"hyprctl", "reload"}
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"repo.branch":            DefaultBranch,
		"files.paths":            []string{},
		"files.bundles":          []string{},
		"restore.reload_command": DefaultReloadCommand(),
	}
}

// Exists reports whether the configuration file is present.
func Exists() bool {
	_, err := os.Stat(paths.ConfigFile())
	return err == nil
}

// Load reads the configuration from the syncd config directory.
func Load() (*SyncConfig, error) {
	return LoadFrom(paths.ConfigFile())
}

// LoadFrom reads the configuration file at path, layered over the defaults
// and under SYNCD_* environment variables. A missing file is a
// configuration error telling the user to run init.
func LoadFrom(path string) (*SyncConfig, error) {
	logger := logging.GetLogger("config.load")

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrConfiguration,
				"missing config at %s. Run 'syncd init'", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to access config %s", path)
	}

	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. config.toml
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config TOML at %s", path)
	}

	// 3. Environment, SYNCD_REPO_URL -> repo.url. Empty values are ignored.
	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.Replace(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_", ".", 1), value
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. Unmarshal
	var cfg SyncConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to decode config %s", path)
	}

	if cfg.Repo.Branch == "" {
		cfg.Repo.Branch = DefaultBranch
	}

	logger.Debug().
		Str("path", path).
		Str("repo", cfg.Repo.URL).
		Str("branch", cfg.Repo.Branch).
		Int("paths", len(cfg.Files.Paths)).
		Int("bundles", len(cfg.Files.Bundles)).
		Msg("Configuration loaded")
	return &cfg, nil
}
