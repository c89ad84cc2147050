package commands

import (
	"context"
	stderrors "errors"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/syncd/pkg/config"
	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/logging"
	"github.com/arthur-debert/syncd/pkg/paths"
	"github.com/arthur-debert/syncd/pkg/restore"
	"github.com/arthur-debert/syncd/pkg/types"
	"github.com/samber/lo"
)

// ReloadFunc runs the post-restore reload command
type ReloadFunc func(ctx context.Context, argv []string) error

// RestoreOptions holds options for the restore command
type RestoreOptions struct {
	Env

	// Paths scopes the restore to a subset of the configured specs
	Paths []string
	// All allows Paths outside the configured selection
	All bool
	// SkipReload disables the post-restore reload command
	SkipReload bool
	// Reload defaults to running the command with os/exec
	Reload ReloadFunc
}

// RestoreResult describes a finished restore
type RestoreResult struct {
	Restore *types.RunResult
	// Reloaded is true when the reload command ran and succeeded
	Reloaded bool
	// ReloadErr is the reload failure, reported as a notice only
	ReloadErr error
}

// Restore fetches the remote into a scratch clone and copies the configured
// paths back into the home directory, replaying every recorded symlink.
func Restore(opts RestoreOptions) (*RestoreResult, error) {
	log := logging.GetLogger("commands.restore")
	log.Debug().
		Str("command", "Restore").
		Strs("paths", opts.Paths).
		Bool("all", opts.All).
		Msg("Executing command")
	defer logging.LogDuration(time.Now(), "restore")

	env, err := opts.Env.withDefaults()
	if err != nil {
		return nil, err
	}

	cfg, specs, err := loadSelection(env)
	if err != nil {
		return nil, err
	}
	specs, err = scopeSpecs(specs, opts.Paths, opts.All, env.Home)
	if err != nil {
		return nil, err
	}

	ws, err := openWorkspace(env, cfg.Repo)
	if err != nil {
		return nil, err
	}
	defer ws.close()

	result, err := restore.Run(restore.Options{
		Paths:      specs,
		Home:       env.Home,
		TreeRoot:   ws.tree,
		FileSystem: env.FileSystem,
		Reporter:   env.Reporter,
	})
	if err != nil {
		return nil, err
	}

	out := &RestoreResult{Restore: result}
	if !opts.SkipReload {
		reload := opts.Reload
		if reload == nil {
			reload = runReload
		}
		out.Reloaded, out.ReloadErr = reloadAfterRestore(env.Context, reload, cfg.Restore)
	}

	log.Info().
		Int("processed", len(result.Succeeded())).
		Int("skipped", len(result.Skipped())).
		Int("symlinks", len(result.Symlinks)).
		Bool("reloaded", out.Reloaded).
		Msg("Restore finished")
	return out, nil
}

// scopeSpecs narrows the configured specs to the requested ones. Without
// all, every requested spec must be part of the configuration.
func scopeSpecs(configured, requested []string, all bool, home string) ([]string, error) {
	requested = lo.Compact(requested)
	if len(requested) == 0 {
		return configured, nil
	}
	scoped := lo.Uniq(requested)
	if err := paths.ValidateSpecs(scoped, home); err != nil {
		return nil, err
	}
	if !all {
		known := make(map[string]bool, len(configured))
		for _, spec := range configured {
			if resolved, err := paths.Resolve(spec, home); err == nil {
				known[resolved.Rel] = true
			}
		}
		unknown := lo.Filter(scoped, func(spec string, _ int) bool {
			resolved, err := paths.Resolve(spec, home)
			return err != nil || !known[resolved.Rel]
		})
		if len(unknown) > 0 {
			return nil, errors.Newf(errors.ErrConfiguration,
				"%s is not in the configured paths. Use --all to restore it anyway",
				strings.Join(unknown, ", ")).
				WithDetail("paths", unknown)
		}
	}
	return scoped, nil
}

// reloadAfterRestore runs the configured reload command. A missing binary is
// not an error; any other failure is returned for the caller to report.
func reloadAfterRestore(ctx context.Context, reload ReloadFunc, cfg config.RestoreConfig) (bool, error) {
	log := logging.GetLogger("commands.restore")

	argv := lo.Compact(cfg.ReloadCommand)
	if len(argv) == 0 {
		return false, nil
	}
	err := reload(ctx, argv)
	switch {
	case err == nil:
		log.Info().Strs("command", argv).Msg("Reload command finished")
		return true, nil
	case stderrors.Is(err, exec.ErrNotFound):
		log.Debug().Str("binary", argv[0]).Msg("Reload command not installed, skipping")
		return false, nil
	default:
		log.Warn().Err(err).Strs("command", argv).Msg("Reload command failed")
		return false, err
	}
}

func runReload(ctx context.Context, argv []string) error {
	logging.LogCommand(argv[0], argv[1:])
	out, err := exec.CommandContext(ctx, argv[0], argv[1:]...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return errors.Wrapf(err, errors.ErrInternal, "%s: %s", argv[0], msg)
		}
		return err
	}
	return nil
}
