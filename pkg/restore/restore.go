package restore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/filesystem"
	"github.com/arthur-debert/syncd/pkg/ledger"
	"github.com/arthur-debert/syncd/pkg/logging"
	"github.com/arthur-debert/syncd/pkg/paths"
	"github.com/arthur-debert/syncd/pkg/types"
	"github.com/rs/zerolog"
)

// Skip reasons reported to the user
const (
	reasonInvalid     = "it is not a valid path under the home directory"
	reasonAbsent      = "it is not present in the repository"
	reasonStat        = "its repository entry could not be inspected"
	reasonUnsupported = "its repository entry is not a regular file or directory"
	reasonCleanup     = "the destination could not be cleaned up"
	reasonParent      = "the destination parent could not be created"
	reasonCopy        = "the copy failed"
	reasonLink        = "the symlink could not be created"
)

// Options holds configuration for a restore run
type Options struct {
	// Paths are the path specs to restore, processed in order
	Paths []string
	// Home is the home directory receiving the files
	Home string
	// TreeRoot is the working tree to restore from
	TreeRoot string
	// FileSystem defaults to the OS filesystem
	FileSystem filesystem.FS
	// Reporter receives user-visible notices, defaults to a no-op
	Reporter types.Reporter
}

type engine struct {
	fs       filesystem.FS
	home     string
	tree     string
	reporter types.Reporter
	ledger   *ledger.Ledger
	result   *types.RunResult
	logger   zerolog.Logger
}

// Run restores every path spec from the working tree and then replays the
// whole symlink ledger. Per-spec and per-link failures are recorded in the
// result. The returned error is reserved for an unusable working tree or a
// corrupt ledger.
func Run(opts Options) (*types.RunResult, error) {
	logger := logging.GetLogger("restore.run")
	done := logging.LogOperationStart(logger, "restore")
	defer done()

	if opts.Home == "" || opts.TreeRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "restore requires both a home directory and a working tree")
	}
	if opts.FileSystem == nil {
		opts.FileSystem = filesystem.NewOS()
	}
	if opts.Reporter == nil {
		opts.Reporter = types.NopReporter{}
	}

	info, err := opts.FileSystem.Stat(opts.TreeRoot)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is not a directory", opts.TreeRoot)
		}
		return nil, errors.Wrapf(err, errors.ErrFatalIO, "working tree %s is not usable", opts.TreeRoot).
			WithDetail("tree", opts.TreeRoot)
	}

	l, err := ledger.Load(opts.FileSystem, opts.TreeRoot)
	if err != nil {
		return nil, err
	}

	e := &engine{
		fs:       opts.FileSystem,
		home:     opts.Home,
		tree:     opts.TreeRoot,
		reporter: opts.Reporter,
		ledger:   l,
		result:   types.NewRunResult(types.DirectionRestore),
		logger:   logger,
	}

	logger.Info().
		Int("specs", len(opts.Paths)).
		Int("symlinks", l.Len()).
		Str("home", opts.Home).
		Str("tree", opts.TreeRoot).
		Msg("Starting restore")

	for _, spec := range opts.Paths {
		e.result.Add(e.restoreSpec(spec))
	}

	// The ledger is replayed in full regardless of the requested specs.
	for _, entry := range l.Entries() {
		e.result.Symlinks = append(e.result.Symlinks, e.replay(entry))
	}

	logger.Info().
		Int("processed", len(e.result.Succeeded())).
		Int("skipped", len(e.result.Skipped())).
		Int("symlinks", len(e.result.Symlinks)).
		Int("failedSymlinks", len(e.result.FailedLinks())).
		Msg("Restore complete")
	return e.result, nil
}

func (e *engine) restoreSpec(spec string) types.SpecResult {
	resolved, err := paths.Resolve(spec, e.home)
	if err != nil {
		return e.skip(spec, "", reasonInvalid, err)
	}

	src := filepath.Join(e.tree, resolved.Rel)
	info, err := e.fs.Lstat(src)
	if err != nil {
		if !os.IsNotExist(err) {
			return e.skip(spec, resolved.Rel, reasonStat, err)
		}
		if e.ledger.Has(resolved.Rel) {
			// Recreated by the ledger replay.
			e.logger.Debug().Str("spec", spec).Msg("Spec is a recorded symlink")
			return types.SpecResult{Spec: spec, Rel: resolved.Rel, Outcome: types.OutcomeSymlink}
		}
		return e.skip(spec, resolved.Rel, reasonAbsent, nil)
	}

	var outcome types.Outcome
	switch {
	case info.IsDir():
		if err := filesystem.MirrorDir(e.fs, src, resolved.Abs); err != nil {
			return e.skip(spec, resolved.Rel, reasonCopy, err)
		}
		outcome = types.OutcomeMirroredDir
	case info.Mode().IsRegular():
		if err := filesystem.RemoveAny(e.fs, resolved.Abs); err != nil {
			return e.skip(spec, resolved.Rel, reasonCleanup, err)
		}
		if err := filesystem.EnsureParent(e.fs, resolved.Abs); err != nil {
			return e.skip(spec, resolved.Rel, reasonParent, err)
		}
		if err := filesystem.CopyFile(e.fs, src, resolved.Abs); err != nil {
			return e.skip(spec, resolved.Rel, reasonCopy, err)
		}
		outcome = types.OutcomeCopiedFile
	default:
		return e.skip(spec, resolved.Rel, reasonUnsupported, nil)
	}

	e.logger.Debug().Str("spec", spec).Str("outcome", string(outcome)).Msg("Spec restored")
	return types.SpecResult{Spec: spec, Rel: resolved.Rel, Outcome: outcome}
}

// replay recreates one ledger entry under home.
func (e *engine) replay(entry ledger.Entry) types.LinkResult {
	dest := filepath.Join(e.home, entry.Path)
	target := resolveTarget(dest, entry.Target)
	result := types.LinkResult{Path: entry.Path, Target: target, IsDir: entry.IsDir}

	fail := func(reason string, err error) types.LinkResult {
		message := fmt.Sprintf("%s: %v", reason, err)
		e.logger.Warn().Str("path", entry.Path).Err(err).Msg("Skipping symlink: " + reason)
		e.reporter.Skip(paths.Tilde(entry.Path), message)
		result.Err = errors.Wrap(err, errors.ErrSkippableIO, reason).WithDetail("path", entry.Path)
		return result
	}

	if err := filesystem.RemoveAny(e.fs, dest); err != nil {
		return fail(reasonCleanup, err)
	}
	if err := filesystem.EnsureParent(e.fs, dest); err != nil {
		return fail(reasonParent, err)
	}
	if err := e.fs.Symlink(target, dest); err != nil {
		return fail(reasonLink, err)
	}

	e.logger.Debug().Str("path", dest).Str("target", target).Msg("Symlink restored")
	e.reporter.Linked(paths.Tilde(entry.Path), target)
	return result
}

// resolveTarget makes a recorded target independent of the process working
// directory: absolute targets are kept, relative ones are anchored at the
// link's parent directory. The result is not cleaned so ".." keeps its
// meaning when the parent path crosses other symlinks.
func resolveTarget(dest, target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Dir(dest) + string(filepath.Separator) + filepath.FromSlash(target)
}

func (e *engine) skip(spec, rel, reason string, cause error) types.SpecResult {
	message := reason
	var err error
	switch {
	case cause == nil:
		err = errors.New(errors.ErrSkippableIO, reason)
	case errors.HasErrorCode(cause, errors.ErrConfiguration):
		message = fmt.Sprintf("%s: %v", reason, cause)
		err = cause
	default:
		message = fmt.Sprintf("%s: %v", reason, cause)
		err = errors.Wrap(cause, errors.ErrSkippableIO, reason)
	}

	e.logger.Warn().Str("spec", spec).Err(cause).Msg("Skipping spec: " + reason)
	e.reporter.Skip(spec, message)
	return types.SpecResult{Spec: spec, Rel: rel, Outcome: types.OutcomeSkipped, Reason: message, Err: err}
}
