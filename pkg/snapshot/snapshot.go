package snapshot

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

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
	reasonMissing     = "it does not exist on this machine"
	reasonInvalid     = "it is not a valid path under the home directory"
	reasonStat        = "it could not be inspected"
	reasonUnsupported = "it is not a regular file, directory or symlink"
	reasonCleanup     = "the destination could not be cleaned up"
	reasonParent      = "the destination parent could not be created"
	reasonCopy        = "the copy failed"
	reasonPrune       = "embedded .git directories could not be removed"
	reasonLinks       = "its symlinks could not be recorded"
	reasonLinkedAbove = "it lies below a symlink, which is recorded instead"
)

// Options holds configuration for a snapshot run
type Options struct {
	// Paths are the path specs to snapshot, processed in order
	Paths []string
	// Home is the home directory the specs resolve against
	Home string
	// TreeRoot is the working tree receiving the copies
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
	store    *ledger.Store
	result   *types.RunResult
	logger   zerolog.Logger
}

// Run snapshots every path spec into the working tree.
// Per-spec failures are recorded in the result and never returned. The
// returned error is reserved for the working tree root and the ledger write.
func Run(opts Options) (*types.RunResult, error) {
	logger := logging.GetLogger("snapshot.run")
	done := logging.LogOperationStart(logger, "snapshot")
	defer done()

	if opts.Home == "" || opts.TreeRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "snapshot requires both a home directory and a working tree")
	}
	if opts.FileSystem == nil {
		opts.FileSystem = filesystem.NewOS()
	}
	if opts.Reporter == nil {
		opts.Reporter = types.NopReporter{}
	}

	if err := opts.FileSystem.MkdirAll(opts.TreeRoot, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFatalIO, "failed to create working tree %s", opts.TreeRoot).
			WithDetail("tree", opts.TreeRoot)
	}

	e := &engine{
		fs:       opts.FileSystem,
		home:     opts.Home,
		tree:     opts.TreeRoot,
		reporter: opts.Reporter,
		store:    ledger.NewStore(opts.FileSystem, opts.TreeRoot),
		result:   types.NewRunResult(types.DirectionSnapshot),
		logger:   logger,
	}

	logger.Info().
		Int("specs", len(opts.Paths)).
		Str("home", opts.Home).
		Str("tree", opts.TreeRoot).
		Msg("Starting snapshot")

	for _, spec := range opts.Paths {
		e.result.Add(e.snapshotSpec(spec))
	}

	if err := e.store.Finalize(); err != nil {
		return e.result, err
	}

	logger.Info().
		Int("processed", len(e.result.Succeeded())).
		Int("skipped", len(e.result.Skipped())).
		Int("symlinks", e.store.Ledger().Len()).
		Int("pruned", len(e.result.Pruned)).
		Msg("Snapshot complete")
	return e.result, nil
}

func (e *engine) snapshotSpec(spec string) types.SpecResult {
	resolved, err := paths.Resolve(spec, e.home)
	if err != nil {
		return e.skip(spec, "", reasonInvalid, err)
	}

	linked, err := e.linkedAncestor(resolved.Rel)
	if err != nil {
		return e.skip(spec, resolved.Rel, reasonStat, err)
	}
	if linked != "" {
		e.logger.Debug().Str("spec", spec).Str("ancestor", linked).Msg("Spec descends through a symlink")
		return e.skip(spec, resolved.Rel, reasonLinkedAbove, nil)
	}

	info, err := e.fs.Lstat(resolved.Abs)
	if err != nil {
		if os.IsNotExist(err) {
			return e.skip(spec, resolved.Rel, reasonMissing, nil)
		}
		return e.skip(spec, resolved.Rel, reasonStat, err)
	}

	dest := filepath.Join(e.tree, resolved.Rel)
	switch {
	case filesystem.IsSymlink(info):
		if err := e.registerLink(resolved.Abs, resolved.Rel); err != nil {
			return e.skip(spec, resolved.Rel, reasonLinks, err)
		}
		return e.done(spec, resolved.Rel, types.OutcomeSymlink)
	case info.IsDir():
		return e.snapshotDir(resolved, dest)
	case info.Mode().IsRegular():
		return e.snapshotFile(resolved, dest)
	default:
		return e.skip(spec, resolved.Rel, reasonUnsupported, nil)
	}
}

func (e *engine) snapshotFile(resolved paths.Resolved, dest string) types.SpecResult {
	if err := filesystem.RemoveAny(e.fs, dest); err != nil {
		return e.skip(resolved.Spec, resolved.Rel, reasonCleanup, err)
	}
	if err := filesystem.EnsureParent(e.fs, dest); err != nil {
		return e.skip(resolved.Spec, resolved.Rel, reasonParent, err)
	}
	if err := filesystem.CopyFile(e.fs, resolved.Abs, dest); err != nil {
		return e.skip(resolved.Spec, resolved.Rel, reasonCopy, err)
	}
	return e.done(resolved.Spec, resolved.Rel, types.OutcomeCopiedFile)
}

func (e *engine) snapshotDir(resolved paths.Resolved, dest string) types.SpecResult {
	if err := filesystem.MirrorDir(e.fs, resolved.Abs, dest); err != nil {
		return e.skip(resolved.Spec, resolved.Rel, reasonCopy, err)
	}

	pruned, err := filesystem.PruneNamedDirs(e.fs, dest, paths.GitDirName, func(path string) {
		e.logger.Info().Str("path", path).Msg("Removing embedded .git directory")
		e.reporter.Pruned(path)
	})
	if err != nil {
		return e.skip(resolved.Spec, resolved.Rel, reasonPrune, err)
	}
	e.result.Pruned = append(e.result.Pruned, pruned...)

	// Symlinks are discovered on the original source, the copy has none.
	err = e.fs.Walk(resolved.Abs, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == resolved.Abs {
			return nil
		}
		if info.IsDir() && info.Name() == paths.GitDirName {
			return filepath.SkipDir
		}
		if !filesystem.IsSymlink(info) {
			return nil
		}
		rel, err := filepath.Rel(resolved.Abs, path)
		if err != nil {
			return err
		}
		return e.registerLink(path, filepath.Join(resolved.Rel, rel))
	})
	if err != nil {
		return e.skip(resolved.Spec, resolved.Rel, reasonLinks, err)
	}

	return e.done(resolved.Spec, resolved.Rel, types.OutcomeMirroredDir)
}

// linkedAncestor returns the first proper ancestor of rel, from home down,
// that is a symlink on disk or already a ledger entry. Paths below such an
// ancestor are never copied literally.
func (e *engine) linkedAncestor(rel string) (string, error) {
	parts := strings.Split(rel, string(filepath.Separator))
	for i := 1; i < len(parts); i++ {
		ancestor := filepath.Join(parts[:i]...)
		if e.store.Ledger().Has(ancestor) {
			return ancestor, nil
		}
		info, err := e.fs.Lstat(filepath.Join(e.home, ancestor))
		if err != nil {
			if os.IsNotExist(err) {
				return "", nil
			}
			return "", err
		}
		if filesystem.IsSymlink(info) {
			return ancestor, nil
		}
	}
	return "", nil
}

// registerLink records the symlink at abs under rel without following it.
func (e *engine) registerLink(abs, rel string) error {
	target, err := e.fs.Readlink(abs)
	if err != nil {
		return err
	}

	isDir := false
	if info, err := e.fs.Stat(abs); err == nil {
		isDir = info.IsDir()
	}

	entry := ledger.Entry{Path: rel, Target: target, IsDir: isDir}
	added, err := e.store.Register(entry)
	if err != nil {
		return err
	}
	if added {
		e.result.Symlinks = append(e.result.Symlinks, types.LinkResult{Path: rel, Target: target, IsDir: isDir})
		e.reporter.Linked(paths.Tilde(rel), target)
	}
	return nil
}

func (e *engine) done(spec, rel string, outcome types.Outcome) types.SpecResult {
	e.logger.Debug().Str("spec", spec).Str("outcome", string(outcome)).Msg("Spec snapshotted")
	return types.SpecResult{Spec: spec, Rel: rel, Outcome: outcome}
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
