package ledger

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/filesystem"
	"github.com/arthur-debert/syncd/pkg/logging"
	"github.com/arthur-debert/syncd/pkg/paths"
)

// Store binds a ledger to a working tree for one snapshot run.
type Store struct {
	fs     filesystem.FS
	tree   string
	ledger *Ledger
}

// NewStore returns a store with an empty ledger. The previous metadata file,
// if any, is not read: a snapshot rewrites the ledger wholesale.
func NewStore(fsys filesystem.FS, treeRoot string) *Store {
	return &Store{fs: fsys, tree: treeRoot, ledger: New()}
}

// Ledger returns the ledger being built.
func (s *Store) Ledger() *Ledger {
	return s.ledger
}

// Register records entry. When the path is new, any literal copy at the
// same location in the working tree is deleted first; if that fails the
// entry is not recorded and a SkippableIO error is returned.
func (s *Store) Register(entry Entry) (bool, error) {
	logger := logging.GetLogger("ledger.register")

	if s.ledger.Has(entry.Path) {
		logger.Debug().Str("path", entry.Path).Msg("Symlink already registered, keeping first entry")
		return false, nil
	}

	literal := filepath.Join(s.tree, entry.Path)
	if err := filesystem.RemoveAny(s.fs, literal); err != nil {
		return false, errors.Wrapf(err, errors.ErrSkippableIO,
			"failed to remove literal copy at %s", literal).
			WithDetail("path", entry.Path)
	}

	s.ledger.Register(entry)
	logger.Debug().
		Str("path", entry.Path).
		Str("target", entry.Target).
		Bool("isDir", entry.IsDir).
		Msg("Registered symlink")
	return true, nil
}

// Finalize persists the ledger: written when non-empty, removed when empty.
// Failures are FatalIO errors.
func (s *Store) Finalize() error {
	logger := logging.GetLogger("ledger.finalize")
	metaPath := paths.MetadataPath(s.tree)
	metaDir := paths.MetadataDir(s.tree)

	if s.ledger.Len() == 0 {
		if err := filesystem.RemoveAny(s.fs, metaPath); err != nil {
			return errors.Wrapf(err, errors.ErrFatalIO, "failed to remove stale symlink ledger %s", metaPath)
		}
		removeIfEmpty(s.fs, metaDir)
		logger.Debug().Str("path", metaPath).Msg("Ledger empty, metadata file removed")
		return nil
	}

	data, err := Marshal(s.ledger)
	if err != nil {
		return errors.Wrap(err, errors.ErrFatalIO, "failed to encode symlink ledger")
	}
	if err := s.fs.MkdirAll(metaDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFatalIO, "failed to create metadata directory %s", metaDir)
	}
	if err := s.fs.WriteFile(metaPath, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFatalIO, "failed to write symlink ledger %s", metaPath)
	}

	logger.Info().Int("entries", s.ledger.Len()).Str("path", metaPath).Msg("Symlink ledger written")
	return nil
}

// Load reads the ledger of a working tree. A missing metadata file is an
// empty ledger; an unreadable or malformed one is LedgerCorrupt.
func Load(fsys filesystem.FS, treeRoot string) (*Ledger, error) {
	logger := logging.GetLogger("ledger.load")
	metaPath := paths.MetadataPath(treeRoot)
	data, err := fsys.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", metaPath).Msg("No symlink ledger, nothing to replay")
			return New(), nil
		}
		return nil, errors.Wrapf(err, errors.ErrLedgerCorrupt, "failed to read symlink ledger %s", metaPath)
	}

	l, err := Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLedgerCorrupt, "symlink ledger %s is corrupt", metaPath)
	}
	return l, nil
}

func removeIfEmpty(fsys filesystem.FS, dir string) {
	entries, err := fsys.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	_ = fsys.Remove(dir)
}
