package commands

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/syncd/pkg/config"
	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/logging"
)

// workspace is a scratch clone of the backup remote
type workspace struct {
	root string
	tree string
}

// openWorkspace clones the configured remote into a fresh temporary
// directory. Callers must close it.
func openWorkspace(env Env, repo config.RepoConfig) (*workspace, error) {
	logger := logging.GetLogger("commands.workspace")

	root, err := os.MkdirTemp("", "syncd-")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFatalIO, "failed to create a temporary directory")
	}
	ws := &workspace{root: root, tree: filepath.Join(root, "repo")}

	logger.Debug().Str("url", repo.URL).Str("branch", repo.Branch).Str("dir", ws.tree).Msg("Cloning backup repository")
	if err := env.Git.Clone(env.Context, repo.URL, repo.Branch, ws.tree); err != nil {
		ws.close()
		return nil, err
	}
	return ws, nil
}

func (w *workspace) close() {
	if err := os.RemoveAll(w.root); err != nil {
		logger := logging.GetLogger("commands.workspace")
		logger.Warn().Err(err).Str("dir", w.root).Msg("Failed to remove temporary directory")
	}
}
