package commands

import (
	"strings"
	"time"

	"github.com/arthur-debert/syncd/pkg/logging"
	"github.com/arthur-debert/syncd/pkg/snapshot"
	"github.com/arthur-debert/syncd/pkg/types"
)

// BackupOptions holds options for the backup command
type BackupOptions struct {
	Env

	// Message is the commit message, defaults to DefaultCommitMessage
	Message string
}

// BackupResult describes a finished backup
type BackupResult struct {
	Snapshot *types.RunResult
	// Committed is false when the snapshot matched the remote
	Committed bool
}

// Backup snapshots the configured paths into a fresh clone of the remote,
// then commits and pushes the result.
func Backup(opts BackupOptions) (*BackupResult, error) {
	log := logging.GetLogger("commands.backup")
	log.Debug().Str("command", "Backup").Str("message", opts.Message).Msg("Executing command")
	defer logging.LogDuration(time.Now(), "backup")

	env, err := opts.Env.withDefaults()
	if err != nil {
		return nil, err
	}

	cfg, specs, err := loadSelection(env)
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(opts.Message)
	if message == "" {
		message = DefaultCommitMessage
	}

	ws, err := openWorkspace(env, cfg.Repo)
	if err != nil {
		return nil, err
	}
	defer ws.close()

	result, err := snapshot.Run(snapshot.Options{
		Paths:      specs,
		Home:       env.Home,
		TreeRoot:   ws.tree,
		FileSystem: env.FileSystem,
		Reporter:   env.Reporter,
	})
	if err != nil {
		return nil, err
	}

	committed, err := env.Git.CommitAndPush(env.Context, ws.tree, message, cfg.Repo.Branch)
	if err != nil {
		return &BackupResult{Snapshot: result}, err
	}

	log.Info().
		Int("processed", len(result.Succeeded())).
		Int("skipped", len(result.Skipped())).
		Bool("committed", committed).
		Msg("Backup finished")
	return &BackupResult{Snapshot: result, Committed: committed}, nil
}
