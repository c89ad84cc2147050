package syncd

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Back up and restore dotfiles through a git repository"
	MsgInitShort       = "Create the backup configuration"
	MsgInstallShort    = "Change which paths and bundles are tracked"
	MsgBackupShort     = "Snapshot tracked paths and push them"
	MsgRestoreShort    = "Restore tracked paths into the home directory"
	MsgBundleShort     = "Inspect path bundles"
	MsgBundleListShort = "List the available bundles"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigWritten   = "Wrote config to %s\n"
	MsgSelectionSaved  = "Tracking %d path(s) and %d bundle(s).\n"
	MsgBackupComplete  = "Backup complete."
	MsgNothingToCommit = "Nothing changed since the last backup."
	MsgRestoreComplete = "Restore complete."
	MsgReloadDone      = "Reload command executed."
	MsgReloadFailed    = "Reload command failed: %v; continuing.\n"
	MsgSelectorTitle   = "What should syncd track?"

	// Error messages
	MsgErrNoTerminal = "no selection given and stdin is not a terminal. Pass --path or --bundle"

	// Flag descriptions
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat          = "Output format: auto, terminal, text or json"
	MsgFlagRepoURL         = "Git remote URL to use for backups (should point to a private repo)"
	MsgFlagBranch          = "Git branch to track"
	MsgFlagPath            = "Path to track, relative to home. Repeat to add more"
	MsgFlagBundle          = "Bundle id to track. Repeat to add more"
	MsgFlagForce           = "Overwrite an existing config.toml"
	MsgFlagVerifyRemote    = "Check that the remote branch exists before writing the config"
	MsgFlagIncludeDefaults = "Include the default bundles"
	MsgFlagNoUI            = "Never open the interactive selector"
	MsgFlagMessage         = "Commit message (default \"Automated backup\")"
	MsgFlagRestorePath     = "Restore only this configured path. Repeat to add more"
	MsgFlagAll             = "Allow --path values that are not configured"
	MsgFlagNoReload        = "Skip the post-restore reload command"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/backup-long.txt
	msgBackupLongRaw string
	MsgBackupLong    = strings.TrimSpace(msgBackupLongRaw)

	//go:embed msgs/backup-example.txt
	msgBackupExampleRaw string
	MsgBackupExample    = strings.TrimRight(msgBackupExampleRaw, "\n")

	//go:embed msgs/restore-long.txt
	msgRestoreLongRaw string
	MsgRestoreLong    = strings.TrimSpace(msgRestoreLongRaw)

	//go:embed msgs/restore-example.txt
	msgRestoreExampleRaw string
	MsgRestoreExample    = strings.TrimRight(msgRestoreExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
