package syncd

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/syncd/internal/version"
	"github.com/arthur-debert/syncd/pkg/bundles"
	"github.com/arthur-debert/syncd/pkg/commands"
	"github.com/arthur-debert/syncd/pkg/config"
	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/git"
	"github.com/arthur-debert/syncd/pkg/logging"
	"github.com/arthur-debert/syncd/pkg/selector"
	"github.com/arthur-debert/syncd/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// deps are the collaborators the commands run against
type deps struct {
	git         git.Client
	prompter    selector.Prompter
	interactive func() bool
	reload      commands.ReloadFunc
}

// cliState holds the global flag values of one root command
type cliState struct {
	deps      deps
	verbosity int
	format    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(deps{
		prompter:    selector.New(MsgSelectorTitle),
		interactive: stdinIsTerminal,
	})
}

func newRootCmd(d deps) *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	state := &cliState{deps: d}

	rootCmd := &cobra.Command{
		Use:     "syncd",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging based on verbosity
			logging.SetupLogger(state.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			_, err := ui.ParseFormat(state.format)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&state.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&state.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInitCmd(state))
	rootCmd.AddCommand(newInstallCmd(state))
	rootCmd.AddCommand(newBackupCmd(state))
	rootCmd.AddCommand(newRestoreCmd(state))
	rootCmd.AddCommand(newBundleCmd(state))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// outputFormat resolves --format against stdout
func (s *cliState) outputFormat() ui.Format {
	format, err := ui.ParseFormat(s.format)
	if err != nil {
		return ui.FormatText
	}
	return format.Resolve(os.Stdout)
}

// env builds the command environment for cmd
func (s *cliState) env(cmd *cobra.Command) commands.Env {
	return commands.Env{
		Context:  cmd.Context(),
		Git:      s.deps.git,
		Reporter: ui.NewConsoleReporter(cmd.OutOrStdout(), s.outputFormat(), s.verbosity > 0),
	}
}

// say prints a status line unless the output is JSON
func (s *cliState) say(w io.Writer, format string, args ...interface{}) {
	if s.outputFormat() == ui.FormatJSON {
		return
	}
	_, _ = fmt.Fprintf(w, format, args...)
}

// promptSelection opens the interactive selector when allowed
func (s *cliState) promptSelection(noUI bool, initial selector.Selection) (selector.Selection, error) {
	if noUI || s.deps.prompter == nil || s.deps.interactive == nil || !s.deps.interactive() {
		return selector.Selection{}, errors.New(errors.ErrInvalidInput, MsgErrNoTerminal)
	}
	return s.deps.prompter.Select(initial)
}

func newInitCmd(state *cliState) *cobra.Command {
	var (
		opts commands.InitOptions
		noUI bool
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.Paths) == 0 && len(opts.Bundles) == 0 && !opts.IncludeDefaults {
				sel, err := state.promptSelection(noUI, selector.Selection{Bundles: bundles.DefaultIDs()})
				if err != nil {
					return err
				}
				opts.Paths, opts.Bundles = sel.Paths, sel.Bundles
			}

			opts.Env = state.env(cmd)
			result, err := commands.Init(opts)
			if err != nil {
				return err
			}
			state.say(cmd.OutOrStdout(), MsgConfigWritten, result.ConfigPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.RepoURL, "repo-url", "", MsgFlagRepoURL)
	cmd.Flags().StringVar(&opts.Branch, "branch", config.DefaultBranch, MsgFlagBranch)
	cmd.Flags().StringArrayVar(&opts.Paths, "path", nil, MsgFlagPath)
	cmd.Flags().StringSliceVar(&opts.Bundles, "bundle", nil, MsgFlagBundle)
	cmd.Flags().BoolVar(&opts.Force, "force", false, MsgFlagForce)
	cmd.Flags().BoolVar(&opts.VerifyRemote, "verify-remote", false, MsgFlagVerifyRemote)
	cmd.Flags().BoolVar(&opts.IncludeDefaults, "include-defaults", false, MsgFlagIncludeDefaults)
	cmd.Flags().BoolVar(&noUI, "no-ui", false, MsgFlagNoUI)
	_ = cmd.MarkFlagRequired("repo-url")

	return cmd
}

func newInstallCmd(state *cliState) *cobra.Command {
	var (
		opts commands.InstallOptions
		noUI bool
	)

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.Paths) == 0 && len(opts.Bundles) == 0 {
				current, err := config.Load()
				if err != nil {
					return err
				}
				sel, err := state.promptSelection(noUI, selector.Selection{
					Bundles: current.Files.Bundles,
					Paths:   current.Files.Paths,
				})
				if err != nil {
					return err
				}
				opts.Paths, opts.Bundles = sel.Paths, sel.Bundles
			}

			opts.Env = state.env(cmd)
			cfg, err := commands.Install(opts)
			if err != nil {
				return err
			}
			state.say(cmd.OutOrStdout(), MsgSelectionSaved, len(cfg.Files.Paths), len(cfg.Files.Bundles))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&opts.Paths, "path", nil, MsgFlagPath)
	cmd.Flags().StringSliceVar(&opts.Bundles, "bundle", nil, MsgFlagBundle)
	cmd.Flags().BoolVar(&noUI, "no-ui", false, MsgFlagNoUI)

	return cmd
}

func newBackupCmd(state *cliState) *cobra.Command {
	var opts commands.BackupOptions

	cmd := &cobra.Command{
		Use:     "backup",
		Short:   MsgBackupShort,
		Long:    MsgBackupLong,
		Example: MsgBackupExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Env = state.env(cmd)
			result, err := commands.Backup(opts)
			if result != nil {
				if renderErr := ui.RenderSummary(cmd.OutOrStdout(), result.Snapshot, state.outputFormat()); renderErr != nil {
					log.Warn().Err(renderErr).Msg("Failed to render summary")
				}
			}
			if err != nil {
				return err
			}

			if !result.Committed {
				state.say(cmd.OutOrStdout(), "%s\n", MsgNothingToCommit)
			}
			state.say(cmd.OutOrStdout(), "%s\n", MsgBackupComplete)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", MsgFlagMessage)

	return cmd
}

func newRestoreCmd(state *cliState) *cobra.Command {
	var opts commands.RestoreOptions

	cmd := &cobra.Command{
		Use:     "restore",
		Short:   MsgRestoreShort,
		Long:    MsgRestoreLong,
		Example: MsgRestoreExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Env = state.env(cmd)
			opts.Reload = state.deps.reload
			result, err := commands.Restore(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := ui.RenderSummary(out, result.Restore, state.outputFormat()); err != nil {
				log.Warn().Err(err).Msg("Failed to render summary")
			}
			state.say(out, "%s\n", MsgRestoreComplete)
			switch {
			case result.ReloadErr != nil:
				state.say(out, MsgReloadFailed, result.ReloadErr)
			case result.Reloaded:
				state.say(out, "%s\n", MsgReloadDone)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&opts.Paths, "path", nil, MsgFlagRestorePath)
	cmd.Flags().BoolVar(&opts.All, "all", false, MsgFlagAll)
	cmd.Flags().BoolVar(&opts.SkipReload, "no-reload", false, MsgFlagNoReload)

	return cmd
}

func newBundleCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bundle",
		Short:   MsgBundleShort,
		GroupID: "core",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Short:   MsgBundleListShort,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.ListBundles(commands.Env{})
			if err != nil {
				return err
			}
			return ui.RenderBundles(cmd.OutOrStdout(), result.Bundles, result.Selected, state.outputFormat())
		},
	})

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
