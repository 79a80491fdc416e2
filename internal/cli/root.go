// Package cli defines the command-line interface for reviewctl.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/review-prompt/reviewctl/internal/clipboard"
	"github.com/review-prompt/reviewctl/internal/config"
	"github.com/review-prompt/reviewctl/internal/editor"
	"github.com/review-prompt/reviewctl/internal/ghcli"
	"github.com/review-prompt/reviewctl/internal/logging"
)

// extractFlags holds the per-run options of the root command.
type extractFlags struct {
	User   string
	Repo   string
	Output string
	Copy   bool
	NoCopy bool
	Open   bool
	Chat   bool
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(ctx context.Context, args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootCmd := newRootCommand(logger)
	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(ctx)
}

// newRootCommand constructs the root cobra.Command with flags and subcommands.
func newRootCommand(logger *slog.Logger) *cobra.Command {
	var (
		configPath string
		flags      extractFlags
	)

	cmd := &cobra.Command{
		Use:   "reviewctl <pr-url-or-number>",
		Short: "Turn pull request review comments into an AI assistant prompt",
		Long: "reviewctl fetches review comments from a GitHub pull request through the gh CLI, " +
			"renders them into a markdown prompt for an AI coding assistant, and optionally " +
			"copies the prompt to the clipboard and opens the touched files in an editor.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			logger = logging.NewLogger(os.Stderr, level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
				logger = logging.NewLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
			}

			gh := ghcli.NewClient(logger, nil)
			deps := runDeps{
				Fetcher:   gh,
				Repos:     gh,
				Files:     gh,
				Clipboard: clipboard.System{},
				Editor:    editor.Exec{Command: cfg.Editor, Logger: logger},
				Logger:    logger,
			}
			return runExtract(cmd.Context(), deps, cfg, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.User, "user", "u", "", "Only include comments from this reviewer login")
	cmd.Flags().StringVarP(&flags.Repo, "repo", "r", "", "Repository slug owner/name (when the input is a bare number)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output file path (default: generated from PR number and filters)")
	cmd.Flags().BoolVar(&flags.Copy, "copy", false, "Copy the prompt to the clipboard")
	cmd.Flags().BoolVar(&flags.NoCopy, "no-copy", false, "Skip the automatic clipboard copy when opening the editor")
	cmd.Flags().BoolVar(&flags.Open, "open", true, "Open the prompt and PR files in the editor")
	cmd.Flags().BoolVar(&flags.Chat, "chat", false, "Focus the assistant chat panel after opening the editor")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a reviewctl config file")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newDoctorCommand(&configPath))

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
