package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/review-prompt/reviewctl/internal/config"
)

// doctorTimeout bounds the whole preflight run.
const doctorTimeout = 30 * time.Second

// newDoctorCommand builds the "doctor" subcommand that verifies the local
// environment before any real run.
func newDoctorCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that gh and the editor are ready to use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), doctorTimeout)
			defer cancel()

			return runDoctorChecks(ctx, logger, cfg)
		},
	}
}

// runDoctorChecks probes gh availability, version and auth status, plus the
// configured editor. Editor problems are warnings; gh problems are fatal.
func runDoctorChecks(ctx context.Context, logger *slog.Logger, cfg config.Config) error {
	var fatal int

	if _, err := exec.LookPath("gh"); err != nil {
		logger.Error("gh CLI not found in PATH", "error", err)
		fatal++
	} else {
		logger.Info("gh CLI found")

		if err := exec.CommandContext(ctx, "gh", "--version").Run(); err != nil {
			logger.Error("gh version check failed", "error", err)
			fatal++
		} else {
			logger.Info("gh version check ok")
		}

		if err := exec.CommandContext(ctx, "gh", "auth", "status").Run(); err != nil {
			logger.Error("gh is not authenticated; run 'gh auth login'", "error", err)
			fatal++
		} else {
			logger.Info("gh auth check ok")
		}
	}

	if _, err := exec.LookPath(cfg.Editor); err != nil {
		logger.Warn("editor not found; --open will fall back to the saved file", "editor", cfg.Editor, "error", err)
	} else {
		logger.Info("editor found", "editor", cfg.Editor)
	}

	if fatal > 0 {
		return fmt.Errorf("doctor found %d fatal issue(s)", fatal)
	}
	logger.Info("environment looks good")
	return nil
}
