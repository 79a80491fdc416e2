// Package editor opens generated prompts in an external editor. Every
// operation here is best effort from the caller's point of view.
package editor

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/review-prompt/reviewctl/internal/logging"
)

// Launcher starts an editor over the prompt and related files.
type Launcher interface {
	Open(ctx context.Context, prompt string, related ...string) error
	FocusChat(ctx context.Context, command string) error
}

// Exec launches the configured editor binary via os/exec.
type Exec struct {
	// Command is the editor binary, e.g. "code".
	Command string
	Logger  *slog.Logger
}

// Open opens the prompt file. When related files are present the working
// directory is opened as a workspace so the assistant sees full context.
func (e Exec) Open(ctx context.Context, prompt string, related ...string) error {
	args := []string{prompt}
	if len(related) > 0 {
		args = append([]string{".", prompt}, related...)
	}
	return e.run(ctx, args...)
}

// FocusChat asks the editor to focus its assistant chat panel.
func (e Exec) FocusChat(ctx context.Context, command string) error {
	return e.run(ctx, "--command", command)
}

func (e Exec) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, e.Command, args...)
	out := logging.NewWriter(e.Logger, e.Command)
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}
