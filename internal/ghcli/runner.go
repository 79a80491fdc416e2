package ghcli

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes the GitHub CLI binary and returns its captured output.
type Runner interface {
	Run(ctx context.Context, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs the real gh binary via os/exec.
type ExecRunner struct{}

// Run invokes gh with the given arguments and buffers both output streams.
func (ExecRunner) Run(ctx context.Context, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
