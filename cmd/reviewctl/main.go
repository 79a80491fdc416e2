package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/review-prompt/reviewctl/internal/cli"
	"github.com/review-prompt/reviewctl/internal/logging"
)

// main is the entry point for the reviewctl CLI binary.
func main() {
	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx, os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
