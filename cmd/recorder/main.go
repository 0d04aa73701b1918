package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/petems/recorder/internal/cli"
	"github.com/petems/recorder/internal/config"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
	// Commit is set via ldflags at build time
	Commit = "unknown"
)

func init() {
	// The tray must run on the main OS thread
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load config from XDG/Library/AppData
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps := &cli.Dependencies{
		Config:  cfg,
		Version: Version,
		Commit:  Commit,
	}

	return cli.NewRootCmd(deps).ExecuteContext(ctx)
}
