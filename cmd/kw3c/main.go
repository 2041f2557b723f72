package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"kw3c.dev/cli/internal/interfaces/cli"
	"kw3c.dev/cli/internal/interfaces/di"
)

func main() {
	// Launched children run in their own session and are not affected by
	// the signals that stop kw3c.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Run(ctx, di.Bootstrap, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
