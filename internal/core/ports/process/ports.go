package process

import (
	"context"

	"kw3c.dev/cli/internal/core/domain/launch"
)

// Launcher starts a bundled executable detached from the caller.
type Launcher interface {
	// Launch attempts to create the process and returns as soon as creation
	// has been attempted. Failure is reported in the Result, never as a panic.
	Launch(ctx context.Context, executablePath string) launch.Result
}
