package process

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"kw3c.dev/cli/internal/core/domain/launch"
	procp "kw3c.dev/cli/internal/core/ports/process"
)

// Launcher implements the process Launcher port on top of os/exec
type Launcher struct {
	logger zerolog.Logger
	now    func() time.Time
	start  func(cmd *exec.Cmd) error
}

// NewLauncher creates a new detached process launcher
func NewLauncher(logger zerolog.Logger) *Launcher {
	return &Launcher{
		logger: logger.With().Str("component", "launcher").Logger(),
		now:    time.Now,
		start:  func(cmd *exec.Cmd) error { return cmd.Start() },
	}
}

// Launch starts executablePath with no arguments, no stdio and the caller's
// environment and working directory. It returns once the OS has accepted or
// refused the process; the child is never waited on by the caller.
func (l *Launcher) Launch(ctx context.Context, executablePath string) (result launch.Result) {
	id := launch.NewID()
	attempted := l.now()
	log := l.logger.With().Str("launch_id", id.Value()).Str("path", executablePath).Logger()

	defer func() {
		if r := recover(); r != nil {
			result = launch.NewFailedToStart(id, executablePath, fmt.Errorf("panic during process start: %v", r), attempted)
			log.Error().Interface("panic", r).Msg("process start panicked")
		}
	}()

	if err := ctx.Err(); err != nil {
		result = launch.NewFailedToStart(id, executablePath, launch.ErrCancelled(err), attempted)
		log.Warn().Err(err).Msg("launch cancelled before start")
		return result
	}

	// exec.Command rather than CommandContext: the child must outlive ctx.
	cmd := exec.Command(executablePath)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = detachedAttrs()

	if err := l.start(cmd); err != nil {
		result = launch.NewFailedToStart(id, executablePath, err, attempted)
		log.Error().
			Err(err).
			Str("kind", string(result.Failure().Kind)).
			Msg("failed to start process")
		return result
	}

	pid := -1
	if cmd.Process != nil {
		pid = cmd.Process.Pid
		// Reap in the background so the child does not linger as a zombie
		// while this process is alive.
		go func() { _ = cmd.Wait() }()
	}

	log.Info().Int("pid", pid).Msg("process started")
	return launch.NewStarted(id, executablePath, pid, attempted)
}

var _ procp.Launcher = (*Launcher)(nil)
