package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"kw3c.dev/cli/internal/core/domain/launch"
	"kw3c.dev/cli/internal/core/domain/messages"
	"kw3c.dev/cli/internal/core/domain/toolpath"
	msgports "kw3c.dev/cli/internal/core/ports/messages"
	"kw3c.dev/cli/internal/core/ports/process"
)

// LaunchSettings locates the validator below the installation root
type LaunchSettings struct {
	InstallRoot string
	ToolPath    []string
}

// LaunchReport is a launch result paired with the localized text shown to the user
type LaunchReport struct {
	Result  launch.Result
	Message string
	Key     messages.Key

	// ResolveErr is set when the path could not be resolved and no process
	// creation was attempted.
	ResolveErr error
}

// Started reports whether a process was created
func (r LaunchReport) Started() bool {
	return r.Result.Started()
}

// LaunchService resolves bundled tools and starts them detached
type LaunchService struct {
	launcher process.Launcher
	catalog  msgports.Catalog
	settings LaunchSettings
	logger   zerolog.Logger
	now      func() time.Time
}

// NewLaunchService creates a new launch service
func NewLaunchService(launcher process.Launcher, catalog msgports.Catalog, settings LaunchSettings, logger zerolog.Logger) *LaunchService {
	return &LaunchService{
		launcher: launcher,
		catalog:  catalog,
		settings: settings,
		logger:   logger.With().Str("component", "launch_service").Logger(),
		now:      time.Now,
	}
}

// Settings returns the configured root and validator location
func (s *LaunchService) Settings() LaunchSettings {
	return LaunchSettings{
		InstallRoot: s.settings.InstallRoot,
		ToolPath:    append([]string(nil), s.settings.ToolPath...),
	}
}

// Resolve resolves segments under the configured installation root. With no
// segments the configured validator location is used.
func (s *LaunchService) Resolve(segments ...string) (toolpath.ToolPath, error) {
	if len(segments) == 0 {
		segments = s.settings.ToolPath
	}
	return toolpath.Resolve(s.settings.InstallRoot, segments...)
}

// LaunchValidator starts the bundled validator
func (s *LaunchService) LaunchValidator(ctx context.Context) LaunchReport {
	return s.Launch(ctx)
}

// Launch resolves segments (or the validator location) and starts the tool.
// The path is recomputed on every call. Errors never escape: they are folded
// into the report.
func (s *LaunchService) Launch(ctx context.Context, segments ...string) LaunchReport {
	path, err := s.Resolve(segments...)
	if err != nil {
		return s.resolveFailure(segments, err)
	}

	result := s.launcher.Launch(ctx, path.String())
	key, args := messageFor(result)
	return LaunchReport{
		Result:  result,
		Message: s.catalog.Format(key, args...),
		Key:     key,
	}
}

func (s *LaunchService) resolveFailure(segments []string, err error) LaunchReport {
	if len(segments) == 0 {
		segments = s.settings.ToolPath
	}
	target := strings.Join(segments, "/")
	result := launch.NewFailedToStart(launch.NewID(), target, err, s.now())

	s.logger.Error().
		Err(err).
		Str("launch_id", result.ID().String()).
		Str("root", s.settings.InstallRoot).
		Strs("segments", segments).
		Msg("cannot resolve tool path")

	return LaunchReport{
		Result:     result,
		Message:    s.ResolveFailureMessage(err),
		Key:        messages.PathInvalid,
		ResolveErr: err,
	}
}

// ResolveFailureMessage localizes a Resolve error. Only the cause is shown;
// the root and segments are already known to the user.
func (s *LaunchService) ResolveFailureMessage(err error) string {
	return s.catalog.Format(messages.PathInvalid, describeResolveError(err))
}

func messageFor(result launch.Result) (messages.Key, []any) {
	if result.Started() {
		return messages.LaunchStarted, []any{result.Path()}
	}
	switch result.Failure().Kind {
	case launch.FailureNotFound:
		return messages.LaunchNotFound, []any{result.Path()}
	case launch.FailurePermissionDenied:
		return messages.LaunchPermissionDenied, []any{result.Path()}
	default:
		return messages.LaunchFailed, []any{result.Path(), result.Reason()}
	}
}

func describeResolveError(err error) string {
	var resErr *toolpath.ResolutionError
	if errors.As(err, &resErr) {
		return resErr.Err.Error()
	}
	return err.Error()
}
