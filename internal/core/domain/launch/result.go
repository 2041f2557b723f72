package launch

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome tag of a launch attempt
type Status string

const (
	StatusStarted       Status = "started"
	StatusFailedToStart Status = "failed_to_start"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// ID correlates a launch attempt with its log lines
type ID struct {
	value string
}

// NewID generates a fresh launch ID
func NewID() ID {
	return ID{value: uuid.NewString()}
}

// Value returns the string value of the ID
func (i ID) Value() string {
	return i.value
}

// String implements the Stringer interface
func (i ID) String() string {
	return i.value
}

// Result is the value returned by every launch attempt. No handle to the child
// process is kept: PID is informational only.
type Result struct {
	id        ID
	path      string
	status    Status
	pid       int
	failure   *Failure
	attempted time.Time
}

// NewStarted records a successful process creation
func NewStarted(id ID, path string, pid int, at time.Time) Result {
	return Result{id: id, path: path, status: StatusStarted, pid: pid, attempted: at}
}

// NewFailedToStart records a failed process creation
func NewFailedToStart(id ID, path string, cause error, at time.Time) Result {
	return Result{
		id:        id,
		path:      path,
		status:    StatusFailedToStart,
		pid:       -1,
		failure:   NewFailure(path, cause),
		attempted: at,
	}
}

// ID returns the launch correlation ID
func (r Result) ID() ID {
	return r.id
}

// Path returns the executable path that was launched
func (r Result) Path() string {
	return r.path
}

// Status returns the outcome tag
func (r Result) Status() Status {
	return r.status
}

// Started reports whether the process was created
func (r Result) Started() bool {
	return r.status == StatusStarted
}

// Failed reports whether process creation failed
func (r Result) Failed() bool {
	return r.status == StatusFailedToStart
}

// PID returns the child's process ID, or -1 when nothing was started
func (r Result) PID() int {
	return r.pid
}

// Reason returns the OS-level failure description, empty on success
func (r Result) Reason() string {
	if r.failure == nil {
		return ""
	}
	return r.failure.Reason()
}

// Failure returns the failure details, nil on success
func (r Result) Failure() *Failure {
	return r.failure
}

// AttemptedAt returns when process creation was attempted
func (r Result) AttemptedAt() time.Time {
	return r.attempted
}

// String returns a human-readable summary
func (r Result) String() string {
	if r.Started() {
		return fmt.Sprintf("%s %s (pid %d)", r.status, r.path, r.pid)
	}
	return fmt.Sprintf("%s %s: %s", r.status, r.path, r.Reason())
}

// FailureKind classifies why process creation failed
type FailureKind string

const (
	FailureNotFound         FailureKind = "not_found"
	FailurePermissionDenied FailureKind = "permission_denied"
	FailureNotExecutable    FailureKind = "not_executable"
	FailureResources        FailureKind = "resources"
	FailureCancelled        FailureKind = "cancelled"
	FailureUnknown          FailureKind = "unknown"
)

// Failure is the ProcessLaunchFailure error kind. It always travels inside a
// Result rather than escaping to the caller.
type Failure struct {
	Path  string
	Kind  FailureKind
	Cause error
}

// NewFailure classifies cause for the given path
func NewFailure(path string, cause error) *Failure {
	if cause == nil {
		cause = errors.New("unknown launch failure")
	}
	return &Failure{Path: path, Kind: Classify(cause), Cause: cause}
}

func (f *Failure) Error() string {
	return fmt.Sprintf("failed to start %s: %v", f.Path, f.Cause)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Reason returns the underlying OS error description
func (f *Failure) Reason() string {
	if f == nil || f.Cause == nil {
		return ""
	}
	return f.Cause.Error()
}

// Classify maps an OS error onto a FailureKind
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureUnknown
	case errors.Is(err, errCancelled):
		return FailureCancelled
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, exec.ErrNotFound):
		return FailureNotFound
	case errors.Is(err, fs.ErrPermission):
		return FailurePermissionDenied
	case errors.Is(err, syscall.ENOEXEC):
		return FailureNotExecutable
	case errors.Is(err, syscall.EAGAIN), errors.Is(err, syscall.ENOMEM):
		return FailureResources
	default:
		return FailureUnknown
	}
}

var errCancelled = errors.New("launch cancelled before process creation")

// ErrCancelled is returned as the cause when the caller's context ended first
func ErrCancelled(ctxErr error) error {
	if ctxErr == nil {
		return errCancelled
	}
	return fmt.Errorf("%w: %w", errCancelled, ctxErr)
}
