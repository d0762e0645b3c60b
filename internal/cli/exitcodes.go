package cli

import (
	"errors"

	"github.com/yaklabco/tomlorder/pkg/pipeline"
	"github.com/yaklabco/tomlorder/pkg/runner"
)

// Exit codes for tomlorder.
const (
	// ExitSuccess indicates every file is, or now is, in order.
	ExitSuccess = 0

	// ExitChanges indicates --check found files that would be reordered.
	ExitChanges = 1

	// ExitFailure indicates at least one file could not be processed.
	ExitFailure = 2

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that carry an exit code to main.
var (
	// ErrChangesFound is returned by --check when a file is out of order.
	ErrChangesFound = errors.New("files would be reordered")

	// ErrFilesFailed is returned when some files could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")

	// ErrConfig is returned when configuration cannot be loaded.
	ErrConfig = errors.New("failed to load configuration")
)

// ExitCodeFromResult determines the exit code based on the run result.
// Failed files take precedence over pending changes.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() {
		return ExitFailure
	}
	if check && result.HasChanges() {
		return ExitChanges
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrChangesFound):
		return ExitChanges
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, pipeline.ErrWriteFailure),
		errors.Is(err, pipeline.ErrPermissionDenied),
		errors.Is(err, pipeline.ErrFileNotFound):
		return ExitIOError
	default:
		return ExitFailure
	}
}

// resultError converts an exit code into the matching sentinel error.
func resultError(code int) error {
	switch code {
	case ExitChanges:
		return ErrChangesFound
	case ExitFailure:
		return ErrFilesFailed
	default:
		return nil
	}
}
