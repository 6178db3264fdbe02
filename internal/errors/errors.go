package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes returned by the jdkswitch binary.
const (
	ExitSuccess = 0

	// ExitUser indicates bad input: an unknown index, nothing to switch to.
	ExitUser = 1

	// ExitSystem indicates registry, filesystem or probe failures.
	ExitSystem = 2
)

// Error kinds. Collaborator errors are marked with one of these so callers
// can classify them with Is while the message keeps its context.
var (
	// ErrNotFound reports a missing variable, JDK index or an empty inventory.
	ErrNotFound = errors.New("not found")

	// ErrIO reports a failed filesystem or store access.
	ErrIO = errors.New("i/o failure")

	// ErrProbe reports that locating the java launcher failed or produced
	// output that could not be decoded.
	ErrProbe = errors.New("probe failure")

	// ErrCyclicReference reports variable references that never settle.
	ErrCyclicReference = errors.New("cyclic variable reference")

	// ErrInvalidIndex reports a --set index outside the inventory.
	ErrInvalidIndex = errors.New("invalid jdk index")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return errors.As(err, target) }

// Mark attaches kind to err so that Is(err, kind) holds.
func Mark(err, kind error) error { return errors.Mark(err, kind) }

// NotFoundf builds an error that matches ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrNotFound)
}

// IOf wraps err with context and marks it as ErrIO.
func IOf(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrIO)
}

// ExitError carries an exit code and an optional suggestion for the user.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewUserError wraps err with ExitUser.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError wraps err with ExitSystem.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// Classify picks an exit code for err from its kind. User-facing kinds map
// to ExitUser, everything else to ExitSystem. An existing ExitError is
// returned as is.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	switch {
	case errors.Is(err, ErrInvalidIndex):
		return NewUserError(err, "Run: jdkswitch --list")
	case errors.Is(err, ErrNotFound):
		return NewUserError(err, "Install a JDK under Program Files or ~/.jdks, then run: jdkswitch --list")
	case errors.Is(err, ErrCyclicReference):
		return NewUserError(err, "Check the environment variables for references to each other")
	case errors.Is(err, ErrProbe):
		return NewSystemError(err, "Make sure java is reachable on PATH")
	default:
		return NewSystemError(err, "Run the terminal as Administrator and try again")
	}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
