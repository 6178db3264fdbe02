package errors

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestMarkedKindsSurviveWrapping(t *testing.T) {
	err := NotFoundf("variable %q", "JAVA_HOME")
	wrapped := errors.Wrap(err, "validating home")

	if !Is(wrapped, ErrNotFound) {
		t.Fatalf("Is(%v, ErrNotFound) = false", wrapped)
	}
	if Is(wrapped, ErrIO) {
		t.Errorf("Is(%v, ErrIO) = true, want false", wrapped)
	}

	ioErr := IOf(errors.New("access denied"), "writing %s", "Path")
	if !Is(ioErr, ErrIO) {
		t.Errorf("Is(%v, ErrIO) = false", ioErr)
	}
	if got := ioErr.Error(); got != "writing Path: access denied" {
		t.Errorf("Error() = %q", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, -1},
		{"not found", NotFoundf("no jdk"), ExitUser},
		{"index", Mark(errors.New("index 9"), ErrInvalidIndex), ExitUser},
		{"cycle", Mark(errors.New("A"), ErrCyclicReference), ExitUser},
		{"probe", Mark(errors.New("where"), ErrProbe), ExitSystem},
		{"io", IOf(errors.New("denied"), "set"), ExitSystem},
		{"plain", errors.New("boom"), ExitSystem},
		{"exit error", NewUserError(errors.New("x"), ""), ExitUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if tt.code == -1 {
				if got != nil {
					t.Fatalf("Classify(nil) = %v, want nil", got)
				}
				return
			}
			if got.Code != tt.code {
				t.Errorf("Classify() code = %d, want %d", got.Code, tt.code)
			}
			if !Is(got, tt.err) {
				t.Errorf("Classify() lost the underlying error")
			}
		})
	}
}

func TestExitError_NilErr(t *testing.T) {
	e := &ExitError{Code: ExitSystem}
	if got := e.Error(); got != "exit code 2" {
		t.Errorf("Error() = %q, want %q", got, "exit code 2")
	}
}
