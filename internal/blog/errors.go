package blog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both absence and visibility failures, so a
	// hidden or scheduled post is indistinguishable from a missing one.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied means the viewer is authenticated but is not
	// the author of the target.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnauthenticated means the operation requires a signed-in viewer.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrValidation is the class matched by every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrConfirmRequired is returned by post deletion when the confirm
	// flag is absent or false; the caller re-presents the prompt.
	ErrConfirmRequired = &ValidationError{Field: "confirm", Reason: "explicit confirmation required"}
)

// ValidationError reports a field-level constraint failure. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
