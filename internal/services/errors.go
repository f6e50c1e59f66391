package services

import (
	"errors"
	"fmt"

	"garagedesk/internal/authz"
)

// Sentinel errors the handlers translate into HTTP statuses.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	// ErrTenantResolution is non-fatal: the caller surfaces it and retries
	// on the next request.
	ErrTenantResolution = errors.New("could not resolve tenant")
)

// PermissionDeniedError names the module and action that were refused so the
// response can say exactly what was missing.
type PermissionDeniedError struct {
	Module string
	Action authz.Action
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: cannot %s %s", e.Action, e.Module)
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
