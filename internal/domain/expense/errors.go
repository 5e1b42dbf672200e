package expense

import (
	"fmt"

	"expense-approval-backend/internal/domain/authz"
)

// ValidationError covers malformed input and business-rule failures detected
// before any write (400).
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError covers role/permission failures, including the
// self-approval restriction (403). The business reason is always surfaced.
type AuthorizationError struct{ Msg string }

func (e *AuthorizationError) Error() string { return e.Msg }

// NotFoundError names the missing resource (404).
type NotFoundError struct{ Resource string }

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// InvalidTransitionError reports a review action not permitted from the
// claim's current status for the acting role.
type InvalidTransitionError struct {
	Role   authz.Role
	Action Action
	Status Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s cannot %s expense in status %s", e.Role, e.Action, e.Status)
}
