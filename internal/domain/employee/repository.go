package employee

import (
	"context"

	"expense-approval-backend/internal/domain/authz"
)

type Repository interface {
	GetByEmpID(ctx context.Context, empID uint64) (*Employee, error)
	Detail(ctx context.Context, empID uint64) (*Detail, error)

	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, userID uint64) (*User, error)

	// ContactsByRole lists mailable employees holding the given role.
	ContactsByRole(ctx context.Context, role authz.Role) ([]Contact, error)
	ContactsByEmpIDs(ctx context.Context, empIDs []uint64) ([]Contact, error)
}
