package employeemock

import (
	"context"

	"gorm.io/gorm"

	"expense-approval-backend/internal/domain/authz"
	domain "expense-approval-backend/internal/domain/employee"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetByEmpIDFn        func(ctx context.Context, empID uint64) (*domain.Employee, error)
	DetailFn            func(ctx context.Context, empID uint64) (*domain.Detail, error)
	GetUserByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	GetUserByIDFn       func(ctx context.Context, userID uint64) (*domain.User, error)
	ContactsByRoleFn    func(ctx context.Context, role authz.Role) ([]domain.Contact, error)
	ContactsByEmpIDsFn  func(ctx context.Context, empIDs []uint64) ([]domain.Contact, error)
}

func (m *Repo) GetByEmpID(ctx context.Context, empID uint64) (*domain.Employee, error) {
	if m.GetByEmpIDFn != nil {
		return m.GetByEmpIDFn(ctx, empID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Detail(ctx context.Context, empID uint64) (*domain.Detail, error) {
	if m.DetailFn != nil {
		return m.DetailFn(ctx, empID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetUserByUsernameFn != nil {
		return m.GetUserByUsernameFn(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetUserByID(ctx context.Context, userID uint64) (*domain.User, error) {
	if m.GetUserByIDFn != nil {
		return m.GetUserByIDFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ContactsByRole(ctx context.Context, role authz.Role) ([]domain.Contact, error) {
	if m.ContactsByRoleFn != nil {
		return m.ContactsByRoleFn(ctx, role)
	}
	return nil, nil
}

func (m *Repo) ContactsByEmpIDs(ctx context.Context, empIDs []uint64) ([]domain.Contact, error) {
	if m.ContactsByEmpIDsFn != nil {
		return m.ContactsByEmpIDsFn(ctx, empIDs)
	}
	return nil, nil
}
