package assignmentmock

import (
	"context"

	domain "expense-approval-backend/internal/domain/assignment"
	"expense-approval-backend/internal/domain/employee"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	ListFn                      func(ctx context.Context) ([]domain.View, error)
	CreateFn                    func(ctx context.Context, a *domain.Assignment) error
	ReassignFn                  func(ctx context.Context, id, coordinatorEmpID, departmentID uint64) error
	DepartmentsForFn            func(ctx context.Context, coordinatorEmpID uint64) ([]uint64, error)
	ExistsFn                    func(ctx context.Context, coordinatorEmpID, departmentID uint64) (bool, error)
	CoordinatorsForDepartmentFn func(ctx context.Context, departmentID uint64) ([]employee.Contact, error)
}

func (m *Repo) List(ctx context.Context) ([]domain.View, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Create(ctx context.Context, a *domain.Assignment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Reassign(ctx context.Context, id, coordinatorEmpID, departmentID uint64) error {
	if m.ReassignFn != nil {
		return m.ReassignFn(ctx, id, coordinatorEmpID, departmentID)
	}
	return nil
}

func (m *Repo) DepartmentsFor(ctx context.Context, coordinatorEmpID uint64) ([]uint64, error) {
	if m.DepartmentsForFn != nil {
		return m.DepartmentsForFn(ctx, coordinatorEmpID)
	}
	return nil, nil
}

func (m *Repo) Exists(ctx context.Context, coordinatorEmpID, departmentID uint64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, coordinatorEmpID, departmentID)
	}
	return false, nil
}

func (m *Repo) CoordinatorsForDepartment(ctx context.Context, departmentID uint64) ([]employee.Contact, error) {
	if m.CoordinatorsForDepartmentFn != nil {
		return m.CoordinatorsForDepartmentFn(ctx, departmentID)
	}
	return nil, nil
}
