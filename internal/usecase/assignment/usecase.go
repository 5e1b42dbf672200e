package assignment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "expense-approval-backend/internal/domain/assignment"
	"expense-approval-backend/internal/domain/authz"
	"expense-approval-backend/internal/domain/employee"
	expensedomain "expense-approval-backend/internal/domain/expense"
)

type UpsertInput struct {
	CoordinatorEmpID uint64 `json:"coordinator_emp_id" validate:"required"`
	DepartmentID     uint64 `json:"department_id" validate:"required"`
}

type Usecase struct {
	assignments domain.Repository
	employees   employee.Repository
}

func NewUsecase(assignments domain.Repository, employees employee.Repository) *Usecase {
	return &Usecase{assignments: assignments, employees: employees}
}

func (u *Usecase) List(ctx context.Context) ([]domain.View, error) {
	return u.assignments.List(ctx)
}

func (u *Usecase) Create(ctx context.Context, in UpsertInput) (*domain.Assignment, error) {
	if err := u.validate(ctx, in); err != nil {
		return nil, err
	}
	exists, err := u.assignments.Exists(ctx, in.CoordinatorEmpID, in.DepartmentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, expensedomain.Invalid("this coordinator is already assigned to the department")
	}
	a := &domain.Assignment{CoordinatorEmpID: in.CoordinatorEmpID, DepartmentID: in.DepartmentID}
	if err := u.assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Reassign repoints an existing mapping. Mappings are never deleted outright
// so departments cannot silently lose coordinator coverage.
func (u *Usecase) Reassign(ctx context.Context, id uint64, in UpsertInput) error {
	if err := u.validate(ctx, in); err != nil {
		return err
	}
	if err := u.assignments.Reassign(ctx, id, in.CoordinatorEmpID, in.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &expensedomain.NotFoundError{Resource: "assignment"}
		}
		return err
	}
	return nil
}

func (u *Usecase) validate(ctx context.Context, in UpsertInput) error {
	if in.CoordinatorEmpID == 0 || in.DepartmentID == 0 {
		return expensedomain.Invalid("coordinator_emp_id and department_id are required")
	}
	return u.checkCoordinator(ctx, in.CoordinatorEmpID)
}

func (u *Usecase) checkCoordinator(ctx context.Context, empID uint64) error {
	if _, err := u.employees.GetByEmpID(ctx, empID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &expensedomain.NotFoundError{Resource: "coordinator employee"}
		}
		return err
	}
	contacts, err := u.employees.ContactsByRole(ctx, authz.RoleCoordinator)
	if err != nil {
		return err
	}
	for _, c := range contacts {
		if c.EmpID == empID {
			return nil
		}
	}
	return expensedomain.Invalid("employee %d does not hold the coordinator role", empID)
}
