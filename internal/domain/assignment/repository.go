package assignment

import (
	"context"

	"expense-approval-backend/internal/domain/employee"
)

type Repository interface {
	List(ctx context.Context) ([]View, error)
	Create(ctx context.Context, a *Assignment) error
	Reassign(ctx context.Context, id, coordinatorEmpID, departmentID uint64) error

	// DepartmentsFor returns the department ids the coordinator is
	// assigned to.
	DepartmentsFor(ctx context.Context, coordinatorEmpID uint64) ([]uint64, error)

	// Exists reports whether (coordinator, department) is assigned; this
	// gate decides self-approval eligibility.
	Exists(ctx context.Context, coordinatorEmpID, departmentID uint64) (bool, error)

	// CoordinatorsForDepartment lists mailable coordinators assigned to
	// the department.
	CoordinatorsForDepartment(ctx context.Context, departmentID uint64) ([]employee.Contact, error)
}
