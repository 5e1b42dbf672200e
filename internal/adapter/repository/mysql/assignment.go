package mysql

import (
	"context"

	"gorm.io/gorm"

	domain "expense-approval-backend/internal/domain/assignment"
	"expense-approval-backend/internal/domain/employee"
)

type AssignmentRepository struct{ db *gorm.DB }

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) List(ctx context.Context) ([]domain.View, error) {
	var rows []assignmentRow
	err := r.db.WithContext(ctx).Table("coordinator_departments").
		Select("coordinator_departments.id, coordinator_departments.coordinator_emp_id, coordinator_departments.department_id, employees.emp_code, employees.first_name, employees.middle_name, employees.last_name, departments.department_name").
		Joins("JOIN employees ON employees.emp_id = coordinator_departments.coordinator_emp_id").
		Joins("JOIN departments ON departments.department_id = coordinator_departments.department_id").
		Order("departments.department_name ASC, employees.emp_code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.View, 0, len(rows))
	for _, row := range rows {
		emp := employee.Employee{
			FirstName:  row.FirstName,
			MiddleName: row.MiddleName,
			LastName:   row.LastName,
		}
		out = append(out, domain.View{
			Assignment: domain.Assignment{
				ID:               row.ID,
				CoordinatorEmpID: row.CoordinatorEmpID,
				DepartmentID:     row.DepartmentID,
			},
			CoordinatorEmpCode: row.EmpCode,
			CoordinatorName:    emp.FullName(),
			DepartmentName:     row.DepartmentName,
		})
	}
	return out, nil
}

type assignmentRow struct {
	ID               uint64
	CoordinatorEmpID uint64
	DepartmentID     uint64
	EmpCode          string
	FirstName        string
	MiddleName       *string
	LastName         string
	DepartmentName   string
}

func (r *AssignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssignmentRepository) Reassign(ctx context.Context, id, coordinatorEmpID, departmentID uint64) error {
	res := r.db.WithContext(ctx).Model(&domain.Assignment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"coordinator_emp_id": coordinatorEmpID,
			"department_id":      departmentID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AssignmentRepository) DepartmentsFor(ctx context.Context, coordinatorEmpID uint64) ([]uint64, error) {
	var out []uint64
	err := r.db.WithContext(ctx).Model(&domain.Assignment{}).
		Where("coordinator_emp_id = ?", coordinatorEmpID).
		Pluck("department_id", &out).Error
	return out, err
}

func (r *AssignmentRepository) Exists(ctx context.Context, coordinatorEmpID, departmentID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Assignment{}).
		Where("coordinator_emp_id = ? AND department_id = ?", coordinatorEmpID, departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) CoordinatorsForDepartment(ctx context.Context, departmentID uint64) ([]employee.Contact, error) {
	var rows []contactRow
	err := r.db.WithContext(ctx).Table("coordinator_departments").
		Select("employees.emp_id, employees.first_name, employees.middle_name, employees.last_name, employees.email").
		Joins("JOIN employees ON employees.emp_id = coordinator_departments.coordinator_emp_id").
		Where("coordinator_departments.department_id = ?", departmentID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return contacts(rows), nil
}
