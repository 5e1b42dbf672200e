package mysql

import (
	"context"

	"gorm.io/gorm"

	"expense-approval-backend/internal/domain/authz"
	domain "expense-approval-backend/internal/domain/employee"
)

type EmployeeRepository struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository { return &EmployeeRepository{db: db} }

func (r *EmployeeRepository) GetByEmpID(ctx context.Context, empID uint64) (*domain.Employee, error) {
	var out domain.Employee
	res := r.db.WithContext(ctx).Where("emp_id = ?", empID).First(&out)
	return &out, res.Error
}

func (r *EmployeeRepository) Detail(ctx context.Context, empID uint64) (*domain.Detail, error) {
	emp, err := r.GetByEmpID(ctx, empID)
	if err != nil {
		return nil, err
	}
	det := &domain.Detail{Employee: *emp}
	if emp.DepartmentID != nil {
		var dep domain.Department
		if err := r.db.WithContext(ctx).Where("department_id = ?", *emp.DepartmentID).First(&dep).Error; err == nil {
			det.DepartmentName = &dep.DepartmentName
		}
	}
	if emp.DesignationID != nil {
		var des domain.Designation
		if err := r.db.WithContext(ctx).Where("designation_id = ?", *emp.DesignationID).First(&des).Error; err == nil {
			det.DesignationName = &des.DesignationName
		}
	}
	return det, nil
}

func (r *EmployeeRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var out domain.User
	res := r.db.WithContext(ctx).Where("username = ?", username).First(&out)
	return &out, res.Error
}

func (r *EmployeeRepository) GetUserByID(ctx context.Context, userID uint64) (*domain.User, error) {
	var out domain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *EmployeeRepository) ContactsByRole(ctx context.Context, role authz.Role) ([]domain.Contact, error) {
	var rows []contactRow
	err := r.db.WithContext(ctx).Table("employees").
		Select("employees.emp_id, employees.first_name, employees.middle_name, employees.last_name, employees.email").
		Joins("JOIN users ON users.emp_id = employees.emp_id").
		Where("users.role = ? AND users.status = ?", role, "active").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return contacts(rows), nil
}

func (r *EmployeeRepository) ContactsByEmpIDs(ctx context.Context, empIDs []uint64) ([]domain.Contact, error) {
	if len(empIDs) == 0 {
		return nil, nil
	}
	var rows []contactRow
	err := r.db.WithContext(ctx).Table("employees").
		Select("emp_id, first_name, middle_name, last_name, email").
		Where("emp_id IN ?", empIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return contacts(rows), nil
}

type contactRow struct {
	EmpID      uint64
	FirstName  string
	MiddleName *string
	LastName   string
	Email      string
}

func contacts(rows []contactRow) []domain.Contact {
	out := make([]domain.Contact, 0, len(rows))
	for _, row := range rows {
		emp := domain.Employee{
			FirstName:  row.FirstName,
			MiddleName: row.MiddleName,
			LastName:   row.LastName,
		}
		out = append(out, domain.Contact{EmpID: row.EmpID, Name: emp.FullName(), Email: row.Email})
	}
	return out
}
