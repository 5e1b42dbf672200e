package employee

import (
	"strings"
	"time"

	"expense-approval-backend/internal/domain/authz"
)

type Employee struct {
	EmpID              uint64     `gorm:"primaryKey;column:emp_id" json:"emp_id"`
	EmpCode            string     `gorm:"column:emp_code;uniqueIndex" json:"emp_code"`
	FirstName          string     `gorm:"column:first_name" json:"first_name"`
	MiddleName         *string    `gorm:"column:middle_name" json:"middle_name"`
	LastName           string     `gorm:"column:last_name" json:"last_name"`
	Email              string     `gorm:"column:email" json:"email"`
	DepartmentID       *uint64    `gorm:"column:department_id;index" json:"department_id"`
	DesignationID      *uint64    `gorm:"column:designation_id" json:"designation_id"`
	LastEmploymentDate *time.Time `gorm:"column:last_employment_date;type:date" json:"last_employment_date"`
}

func (Employee) TableName() string { return "employees" }

// FullName collapses the optional middle name without double spaces.
func (e *Employee) FullName() string {
	parts := []string{e.FirstName}
	if e.MiddleName != nil && *e.MiddleName != "" {
		parts = append(parts, *e.MiddleName)
	}
	parts = append(parts, e.LastName)
	return strings.TrimSpace(strings.Join(parts, " "))
}

type User struct {
	UserID       uint64     `gorm:"primaryKey;column:user_id" json:"user_id"`
	EmpID        uint64     `gorm:"column:emp_id;uniqueIndex" json:"emp_id"`
	Username     string     `gorm:"column:username;uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	Role         authz.Role `gorm:"column:role" json:"role"`
	Status       string     `gorm:"column:status;default:'active'" json:"status"`
}

func (User) TableName() string { return "users" }

// Active reports whether the account may authenticate: active status and no
// past employment end date.
func (u *User) Active(emp *Employee, now time.Time) bool {
	if u.Status != "active" {
		return false
	}
	if emp != nil && emp.LastEmploymentDate != nil && !emp.LastEmploymentDate.After(now) {
		return false
	}
	return true
}

type Department struct {
	DepartmentID   uint64 `gorm:"primaryKey;column:department_id" json:"department_id"`
	DepartmentName string `gorm:"column:department_name" json:"department_name"`
}

func (Department) TableName() string { return "departments" }

type Designation struct {
	DesignationID   uint64 `gorm:"primaryKey;column:designation_id" json:"designation_id"`
	DesignationName string `gorm:"column:designation_name" json:"designation_name"`
}

func (Designation) TableName() string { return "designations" }

// Detail is the joined read model used for notifications and claim views.
type Detail struct {
	Employee
	DepartmentName  *string `json:"department_name"`
	DesignationName *string `json:"designation_name"`
}

// Contact is a notification recipient.
type Contact struct {
	EmpID uint64 `json:"emp_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
