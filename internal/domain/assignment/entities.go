package assignment

// Assignment maps a coordinator employee to a department they review for.
// The mapping governs coordinator claim visibility and the self-approval
// rule. Rows are reassigned, never directly deleted.
type Assignment struct {
	ID               uint64 `gorm:"primaryKey;column:id" json:"id"`
	CoordinatorEmpID uint64 `gorm:"column:coordinator_emp_id;index;uniqueIndex:ux_coordinator_department" json:"coordinator_emp_id"`
	DepartmentID     uint64 `gorm:"column:department_id;index;uniqueIndex:ux_coordinator_department" json:"department_id"`
}

func (Assignment) TableName() string { return "coordinator_departments" }

// View is the joined read model for the admin listing.
type View struct {
	Assignment
	CoordinatorEmpCode string `json:"coordinator_emp_code"`
	CoordinatorName    string `json:"coordinator_name"`
	DepartmentName     string `json:"department_name"`
}
