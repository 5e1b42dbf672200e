package project

import "errors"

// GeneralCode is the sentinel project: claims against it must carry their own
// site location and incharge.
const GeneralCode = "general"

var ErrCodeTaken = errors.New("project code already exists")

// ErrInUse blocks deleting a project that expense claims reference.
var ErrInUse = errors.New("project is referenced by expense claims and cannot be deleted")

type Project struct {
	ProjectID           uint64  `gorm:"primaryKey;column:project_id" json:"project_id"`
	ProjectCode         string  `gorm:"column:project_code;uniqueIndex" json:"project_code"`
	ProjectName         string  `gorm:"column:project_name" json:"project_name"`
	SiteLocation        *string `gorm:"column:site_location" json:"site_location"`
	SiteInchargeEmpCode *string `gorm:"column:site_incharge_emp_code" json:"site_incharge_emp_code"`
}

func (Project) TableName() string { return "projects" }
