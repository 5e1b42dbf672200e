package project

import (
	expensedomain "expense-approval-backend/internal/domain/expense"
	domain "expense-approval-backend/internal/domain/project"
)

type UpsertInput struct {
	ProjectCode         string `json:"project_code" validate:"required"`
	ProjectName         string `json:"project_name" validate:"required"`
	SiteLocation        string `json:"site_location"`
	SiteInchargeEmpCode string `json:"site_incharge_emp_code"`
}

func (in UpsertInput) validate() error {
	if in.ProjectCode == "" {
		return expensedomain.Invalid("project_code is required")
	}
	if in.ProjectName == "" {
		return expensedomain.Invalid("project_name is required")
	}
	return nil
}

func (in UpsertInput) toProject() *domain.Project {
	return &domain.Project{
		ProjectCode:         in.ProjectCode,
		ProjectName:         in.ProjectName,
		SiteLocation:        optional(in.SiteLocation),
		SiteInchargeEmpCode: optional(in.SiteInchargeEmpCode),
	}
}

// RowError reports one rejected row of a bulk import. Row numbers are
// 1-based and count the header.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Created int        `json:"created"`
	Errors  []RowError `json:"errors"`
}
