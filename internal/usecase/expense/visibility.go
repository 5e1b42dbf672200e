package expense

import (
	"context"

	"expense-approval-backend/internal/domain/assignment"
	"expense-approval-backend/internal/domain/authz"
	domain "expense-approval-backend/internal/domain/expense"
)

// scopeFor builds the server-side list predicate for the viewer. Clients
// never influence it.
func scopeFor(ctx context.Context, actor authz.User, assignments assignment.Repository) (domain.ListScope, error) {
	scope := domain.ListScope{OwnEmpID: actor.EmpID}
	switch actor.Role {
	case authz.RoleAdmin:
		scope.All = true
	case authz.RoleCoordinator:
		depts, err := assignments.DepartmentsFor(ctx, actor.EmpID)
		if err != nil {
			return domain.ListScope{}, err
		}
		scope.DepartmentIDs = depts
	case authz.RoleHR:
		s := domain.StageCoordinator
		scope.ReviewedStage = &s
	case authz.RoleAccounts:
		s := domain.StageHR
		scope.ReviewedStage = &s
	}
	return scope, nil
}

// canView decides single-claim visibility with the same rules as scopeFor.
// submitterDept is the claim owner's department, nil when unassigned.
func canView(ctx context.Context, actor authz.User, e *domain.Expense, submitterDept *uint64, assignments assignment.Repository) (bool, error) {
	if actor.Role == authz.RoleAdmin || e.EmpID == actor.EmpID {
		return true, nil
	}
	switch actor.Role {
	case authz.RoleCoordinator:
		if submitterDept == nil {
			return false, nil
		}
		return assignments.Exists(ctx, actor.EmpID, *submitterDept)
	case authz.RoleHR:
		return e.Coordinator.ReviewedBy != nil, nil
	case authz.RoleAccounts:
		return e.HR.ReviewedBy != nil, nil
	}
	return false, nil
}
