package authz

// Role mirrors the users.role column.
type Role string

const (
	RoleUser        Role = "user"
	RoleCoordinator Role = "coordinator"
	RoleHR          Role = "hr"
	RoleAccounts    Role = "accounts"
	RoleAdmin       Role = "admin"
)

// User is the authenticated request context carried from the JWT middleware
// into handlers and usecases.
type User struct {
	UserID uint64
	EmpID  uint64
	Role   Role
	Name   string
	Email  string
}

// Permission names an action on a resource. Endpoint-level role checks are
// declared once in the policy table below instead of inline per handler.
type Permission string

const (
	PermManageProjects    Permission = "projects:write"
	PermImportProjects    Permission = "projects:import"
	PermManageRates       Permission = "allowance_rates:write"
	PermManageAssignments Permission = "coordinator_departments:write"
	PermListAllAllowances Permission = "allowances:list_all"
)

var policy = map[Permission][]Role{
	PermManageProjects:    {RoleAdmin, RoleHR},
	PermImportProjects:    {RoleAdmin, RoleHR},
	PermManageRates:       {RoleAdmin, RoleHR},
	PermManageAssignments: {RoleAdmin, RoleHR},
	PermListAllAllowances: {RoleAdmin, RoleHR},
}

// Can reports whether role is granted p.
func Can(role Role, p Permission) bool {
	for _, r := range policy[p] {
		if r == role {
			return true
		}
	}
	return false
}
