package expense

import (
	"time"

	"expense-approval-backend/internal/domain/authz"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Stage is one of the three sequential review stages. Each stage owns one
// StageReview triple on the claim; the state machine hands out the stage and
// the stage knows its own fields, so no string-keyed column lookups exist.
type Stage int

const (
	StageCoordinator Stage = iota
	StageHR
	StageAccounts
)

func (s Stage) String() string {
	switch s {
	case StageCoordinator:
		return "coordinator"
	case StageHR:
		return "hr"
	case StageAccounts:
		return "accounts"
	}
	return "unknown"
}

func (s Stage) Approved() Status {
	return [...]Status{StatusCoordinatorApproved, StatusHRApproved, StatusAccountsApproved}[s]
}

func (s Stage) Rejected() Status {
	return [...]Status{StatusCoordinatorRejected, StatusHRRejected, StatusAccountsRejected}[s]
}

// Review returns the claim's triple owned by this stage.
func (s Stage) Review(e *Expense) *StageReview {
	switch s {
	case StageHR:
		return &e.HR
	case StageAccounts:
		return &e.Accounts
	default:
		return &e.Coordinator
	}
}

// stageAt maps the status a claim must be in to the stage allowed to act on
// it. Rejected and accounts_approved statuses are terminal, so they have no
// entry.
var stageAt = map[Status]Stage{
	StatusPending:             StageCoordinator,
	StatusCoordinatorApproved: StageHR,
	StatusHRApproved:          StageAccounts,
}

// stageRole is the dedicated role per stage; admin may act at any stage.
var stageRole = map[Stage]authz.Role{
	StageCoordinator: authz.RoleCoordinator,
	StageHR:          authz.RoleHR,
	StageAccounts:    authz.RoleAccounts,
}

// Decision is the outcome of a valid transition lookup.
type Decision struct {
	Stage Stage
	Next  Status
}

// Decide validates (role, current status, action) against the transition
// table and returns the stage that acts plus the destination status. Any
// combination outside the table yields *InvalidTransitionError.
func Decide(role authz.Role, current Status, action Action) (Decision, error) {
	bad := func() (Decision, error) {
		return Decision{}, &InvalidTransitionError{Role: role, Action: action, Status: current}
	}
	if action != ActionApprove && action != ActionReject {
		return bad()
	}
	stage, ok := stageAt[current]
	if !ok {
		return bad()
	}
	if role != authz.RoleAdmin && role != stageRole[stage] {
		return bad()
	}
	next := stage.Approved()
	if action == ActionReject {
		next = stage.Rejected()
	}
	return Decision{Stage: stage, Next: next}, nil
}

// Apply persists a decision onto the claim: new status plus exactly the
// acting stage's (reviewer, timestamp, comment) triple.
func (e *Expense) Apply(d Decision, reviewer uint64, at time.Time, comment string) {
	e.Status = d.Next
	d.Stage.Review(e).set(reviewer, at, comment)
}
