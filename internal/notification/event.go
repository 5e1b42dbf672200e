package notification

import "expense-approval-backend/internal/domain/expense"

type Kind string

const (
	KindSubmitted     Kind = "submitted"
	KindResubmitted   Kind = "resubmitted"
	KindStatusChanged Kind = "status_changed"
)

type Recipient struct {
	Name  string
	Email string
}

type EmployeeInfo struct {
	Name        string
	Code        string
	Department  string
	Designation string
}

type ProjectInfo struct {
	Code         string
	Name         string
	SiteLocation string
}

// Event is the payload produced by a claim transition. The core emits it
// after the transaction commits; delivery is someone else's problem.
type Event struct {
	Kind           Kind
	ExpenseID      string
	PreviousStatus expense.Status
	NewStatus      expense.Status
	Comment        string
	ReviewerName   string

	Employee EmployeeInfo
	Project  ProjectInfo

	// Totals are recomputed fresh from the claim's current child rows.
	Totals      expense.Totals
	ClaimAmount float64

	Submitter      Recipient
	Coordinators   []Recipient
	NextReviewers  []Recipient
	PriorApprovers []Recipient
}
