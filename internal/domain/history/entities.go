package history

import (
	"strings"
	"time"

	"expense-approval-backend/internal/domain/expense"
)

type ActionKind string

const (
	ActionSubmitted   ActionKind = "submitted"
	ActionResubmitted ActionKind = "resubmitted"
	ActionApproved    ActionKind = "approved"
	ActionRejected    ActionKind = "rejected"
)

// Entry is one append-only audit record for a claim. Entries are never
// mutated or deleted.
type Entry struct {
	ID             uint64         `gorm:"primaryKey;column:history_id" json:"history_id"`
	ExpenseID      uint64         `gorm:"column:expense_id;index" json:"-"`
	EmpID          uint64         `gorm:"column:emp_id" json:"emp_id"`
	Action         ActionKind     `gorm:"column:action" json:"action"`
	PreviousStatus expense.Status `gorm:"column:previous_status" json:"previous_status"`
	NewStatus      expense.Status `gorm:"column:new_status" json:"new_status"`
	Comment        *string        `gorm:"column:comment" json:"comment"`
	ActionBy       uint64         `gorm:"column:action_by" json:"action_by"`
	ActionAt       time.Time      `gorm:"column:action_at;autoCreateTime" json:"action_at"`
}

func (Entry) TableName() string { return "expense_history" }

// DuplicateOf reports whether appending e right after last would only repeat
// it: same action, same destination status, same comment. Retried requests
// hit this and are suppressed.
func (e *Entry) DuplicateOf(last *Entry) bool {
	if last == nil {
		return false
	}
	return e.Action == last.Action &&
		e.NewStatus == last.NewStatus &&
		equalComment(e.Comment, last.Comment)
}

func equalComment(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// noisePrefix marks synthetic comments written by early system migrations;
// read paths filter them out.
const noisePrefix = "Status changed from"

func (e *Entry) Noise() bool {
	return e.Comment != nil && strings.HasPrefix(*e.Comment, noisePrefix)
}

// WithItems joins an entry with the line-item snapshot captured when it was
// appended, preserving point-in-time state per resubmission cycle.
type WithItems struct {
	Entry
	Items expense.LineItems `json:"items"`
}
