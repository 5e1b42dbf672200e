package mysql

import (
	"context"
	"testing"

	domain "expense-approval-backend/internal/domain/expense"
	"expense-approval-backend/internal/domain/history"
)

func strp(s string) *string { return &s }

func TestHistoryAppendAndSnapshot(t *testing.T) {
	db := openTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	entry := &history.Entry{
		ExpenseID:      11,
		EmpID:          7,
		Action:         history.ActionSubmitted,
		PreviousStatus: domain.StatusPending,
		NewStatus:      domain.StatusPending,
		ActionBy:       7,
	}
	if err := repo.Append(ctx, entry, makeItems(7)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("Append did not set history id")
	}

	items, err := repo.Snapshot(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(items.Travel) != 1 || items.Travel[0].FareAmount != 450 {
		t.Errorf("travel snapshot: %+v", items.Travel)
	}
	if len(items.Journey) != 1 || items.Journey[0].Scope != "Daily Allowance Metro" {
		t.Errorf("journey snapshot: %+v", items.Journey)
	}
	if len(items.Hotel) != 1 || items.Hotel[0].BillAmount != 1800 {
		t.Errorf("hotel snapshot: %+v", items.Hotel)
	}
	if len(items.Return) != 0 || len(items.Stay) != 0 || len(items.Food) != 0 {
		t.Errorf("empty categories must stay empty: %+v", items)
	}
}

func TestHistorySnapshotIsFrozen(t *testing.T) {
	db := openTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	first := &history.Entry{ExpenseID: 11, EmpID: 7, Action: history.ActionSubmitted, NewStatus: domain.StatusPending, ActionBy: 7}
	if err := repo.Append(ctx, first, makeItems(7)); err != nil {
		t.Fatalf("Append first: %v", err)
	}

	edited := makeItems(7)
	edited.Travel[0].FareAmount = 999
	second := &history.Entry{ExpenseID: 11, EmpID: 7, Action: history.ActionResubmitted, NewStatus: domain.StatusPending, ActionBy: 7}
	if err := repo.Append(ctx, second, edited); err != nil {
		t.Fatalf("Append second: %v", err)
	}

	items, err := repo.Snapshot(ctx, first.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if items.Travel[0].FareAmount != 450 {
		t.Errorf("first snapshot must keep the original fare: %+v", items.Travel)
	}
}

func TestHistoryLast(t *testing.T) {
	db := openTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	last, err := repo.Last(ctx, 11)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if last != nil {
		t.Fatalf("empty log must yield nil, got %+v", last)
	}

	entries := []*history.Entry{
		{ExpenseID: 11, EmpID: 7, Action: history.ActionSubmitted, NewStatus: domain.StatusPending, ActionBy: 7},
		{ExpenseID: 11, EmpID: 7, Action: history.ActionApproved, NewStatus: domain.StatusCoordinatorApproved, Comment: strp("ok"), ActionBy: 2},
		{ExpenseID: 12, EmpID: 8, Action: history.ActionSubmitted, NewStatus: domain.StatusPending, ActionBy: 8},
	}
	for _, e := range entries {
		if err := repo.Append(ctx, e, domain.LineItems{}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	last, err = repo.Last(ctx, 11)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if last == nil || last.Action != history.ActionApproved {
		t.Fatalf("unexpected last entry: %+v", last)
	}
}

func TestHistoryListByExpense(t *testing.T) {
	db := openTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	for _, e := range []*history.Entry{
		{ExpenseID: 11, EmpID: 7, Action: history.ActionSubmitted, NewStatus: domain.StatusPending, ActionBy: 7},
		{ExpenseID: 11, EmpID: 7, Action: history.ActionRejected, NewStatus: domain.StatusCoordinatorRejected, ActionBy: 2},
		{ExpenseID: 12, EmpID: 8, Action: history.ActionSubmitted, NewStatus: domain.StatusPending, ActionBy: 8},
	} {
		if err := repo.Append(ctx, e, domain.LineItems{}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	out, err := repo.ListByExpense(ctx, 11)
	if err != nil {
		t.Fatalf("ListByExpense: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("entries: %+v", out)
	}
	if out[0].Action != history.ActionSubmitted || out[1].Action != history.ActionRejected {
		t.Errorf("entries must come back oldest first: %+v", out)
	}
}
