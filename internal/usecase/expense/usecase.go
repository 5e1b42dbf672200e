package expense

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"expense-approval-backend/internal/domain/allowance"
	"expense-approval-backend/internal/domain/assignment"
	"expense-approval-backend/internal/domain/authz"
	"expense-approval-backend/internal/domain/employee"
	domain "expense-approval-backend/internal/domain/expense"
	"expense-approval-backend/internal/domain/history"
	"expense-approval-backend/internal/domain/project"
	"expense-approval-backend/internal/domain/uow"
	"expense-approval-backend/internal/notification"
	"expense-approval-backend/pkg/id"
)

// Notifier receives events after the surrounding transaction committed.
type Notifier interface {
	Dispatch(ev notification.Event)
}

// Deps collects everything the usecase needs. Read paths hit the plain
// repositories; mutations run through the unit of work.
type Deps struct {
	Expenses    domain.Repository
	Histories   history.Repository
	Employees   employee.Repository
	Projects    project.Repository
	Assignments assignment.Repository
	Rates       allowance.Repository
	UoW         uow.UnitOfWork
	Notifier    Notifier
}

type Usecase struct {
	expenses    domain.Repository
	histories   history.Repository
	employees   employee.Repository
	projects    project.Repository
	assignments assignment.Repository
	rates       allowance.Repository
	uow         uow.UnitOfWork
	notifier    Notifier
}

func NewUsecase(d Deps) *Usecase {
	return &Usecase{
		expenses:    d.Expenses,
		histories:   d.Histories,
		employees:   d.Employees,
		projects:    d.Projects,
		assignments: d.Assignments,
		rates:       d.Rates,
		uow:         d.UoW,
		notifier:    d.Notifier,
	}
}

// resubmitPrevious is the literal recorded as the previous status of a
// resubmission entry; the audit trail collapses the three stage-specific
// rejected statuses into one word.
const resubmitPrevious = domain.Status("rejected")

func (u *Usecase) Submit(ctx context.Context, actor authz.User, in SubmitInput, receipts Receipts) (*SubmitResult, error) {
	items := in.toLineItems(actor.EmpID)
	totals := domain.Calculate(items)
	if totals.Grand() <= 0 {
		return nil, domain.Invalid("claim amount must be positive")
	}

	var (
		res *SubmitResult
		ev  notification.Event
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := u.resolveProject(ctx, r, in)
		if err != nil {
			return err
		}

		e := &domain.Expense{
			PublicID:    id.NewID32(),
			EmpID:       actor.EmpID,
			ProjectID:   p.ProjectID,
			Status:      domain.StatusPending,
			ClaimAmount: totals.Grand(),
		}
		applySite(e, p, in)
		applyReceipts(e, receipts)
		if err := r.Expenses.Create(ctx, e); err != nil {
			return err
		}
		if err := r.Expenses.ReplaceLineItems(ctx, e.ID, items); err != nil {
			return err
		}

		entry := &history.Entry{
			ExpenseID: e.ID,
			EmpID:     actor.EmpID,
			Action:    history.ActionSubmitted,
			NewStatus: domain.StatusPending,
			Comment:   optional(in.Comment),
			ActionBy:  actor.EmpID,
		}
		if err := r.History.Append(ctx, entry, items); err != nil {
			return err
		}

		ev, err = u.submissionEvent(ctx, r, notification.KindSubmitted, e, p, totals, in.Comment)
		if err != nil {
			return err
		}
		res = &SubmitResult{ExpenseID: e.PublicID, ClaimAmount: e.ClaimAmount, Status: string(e.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.dispatch(ev)
	return res, nil
}

// Resubmit edits a rejected claim and returns it to the start of the review
// pipeline: line items are replaced wholesale, the total is recomputed and
// every stage review is wiped.
func (u *Usecase) Resubmit(ctx context.Context, actor authz.User, publicID string, in SubmitInput, receipts Receipts) (*SubmitResult, error) {
	items := in.toLineItems(actor.EmpID)
	totals := domain.Calculate(items)
	if totals.Grand() <= 0 {
		return nil, domain.Invalid("claim amount must be positive")
	}

	var (
		res *SubmitResult
		ev  notification.Event
	)
	err := u.uow.WithinExpenseTx(ctx, publicID, func(r uow.Repos, e *domain.Expense) error {
		if e.EmpID != actor.EmpID && actor.Role != authz.RoleAdmin {
			return &domain.AuthorizationError{Msg: "only the claim owner can edit this expense"}
		}
		if !isRejected(e.Status) {
			return domain.Invalid("only a rejected expense can be edited and resubmitted")
		}

		p, err := u.resolveProject(ctx, r, in)
		if err != nil {
			return err
		}

		e.ProjectID = p.ProjectID
		applySite(e, p, in)
		applyReceipts(e, receipts)
		e.ClaimAmount = totals.Grand()
		e.Status = domain.StatusPending
		e.ClearReviews()
		if err := r.Expenses.Save(ctx, e); err != nil {
			return err
		}
		if err := r.Expenses.ReplaceLineItems(ctx, e.ID, items); err != nil {
			return err
		}

		entry := &history.Entry{
			ExpenseID:      e.ID,
			EmpID:          e.EmpID,
			Action:         history.ActionResubmitted,
			PreviousStatus: resubmitPrevious,
			NewStatus:      domain.StatusPending,
			Comment:        optional(in.Comment),
			ActionBy:       actor.EmpID,
		}
		last, err := r.History.Last(ctx, e.ID)
		if err != nil {
			return err
		}
		if !entry.DuplicateOf(last) {
			if err := r.History.Append(ctx, entry, items); err != nil {
				return err
			}
		}

		ev, err = u.submissionEvent(ctx, r, notification.KindResubmitted, e, p, totals, in.Comment)
		if err != nil {
			return err
		}
		res = &SubmitResult{ExpenseID: e.PublicID, ClaimAmount: e.ClaimAmount, Status: string(e.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.dispatch(ev)
	return res, nil
}

func (u *Usecase) Review(ctx context.Context, actor authz.User, publicID string, in ReviewInput) (*ReviewResult, error) {
	var (
		res *ReviewResult
		ev  notification.Event
	)
	err := u.uow.WithinExpenseTx(ctx, publicID, func(r uow.Repos, e *domain.Expense) error {
		// The self-approval gate runs before the transition table and only
		// guards the coordinator acting on a pending claim of their own. An
		// assignment covering the submitter's department lifts it.
		if actor.Role == authz.RoleCoordinator && e.EmpID == actor.EmpID && e.Status == domain.StatusPending {
			ok, err := u.assignedToOwnDepartment(ctx, r, actor.EmpID)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.AuthorizationError{Msg: "not allowed to approve/reject your own expense"}
			}
		}

		d, err := domain.Decide(actor.Role, e.Status, in.Action)
		if err != nil {
			return err
		}
		prev := e.Status
		e.Apply(d, actor.EmpID, time.Now().UTC(), in.Comment)
		if err := r.Expenses.Save(ctx, e); err != nil {
			return err
		}

		items, err := r.Expenses.LineItems(ctx, e.ID)
		if err != nil {
			return err
		}
		entry := &history.Entry{
			ExpenseID:      e.ID,
			EmpID:          e.EmpID,
			Action:         actionKind(in.Action),
			PreviousStatus: prev,
			NewStatus:      e.Status,
			Comment:        optional(in.Comment),
			ActionBy:       actor.EmpID,
		}
		last, err := r.History.Last(ctx, e.ID)
		if err != nil {
			return err
		}
		if !entry.DuplicateOf(last) {
			if err := r.History.Append(ctx, entry, items); err != nil {
				return err
			}
		}

		ev, err = u.statusEvent(ctx, r, e, items, prev, actor, in, d)
		if err != nil {
			return err
		}
		res = &ReviewResult{Status: e.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.dispatch(ev)
	return res, nil
}

func (u *Usecase) List(ctx context.Context, actor authz.User) ([]domain.Summary, error) {
	scope, err := scopeFor(ctx, actor, u.assignments)
	if err != nil {
		return nil, err
	}
	return u.expenses.List(ctx, scope)
}

func (u *Usecase) Get(ctx context.Context, actor authz.User, publicID string) (*Detail, error) {
	e, det, err := u.loadVisible(ctx, actor, publicID)
	if err != nil {
		return nil, err
	}
	items, err := u.expenses.LineItems(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	proj, err := u.projects.GetByID(ctx, e.ProjectID)
	if err != nil {
		return nil, notFound(err, "project")
	}

	d := &Detail{
		Summary: domain.Summary{
			Expense:         *e,
			EmployeeName:    det.FullName(),
			EmpCode:         det.EmpCode,
			DepartmentID:    det.DepartmentID,
			DepartmentName:  det.DepartmentName,
			DesignationName: det.DesignationName,
			ProjectCode:     proj.ProjectCode,
			ProjectName:     proj.ProjectName,
		},
		Items:                items,
		JourneyGrouped:       groupByScope(items.Journey),
		ReturnGrouped:        groupByScope(items.Return),
		StayGrouped:          groupByScope(items.Stay),
		AllowanceScopeTotals: scopeDayTotals(items),
	}
	if det.DesignationID != nil {
		rates, err := u.rates.ListByDesignation(ctx, *det.DesignationID)
		if err != nil {
			return nil, err
		}
		d.AllowanceRates = rates
	}
	if det.DepartmentID != nil {
		coords, err := u.assignments.CoordinatorsForDepartment(ctx, *det.DepartmentID)
		if err != nil {
			return nil, err
		}
		d.Coordinators = coords
	}
	return d, nil
}

// History returns the audit trail oldest first, with migration noise rows
// filtered out.
func (u *Usecase) History(ctx context.Context, actor authz.User, publicID string) ([]HistoryEntry, error) {
	e, _, err := u.loadVisible(ctx, actor, publicID)
	if err != nil {
		return nil, err
	}
	entries, err := u.histories.ListByExpense(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(entries))
	actors := map[uint64]*employee.Employee{}
	for i := range entries {
		if entries[i].Noise() {
			continue
		}
		he := HistoryEntry{Entry: entries[i]}
		if emp, err := u.actorOf(ctx, actors, entries[i].ActionBy); err == nil && emp != nil {
			he.ActorName = emp.FullName()
			he.ActorCode = emp.EmpCode
		}
		out = append(out, he)
	}
	return out, nil
}

// HistoryWithItems additionally attaches the line-item snapshot captured
// with each entry, so earlier resubmission cycles stay inspectable.
func (u *Usecase) HistoryWithItems(ctx context.Context, actor authz.User, publicID string) ([]HistoryWithItems, error) {
	entries, err := u.History(ctx, actor, publicID)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryWithItems, 0, len(entries))
	for _, he := range entries {
		items, err := u.histories.Snapshot(ctx, he.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, HistoryWithItems{HistoryEntry: he, Items: items})
	}
	return out, nil
}

func (u *Usecase) loadVisible(ctx context.Context, actor authz.User, publicID string) (*domain.Expense, *employee.Detail, error) {
	e, err := u.expenses.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, nil, notFound(err, "expense")
	}
	det, err := u.employees.Detail(ctx, e.EmpID)
	if err != nil {
		return nil, nil, notFound(err, "employee")
	}
	ok, err := canView(ctx, actor, e, det.DepartmentID, u.assignments)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		// claims outside the viewer's scope read as absent
		return nil, nil, &domain.NotFoundError{Resource: "expense"}
	}
	return e, det, nil
}

func (u *Usecase) resolveProject(ctx context.Context, r uow.Repos, in SubmitInput) (*project.Project, error) {
	if in.ProjectCode == "" {
		return nil, domain.Invalid("project_code is required")
	}
	p, err := r.Projects.GetByCode(ctx, in.ProjectCode)
	if err != nil {
		return nil, notFound(err, "project")
	}
	if p.ProjectCode == project.GeneralCode && in.SiteLocation == "" {
		return nil, domain.Invalid("site_location is required for the general project")
	}
	return p, nil
}

func (u *Usecase) assignedToOwnDepartment(ctx context.Context, r uow.Repos, empID uint64) (bool, error) {
	emp, err := r.Employees.GetByEmpID(ctx, empID)
	if err != nil {
		return false, notFound(err, "employee")
	}
	if emp.DepartmentID == nil {
		return false, nil
	}
	return r.Assignments.Exists(ctx, empID, *emp.DepartmentID)
}

func (u *Usecase) submissionEvent(ctx context.Context, r uow.Repos, kind notification.Kind, e *domain.Expense, p *project.Project, totals domain.Totals, comment string) (notification.Event, error) {
	det, err := r.Employees.Detail(ctx, e.EmpID)
	if err != nil {
		return notification.Event{}, notFound(err, "employee")
	}
	ev := eventBase(kind, e, det, p, totals)
	ev.NewStatus = domain.StatusPending
	ev.Comment = comment
	if det.DepartmentID != nil {
		coords, err := r.Assignments.CoordinatorsForDepartment(ctx, *det.DepartmentID)
		if err != nil {
			return notification.Event{}, err
		}
		ev.Coordinators = recipients(coords)
	}
	return ev, nil
}

func (u *Usecase) statusEvent(ctx context.Context, r uow.Repos, e *domain.Expense, items domain.LineItems, prev domain.Status, actor authz.User, in ReviewInput, d domain.Decision) (notification.Event, error) {
	det, err := r.Employees.Detail(ctx, e.EmpID)
	if err != nil {
		return notification.Event{}, notFound(err, "employee")
	}
	proj, err := r.Projects.GetByID(ctx, e.ProjectID)
	if err != nil {
		return notification.Event{}, notFound(err, "project")
	}
	ev := eventBase(notification.KindStatusChanged, e, det, proj, domain.Calculate(items))
	ev.PreviousStatus = prev
	ev.NewStatus = e.Status
	ev.Comment = in.Comment
	ev.ReviewerName = actor.Name

	// An approval that hands the claim to the next stage alerts that stage's
	// whole role group.
	if in.Action == domain.ActionApprove {
		var next authz.Role
		switch e.Status {
		case domain.StatusCoordinatorApproved:
			next = authz.RoleHR
		case domain.StatusHRApproved:
			next = authz.RoleAccounts
		}
		if next != "" {
			cs, err := r.Employees.ContactsByRole(ctx, next)
			if err != nil {
				return notification.Event{}, err
			}
			ev.NextReviewers = recipients(cs)
		}
	}

	// Reviewers of the already-completed stages are kept in the loop.
	var priorIDs []uint64
	if d.Stage > domain.StageCoordinator && e.Coordinator.ReviewedBy != nil {
		priorIDs = append(priorIDs, *e.Coordinator.ReviewedBy)
	}
	if d.Stage > domain.StageHR && e.HR.ReviewedBy != nil {
		priorIDs = append(priorIDs, *e.HR.ReviewedBy)
	}
	if len(priorIDs) > 0 {
		cs, err := r.Employees.ContactsByEmpIDs(ctx, priorIDs)
		if err != nil {
			return notification.Event{}, err
		}
		ev.PriorApprovers = recipients(cs)
	}
	return ev, nil
}

func (u *Usecase) actorOf(ctx context.Context, cache map[uint64]*employee.Employee, empID uint64) (*employee.Employee, error) {
	if emp, ok := cache[empID]; ok {
		return emp, nil
	}
	emp, err := u.employees.GetByEmpID(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cache[empID] = nil
			return nil, nil
		}
		return nil, err
	}
	cache[empID] = emp
	return emp, nil
}

func (u *Usecase) dispatch(ev notification.Event) {
	if u.notifier != nil {
		u.notifier.Dispatch(ev)
	}
}

func eventBase(kind notification.Kind, e *domain.Expense, det *employee.Detail, p *project.Project, totals domain.Totals) notification.Event {
	ev := notification.Event{
		Kind:      kind,
		ExpenseID: e.PublicID,
		Employee: notification.EmployeeInfo{
			Name:        det.FullName(),
			Code:        det.EmpCode,
			Department:  strOf(det.DepartmentName),
			Designation: strOf(det.DesignationName),
		},
		Project: notification.ProjectInfo{
			Code:         p.ProjectCode,
			Name:         p.ProjectName,
			SiteLocation: strOf(p.SiteLocation),
		},
		Totals:      totals,
		ClaimAmount: e.ClaimAmount,
		Submitter:   notification.Recipient{Name: det.FullName(), Email: det.Email},
	}
	if e.SiteLocation != nil {
		ev.Project.SiteLocation = *e.SiteLocation
	}
	return ev
}

func applySite(e *domain.Expense, p *project.Project, in SubmitInput) {
	// Site overrides live on the claim only for the sentinel general project;
	// real projects carry their own site data.
	if p.ProjectCode == project.GeneralCode {
		e.SiteLocation = optional(in.SiteLocation)
		e.SiteInchargeEmpCode = optional(in.SiteInchargeEmpCode)
	} else {
		e.SiteLocation = nil
		e.SiteInchargeEmpCode = nil
	}
}

func applyReceipts(e *domain.Expense, rc Receipts) {
	if rc.DeleteTravel {
		e.TravelReceiptPath = nil
	}
	if rc.Travel != nil {
		e.TravelReceiptPath = rc.Travel
	}
	if rc.DeleteHotel {
		e.HotelReceiptPath = nil
	}
	if rc.Hotel != nil {
		e.HotelReceiptPath = rc.Hotel
	}
	if rc.DeleteFood {
		e.FoodReceiptPath = nil
	}
	if rc.Food != nil {
		e.FoodReceiptPath = rc.Food
	}
	if rc.DeleteSpecial {
		e.SpecialApprovalPath = nil
	}
	if rc.Special != nil {
		e.SpecialApprovalPath = rc.Special
	}
}

func groupByScope(entries []domain.AllowanceEntry) []ScopeGroup {
	var out []ScopeGroup
	index := map[string]int{}
	for _, a := range entries {
		i, ok := index[a.Scope]
		if !ok {
			i = len(out)
			index[a.Scope] = i
			out = append(out, ScopeGroup{Scope: a.Scope, AmountPerDay: a.Amount})
		}
		out[i].TotalDays += a.NoOfDays
		out[i].TotalAmount += a.Amount * float64(a.NoOfDays)
		out[i].Entries = append(out[i].Entries, a)
	}
	return out
}

func scopeDayTotals(items domain.LineItems) map[string]int {
	totals := map[string]int{}
	for _, batch := range [][]domain.AllowanceEntry{items.Journey, items.Return, items.Stay} {
		for _, a := range batch {
			totals[a.Scope] += a.NoOfDays
		}
	}
	return totals
}

func recipients(cs []employee.Contact) []notification.Recipient {
	out := make([]notification.Recipient, 0, len(cs))
	for _, c := range cs {
		out = append(out, notification.Recipient{Name: c.Name, Email: c.Email})
	}
	return out
}

func isRejected(s domain.Status) bool {
	switch s {
	case domain.StatusCoordinatorRejected, domain.StatusHRRejected, domain.StatusAccountsRejected:
		return true
	}
	return false
}

func actionKind(a domain.Action) history.ActionKind {
	if a == domain.ActionReject {
		return history.ActionRejected
	}
	return history.ActionApproved
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strOf(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.NotFoundError{Resource: resource}
	}
	return err
}
