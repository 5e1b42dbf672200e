package expense

import (
	"bytes"
	"strconv"
	"time"

	"expense-approval-backend/internal/domain/allowance"
	"expense-approval-backend/internal/domain/employee"
	domain "expense-approval-backend/internal/domain/expense"
	"expense-approval-backend/internal/domain/history"
)

// Money tolerates whatever clients send for amounts: numbers, quoted
// numbers, empty strings, null. Anything unparseable decodes to 0; the
// totals calculator clamps negatives later. Decoding never errors.
type Money float64

func (m *Money) UnmarshalJSON(b []byte) error {
	*m = Money(lenientFloat(b))
	return nil
}

// Days is the same treatment for day counts.
type Days int

func (d *Days) UnmarshalJSON(b []byte) error {
	*d = Days(int(lenientFloat(b)))
	return nil
}

func lenientFloat(b []byte) float64 {
	s := string(bytes.Trim(bytes.TrimSpace(b), `"`))
	if s == "" || s == "null" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseDate accepts canonical YYYY-MM-DD or a full RFC3339 timestamp and
// returns nil for anything else, mirroring the forms the frontend sends.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &t
	}
	return nil
}

type TravelInput struct {
	TravelDate      string `json:"travel_date"`
	FromLocation    string `json:"from_location"`
	ToLocation      string `json:"to_location"`
	ModeOfTransport string `json:"mode_of_transport"`
	FareAmount      Money  `json:"fare_amount"`
}

type AllowanceInput struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Scope    string `json:"scope"`
	NoOfDays Days   `json:"no_of_days"`
	Amount   Money  `json:"amount"`
}

type BillInput struct {
	FromDate   string `json:"from_date"`
	ToDate     string `json:"to_date"`
	Sharing    Days   `json:"sharing"`
	Location   string `json:"location"`
	BillAmount Money  `json:"bill_amount"`
}

// SubmitInput is the explicit schema for claim submission and edit bodies.
// Client-side totals are deliberately absent: the server recomputes.
type SubmitInput struct {
	ProjectCode         string `json:"project_code"`
	ProjectName         string `json:"project_name"`
	SiteLocation        string `json:"site_location"`
	SiteInchargeEmpCode string `json:"site_incharge_emp_code"`
	Comment             string `json:"comment"`

	TravelData       []TravelInput    `json:"travel_data"`
	JourneyAllowance []AllowanceInput `json:"journey_allowance"`
	ReturnAllowance  []AllowanceInput `json:"return_allowance"`
	StayAllowance    []AllowanceInput `json:"stay_allowance"`
	HotelExpenses    []BillInput      `json:"hotel_expenses"`
	FoodExpenses     []BillInput      `json:"food_expenses"`
}

// Receipts carries stored upload paths plus per-category deletion flags for
// edits.
type Receipts struct {
	Travel  *string
	Hotel   *string
	Food    *string
	Special *string

	DeleteTravel  bool
	DeleteHotel   bool
	DeleteFood    bool
	DeleteSpecial bool
}

type ReviewInput struct {
	Action  domain.Action `json:"action"`
	Comment string        `json:"comment"`
}

type SubmitResult struct {
	ExpenseID   string  `json:"expense_id"`
	ClaimAmount float64 `json:"claim_amount"`
	Status      string  `json:"status"`
}

type ReviewResult struct {
	Status domain.Status `json:"status"`
}

// ScopeGroup folds allowance entries sharing a scope for display.
type ScopeGroup struct {
	Scope        string                  `json:"scope"`
	TotalDays    int                     `json:"total_days"`
	AmountPerDay float64                 `json:"amount_per_day"`
	TotalAmount  float64                 `json:"total_amount"`
	Entries      []domain.AllowanceEntry `json:"entries"`
}

// Detail is the full single-claim payload.
type Detail struct {
	domain.Summary
	Items                domain.LineItems   `json:"items"`
	JourneyGrouped       []ScopeGroup       `json:"journey_allowance_grouped"`
	ReturnGrouped        []ScopeGroup       `json:"return_allowance_grouped"`
	StayGrouped          []ScopeGroup       `json:"stay_allowance_grouped"`
	AllowanceScopeTotals map[string]int     `json:"allowance_scope_totals"`
	AllowanceRates       []allowance.Rate   `json:"allowance_rates"`
	Coordinators         []employee.Contact `json:"coordinators"`
}

// HistoryEntry is a history row decorated with its actor.
type HistoryEntry struct {
	history.Entry
	ActorName string `json:"actor_name"`
	ActorCode string `json:"actor_code"`
}

type HistoryWithItems struct {
	HistoryEntry
	Items domain.LineItems `json:"items"`
}

func (in SubmitInput) toLineItems(empID uint64) domain.LineItems {
	var items domain.LineItems
	for _, t := range in.TravelData {
		d := parseDate(t.TravelDate)
		var day time.Time
		if d != nil {
			day = *d
		}
		items.Travel = append(items.Travel, domain.TravelSegment{
			EmpID:           empID,
			TravelDate:      day,
			FromLocation:    t.FromLocation,
			ToLocation:      t.ToLocation,
			ModeOfTransport: t.ModeOfTransport,
			FareAmount:      float64(t.FareAmount),
		})
	}
	conv := func(src []AllowanceInput) []domain.AllowanceEntry {
		var out []domain.AllowanceEntry
		for _, a := range src {
			out = append(out, domain.AllowanceEntry{
				EmpID:    empID,
				FromDate: parseDate(a.FromDate),
				ToDate:   parseDate(a.ToDate),
				Scope:    a.Scope,
				NoOfDays: int(a.NoOfDays),
				Amount:   float64(a.Amount),
			})
		}
		return out
	}
	items.Journey = conv(in.JourneyAllowance)
	items.Return = conv(in.ReturnAllowance)
	items.Stay = conv(in.StayAllowance)
	bills := func(src []BillInput) []domain.StayBill {
		var out []domain.StayBill
		for _, b := range src {
			out = append(out, domain.StayBill{
				FromDate:   parseDate(b.FromDate),
				ToDate:     parseDate(b.ToDate),
				Sharing:    int(b.Sharing),
				Location:   b.Location,
				BillAmount: float64(b.BillAmount),
			})
		}
		return out
	}
	items.Hotel = bills(in.HotelExpenses)
	items.Food = bills(in.FoodExpenses)
	return items
}
