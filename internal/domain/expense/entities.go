package expense

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending             Status = "pending"
	StatusCoordinatorApproved Status = "coordinator_approved"
	StatusCoordinatorRejected Status = "coordinator_rejected"
	StatusHRApproved          Status = "hr_approved"
	StatusHRRejected          Status = "hr_rejected"
	StatusAccountsApproved    Status = "accounts_approved"
	StatusAccountsRejected    Status = "accounts_rejected"
)

// StageReview is the (reviewer, timestamp, comment) triple owned by one
// review stage. All three fields stay NULL until that stage acts.
type StageReview struct {
	ReviewedBy *uint64    `gorm:"column:reviewed_by" json:"reviewed_by"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`
	Comment    *string    `gorm:"column:comment" json:"comment"`
}

func (r *StageReview) set(reviewer uint64, at time.Time, comment string) {
	r.ReviewedBy = &reviewer
	r.ReviewedAt = &at
	r.Comment = &comment
}

func (r *StageReview) clear() { *r = StageReview{} }

// Expense is one claim submitted by an employee. claim_amount is always the
// server-side recomputation over the child line items, never a client value.
type Expense struct {
	ID        uint64 `gorm:"primaryKey;column:expense_id" json:"-"`
	PublicID  string `gorm:"size:32;column:public_id;uniqueIndex:ux_expenses_public_id" json:"expense_id"`
	EmpID     uint64 `gorm:"column:emp_id;index:idx_expenses_emp" json:"emp_id"`
	ProjectID uint64 `gorm:"column:project_id;index" json:"project_id"`

	// Site fields are filled only when the claim targets the sentinel
	// "general" project; otherwise the project's own site applies.
	SiteLocation        *string `gorm:"column:site_location" json:"site_location"`
	SiteInchargeEmpCode *string `gorm:"column:site_incharge_emp_code" json:"site_incharge_emp_code"`

	Status      Status  `gorm:"type:enum('pending','coordinator_approved','coordinator_rejected','hr_approved','hr_rejected','accounts_approved','accounts_rejected');default:'pending'" json:"status"`
	ClaimAmount float64 `gorm:"type:decimal(18,2);column:claim_amount" json:"claim_amount"`

	Coordinator StageReview `gorm:"embedded;embeddedPrefix:coordinator_" json:"coordinator"`
	HR          StageReview `gorm:"embedded;embeddedPrefix:hr_" json:"hr"`
	Accounts    StageReview `gorm:"embedded;embeddedPrefix:accounts_" json:"accounts"`

	TravelReceiptPath   *string `gorm:"column:travel_receipt_path" json:"travel_receipt_path"`
	HotelReceiptPath    *string `gorm:"column:hotel_receipt_path" json:"hotel_receipt_path"`
	FoodReceiptPath     *string `gorm:"column:food_receipt_path" json:"food_receipt_path"`
	SpecialApprovalPath *string `gorm:"column:special_approval_path" json:"special_approval_path"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Expense) TableName() string { return "expense_form" }

// ClearReviews nulls all three stage triples; used when a rejected claim is
// edited and resubmitted.
func (e *Expense) ClearReviews() {
	e.Coordinator.clear()
	e.HR.clear()
	e.Accounts.clear()
}

// TravelSegment is one leg of a journey.
type TravelSegment struct {
	ID              uint64    `gorm:"primaryKey;column:travel_id" json:"travel_id"`
	ExpenseID       uint64    `gorm:"column:expense_id;index" json:"-"`
	EmpID           uint64    `gorm:"column:emp_id" json:"emp_id"`
	TravelDate      time.Time `gorm:"column:travel_date;type:date" json:"travel_date"`
	FromLocation    string    `gorm:"column:from_location" json:"from_location"`
	ToLocation      string    `gorm:"column:to_location" json:"to_location"`
	ModeOfTransport string    `gorm:"column:mode_of_transport" json:"mode_of_transport"`
	FareAmount      float64   `gorm:"type:decimal(12,2);column:fare_amount" json:"fare_amount"`
}

func (TravelSegment) TableName() string { return "travel_data" }

// AllowanceEntry is shared by the journey, return and stay allowance tables;
// the repository binds it to the right table per kind.
type AllowanceEntry struct {
	ID        uint64     `gorm:"primaryKey;column:id" json:"id"`
	ExpenseID uint64     `gorm:"column:expense_id;index" json:"-"`
	EmpID     uint64     `gorm:"column:emp_id" json:"emp_id"`
	FromDate  *time.Time `gorm:"column:from_date;type:date" json:"from_date"`
	ToDate    *time.Time `gorm:"column:to_date;type:date" json:"to_date"`
	Scope     string     `gorm:"column:scope" json:"scope"`
	NoOfDays  int        `gorm:"column:no_of_days" json:"no_of_days"`
	Amount    float64    `gorm:"type:decimal(12,2);column:amount" json:"amount"`
}

// StayBill is shared by the hotel and food expense tables.
type StayBill struct {
	ID         uint64     `gorm:"primaryKey;column:id" json:"id"`
	ExpenseID  uint64     `gorm:"column:expense_id;index" json:"-"`
	FromDate   *time.Time `gorm:"column:from_date;type:date" json:"from_date"`
	ToDate     *time.Time `gorm:"column:to_date;type:date" json:"to_date"`
	Sharing    int        `gorm:"column:sharing" json:"sharing"`
	Location   string     `gorm:"column:location" json:"location"`
	BillAmount float64    `gorm:"type:decimal(12,2);column:bill_amount" json:"bill_amount"`
}

// LineItems is the full owned child collection of a claim. Edits replace it
// wholesale; it is never patched entry by entry.
type LineItems struct {
	Travel  []TravelSegment  `json:"travel_data"`
	Journey []AllowanceEntry `json:"journey_allowance"`
	Return  []AllowanceEntry `json:"return_allowance"`
	Stay    []AllowanceEntry `json:"stay_allowance"`
	Hotel   []StayBill       `json:"hotel_expenses"`
	Food    []StayBill       `json:"food_expenses"`
}

// ListScope is the server-side visibility predicate for list reads. Exactly
// one of the constraints applies beyond the own-claims fallback.
type ListScope struct {
	// All lifts every restriction (admin).
	All bool
	// OwnEmpID always makes the viewer's own claims visible.
	OwnEmpID uint64
	// DepartmentIDs widens visibility to submitters of these departments
	// (coordinator assignment set).
	DepartmentIDs []uint64
	// ReviewedStage widens visibility to claims whose given stage reviewer
	// is set (hr sees coordinator-reviewed, accounts sees hr-reviewed).
	ReviewedStage *Stage
}

// Summary is the joined read model for list responses.
type Summary struct {
	Expense
	EmployeeName    string  `json:"employee_name"`
	EmpCode         string  `json:"emp_code"`
	DepartmentID    *uint64 `json:"department_id"`
	DepartmentName  *string `json:"department_name"`
	DesignationName *string `json:"designation_name"`
	ProjectCode     string  `json:"project_code"`
	ProjectName     string  `json:"project_name"`
}
