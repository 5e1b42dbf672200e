package allowance

import "errors"

// ErrRateExists surfaces the (designation, scope) uniqueness violation.
var ErrRateExists = errors.New("an allowance rate already exists for this designation and scope")

// Rate is a reference amount per designation and scope. Rates are
// informational: submitted line-item amounts are trusted as entered and are
// not checked against them.
type Rate struct {
	ID            uint64  `gorm:"primaryKey;column:id" json:"id"`
	DesignationID uint64  `gorm:"column:designation_id;uniqueIndex:ux_rate_designation_scope" json:"designation_id"`
	Scope         string  `gorm:"column:scope;uniqueIndex:ux_rate_designation_scope" json:"scope"`
	Amount        float64 `gorm:"type:decimal(12,2);column:amount" json:"amount"`
}

func (Rate) TableName() string { return "allowance_rates" }

// Allowance scopes used by claim forms.
const (
	ScopeDailyMetro    = "Daily Allowance Metro"
	ScopeDailyNonMetro = "Daily Allowance Non-Metro"
	ScopeSiteFixed     = "Site Allowance"
)
