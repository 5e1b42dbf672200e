package expense

import "math"

// Totals is the per-category breakdown of a claim. The same computation runs
// before persisting claim_amount and again on every review action for the
// notification payload, always from the current child rows.
type Totals struct {
	Travel    float64 `json:"travel_fare_total"`
	Allowance float64 `json:"da_allowance_total"`
	Lodging   float64 `json:"hotel_expense_total"`
	Meals     float64 `json:"food_expense_total"`
}

func (t Totals) Grand() float64 {
	return t.Travel + t.Allowance + t.Lodging + t.Meals
}

// clamp treats NaN, infinities and negatives as 0 so a bad entry can never
// reduce or poison the sum.
func clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Calculate sums the four line-item categories. Allowance lines contribute
// amount-per-day times days; invalid amounts or day counts count as 0.
func Calculate(items LineItems) Totals {
	var t Totals
	for _, seg := range items.Travel {
		t.Travel += clamp(seg.FareAmount)
	}
	for _, group := range [][]AllowanceEntry{items.Journey, items.Return, items.Stay} {
		for _, a := range group {
			days := a.NoOfDays
			if days < 0 {
				days = 0
			}
			t.Allowance += clamp(a.Amount) * float64(days)
		}
	}
	for _, h := range items.Hotel {
		t.Lodging += clamp(h.BillAmount)
	}
	for _, f := range items.Food {
		t.Meals += clamp(f.BillAmount)
	}
	return t
}
