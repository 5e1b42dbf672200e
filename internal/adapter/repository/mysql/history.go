package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "expense-approval-backend/internal/domain/expense"
	"expense-approval-backend/internal/domain/history"
)

// Snapshot tables mirror the live child tables but are keyed by history id,
// freezing the line items as they stood when the entry was appended.
const (
	snapTravelTable  = "expense_history_travel"
	snapJourneyTable = "expense_history_journey"
	snapReturnTable  = "expense_history_return"
	snapStayTable    = "expense_history_stay"
	snapHotelTable   = "expense_history_hotel"
	snapFoodTable    = "expense_history_food"
)

type snapTravel struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	HistoryID       uint64    `gorm:"column:history_id;index"`
	EmpID           uint64    `gorm:"column:emp_id"`
	TravelDate      time.Time `gorm:"column:travel_date;type:date"`
	FromLocation    string    `gorm:"column:from_location"`
	ToLocation      string    `gorm:"column:to_location"`
	ModeOfTransport string    `gorm:"column:mode_of_transport"`
	FareAmount      float64   `gorm:"type:decimal(12,2);column:fare_amount"`
}

type snapAllowance struct {
	ID        uint64     `gorm:"primaryKey;column:id"`
	HistoryID uint64     `gorm:"column:history_id;index"`
	EmpID     uint64     `gorm:"column:emp_id"`
	FromDate  *time.Time `gorm:"column:from_date;type:date"`
	ToDate    *time.Time `gorm:"column:to_date;type:date"`
	Scope     string     `gorm:"column:scope"`
	NoOfDays  int        `gorm:"column:no_of_days"`
	Amount    float64    `gorm:"type:decimal(12,2);column:amount"`
}

type snapBill struct {
	ID         uint64     `gorm:"primaryKey;column:id"`
	HistoryID  uint64     `gorm:"column:history_id;index"`
	FromDate   *time.Time `gorm:"column:from_date;type:date"`
	ToDate     *time.Time `gorm:"column:to_date;type:date"`
	Sharing    int        `gorm:"column:sharing"`
	Location   string     `gorm:"column:location"`
	BillAmount float64    `gorm:"type:decimal(12,2);column:bill_amount"`
}

type HistoryRepository struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) *HistoryRepository { return &HistoryRepository{db: db} }

func (r *HistoryRepository) Last(ctx context.Context, expenseID uint64) (*history.Entry, error) {
	var out history.Entry
	res := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("history_id DESC").
		First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *HistoryRepository) Append(ctx context.Context, e *history.Entry, items domain.LineItems) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(e).Error; err != nil {
		return err
	}
	return r.writeSnapshot(ctx, e.ID, items)
}

func (r *HistoryRepository) writeSnapshot(ctx context.Context, historyID uint64, items domain.LineItems) error {
	db := r.db.WithContext(ctx)

	if len(items.Travel) > 0 {
		rows := make([]snapTravel, 0, len(items.Travel))
		for _, t := range items.Travel {
			rows = append(rows, snapTravel{
				HistoryID:       historyID,
				EmpID:           t.EmpID,
				TravelDate:      t.TravelDate,
				FromLocation:    t.FromLocation,
				ToLocation:      t.ToLocation,
				ModeOfTransport: t.ModeOfTransport,
				FareAmount:      t.FareAmount,
			})
		}
		if err := db.Table(snapTravelTable).Create(&rows).Error; err != nil {
			return err
		}
	}
	for _, batch := range []struct {
		table   string
		entries []domain.AllowanceEntry
	}{
		{snapJourneyTable, items.Journey},
		{snapReturnTable, items.Return},
		{snapStayTable, items.Stay},
	} {
		if len(batch.entries) == 0 {
			continue
		}
		rows := make([]snapAllowance, 0, len(batch.entries))
		for _, a := range batch.entries {
			rows = append(rows, snapAllowance{
				HistoryID: historyID,
				EmpID:     a.EmpID,
				FromDate:  a.FromDate,
				ToDate:    a.ToDate,
				Scope:     a.Scope,
				NoOfDays:  a.NoOfDays,
				Amount:    a.Amount,
			})
		}
		if err := db.Table(batch.table).Create(&rows).Error; err != nil {
			return err
		}
	}
	for _, batch := range []struct {
		table string
		bills []domain.StayBill
	}{
		{snapHotelTable, items.Hotel},
		{snapFoodTable, items.Food},
	} {
		if len(batch.bills) == 0 {
			continue
		}
		rows := make([]snapBill, 0, len(batch.bills))
		for _, b := range batch.bills {
			rows = append(rows, snapBill{
				HistoryID:  historyID,
				FromDate:   b.FromDate,
				ToDate:     b.ToDate,
				Sharing:    b.Sharing,
				Location:   b.Location,
				BillAmount: b.BillAmount,
			})
		}
		if err := db.Table(batch.table).Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *HistoryRepository) ListByExpense(ctx context.Context, expenseID uint64) ([]history.Entry, error) {
	var out []history.Entry
	err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("history_id ASC").
		Find(&out).Error
	return out, err
}

func (r *HistoryRepository) Snapshot(ctx context.Context, historyID uint64) (domain.LineItems, error) {
	db := r.db.WithContext(ctx)
	var items domain.LineItems

	var travel []snapTravel
	if err := db.Table(snapTravelTable).Where("history_id = ?", historyID).Order("id").Find(&travel).Error; err != nil {
		return items, err
	}
	for _, t := range travel {
		items.Travel = append(items.Travel, domain.TravelSegment{
			ID:              t.ID,
			EmpID:           t.EmpID,
			TravelDate:      t.TravelDate,
			FromLocation:    t.FromLocation,
			ToLocation:      t.ToLocation,
			ModeOfTransport: t.ModeOfTransport,
			FareAmount:      t.FareAmount,
		})
	}
	for _, batch := range []struct {
		table string
		dst   *[]domain.AllowanceEntry
	}{
		{snapJourneyTable, &items.Journey},
		{snapReturnTable, &items.Return},
		{snapStayTable, &items.Stay},
	} {
		var rows []snapAllowance
		if err := db.Table(batch.table).Where("history_id = ?", historyID).Order("id").Find(&rows).Error; err != nil {
			return items, err
		}
		for _, a := range rows {
			*batch.dst = append(*batch.dst, domain.AllowanceEntry{
				ID:       a.ID,
				EmpID:    a.EmpID,
				FromDate: a.FromDate,
				ToDate:   a.ToDate,
				Scope:    a.Scope,
				NoOfDays: a.NoOfDays,
				Amount:   a.Amount,
			})
		}
	}
	for _, batch := range []struct {
		table string
		dst   *[]domain.StayBill
	}{
		{snapHotelTable, &items.Hotel},
		{snapFoodTable, &items.Food},
	} {
		var rows []snapBill
		if err := db.Table(batch.table).Where("history_id = ?", historyID).Order("id").Find(&rows).Error; err != nil {
			return items, err
		}
		for _, b := range rows {
			*batch.dst = append(*batch.dst, domain.StayBill{
				ID:         b.ID,
				FromDate:   b.FromDate,
				ToDate:     b.ToDate,
				Sharing:    b.Sharing,
				Location:   b.Location,
				BillAmount: b.BillAmount,
			})
		}
	}
	return items, nil
}
