package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is one persisted bill. Immutable after insert.
type SaleRecord struct {
	ID        int64
	Name      string
	Phone     string
	Service   string
	Amount    int64 // whole đồng
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpenseRecord is one persisted expense. Amount may be fractional.
type ExpenseRecord struct {
	ID        int64
	Category  string
	Amount    decimal.Decimal
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stats are lifetime totals across both tables.
type Stats struct {
	SaleCount    int64
	SaleTotal    int64
	ExpenseCount int64
	ExpenseTotal decimal.Decimal
}

func (s Stats) Profit() decimal.Decimal {
	return decimal.NewFromInt(s.SaleTotal).Sub(s.ExpenseTotal)
}
