package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// breakdownTolerance is how far the channel split may drift from the total
var breakdownTolerance = decimal.NewFromInt(1)

// Sale is the takings for one calendar day, split by channel
type Sale struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Date         string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"totalAmount"`
	BankakAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"bankakAmount"`
	CashAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"cashAmount"`
	CreatedAt    time.Time       `gorm:"autoCreateTime;<-:create" json:"createdAt"`
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "daily_sales"
}

// BreakdownMismatch reports whether the channel amounts disagree with the total
// by more than one unit
func (s *Sale) BreakdownMismatch() bool {
	sum := s.BankakAmount.Add(s.CashAmount)
	return s.TotalAmount.Sub(sum).Abs().GreaterThan(breakdownTolerance)
}
