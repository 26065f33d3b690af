package entity

import (
	"time"

	"github.com/sangkips/daybook-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Expense is money paid out of one channel
type Expense struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	Description   string             `gorm:"type:text;not null" json:"description"`
	Amount        decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentMethod enum.PaymentMethod `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	Date          string             `gorm:"type:varchar(10);index;not null" json:"date"`
	CreatedAt     time.Time          `gorm:"autoCreateTime;<-:create" json:"createdAt"`
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
