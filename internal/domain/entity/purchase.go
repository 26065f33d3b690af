package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is stock bought for the business
type Purchase struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ItemName  string          `gorm:"type:text;not null" json:"itemName"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date      string          `gorm:"type:varchar(10);index;not null" json:"date"`
	CreatedAt time.Time       `gorm:"autoCreateTime;<-:create" json:"createdAt"`
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}
