package request

import (
	"github.com/sangkips/daybook-api/internal/application/service"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest represents the body of POST /api/daily-sales.
// Amounts accept JSON numbers or numeric strings.
type CreateSaleRequest struct {
	Date         string           `json:"date"`
	TotalAmount  *decimal.Decimal `json:"totalAmount"`
	BankakAmount *decimal.Decimal `json:"bankakAmount"`
	CashAmount   *decimal.Decimal `json:"cashAmount"`
}

func (r *CreateSaleRequest) ToInput() *service.SaleInput {
	return &service.SaleInput{
		Date:         r.Date,
		TotalAmount:  r.TotalAmount,
		BankakAmount: r.BankakAmount,
		CashAmount:   r.CashAmount,
	}
}

// UpdateSaleRequest represents the body of PUT /api/daily-sales/:id
type UpdateSaleRequest struct {
	Date         *string          `json:"date"`
	TotalAmount  *decimal.Decimal `json:"totalAmount"`
	BankakAmount *decimal.Decimal `json:"bankakAmount"`
	CashAmount   *decimal.Decimal `json:"cashAmount"`
}

func (r *UpdateSaleRequest) ToInput() *service.UpdateSaleInput {
	return &service.UpdateSaleInput{
		Date:         r.Date,
		TotalAmount:  r.TotalAmount,
		BankakAmount: r.BankakAmount,
		CashAmount:   r.CashAmount,
	}
}
