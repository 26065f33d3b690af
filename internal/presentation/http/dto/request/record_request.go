package request

import (
	"strings"

	"github.com/sangkips/daybook-api/internal/application/service"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest represents the body of POST /api/expenses
type CreateExpenseRequest struct {
	Description   string           `json:"description"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod string           `json:"paymentMethod"`
	Date          string           `json:"date"`
}

func (r *CreateExpenseRequest) ToInput() *service.CreateExpenseInput {
	return &service.CreateExpenseInput{
		Description:   strings.TrimSpace(r.Description),
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Date:          r.Date,
	}
}

// CreatePurchaseRequest represents the body of POST /api/purchases
type CreatePurchaseRequest struct {
	ItemName string           `json:"itemName"`
	Amount   *decimal.Decimal `json:"amount"`
	Date     string           `json:"date"`
}

func (r *CreatePurchaseRequest) ToInput() *service.CreatePurchaseInput {
	return &service.CreatePurchaseInput{
		ItemName: strings.TrimSpace(r.ItemName),
		Amount:   r.Amount,
		Date:     r.Date,
	}
}

// TokenRequest represents the body of POST /api/auth/token
type TokenRequest struct {
	Password string `json:"password"`
}

func (r *TokenRequest) ToInput() *service.TokenInput {
	return &service.TokenInput{Password: r.Password}
}
