package service

import (
	"context"

	"github.com/sangkips/daybook-api/internal/domain/entity"
	"github.com/sangkips/daybook-api/internal/domain/enum"
	"github.com/sangkips/daybook-api/internal/domain/repository"
	"github.com/sangkips/daybook-api/pkg/apperror"
	"github.com/sangkips/daybook-api/pkg/validation"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense operations
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	validator   *validation.Validator
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, validator *validation.Validator) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		validator:   validator,
	}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	Description   string           `json:"description" validate:"notblank,max=500"`
	Amount        *decimal.Decimal `json:"amount" validate:"required,gte=0"`
	PaymentMethod string           `json:"paymentMethod" validate:"required,oneof=bankak cash"`
	Date          string           `json:"date" validate:"required,isodate"`
}

// ListExpenses returns every expense, newest first
func (s *ExpenseService) ListExpenses(ctx context.Context) ([]entity.Expense, error) {
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if expenses == nil {
		expenses = []entity.Expense{}
	}
	return expenses, nil
}

// CreateExpense records money paid out of one channel
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	method, err := enum.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, apperror.NewValidationError("paymentMethod", err.Error())
	}

	expense := &entity.Expense{
		Description:   input.Description,
		Amount:        *input.Amount,
		PaymentMethod: method,
		Date:          input.Date,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense by id
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uint) error {
	deleted, err := s.expenseRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFoundError("Expense not found")
	}
	return nil
}
