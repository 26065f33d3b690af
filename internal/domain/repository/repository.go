package repository

import (
	"context"
	"errors"

	"github.com/sangkips/daybook-api/internal/domain/entity"
)

// ErrDuplicateDate is returned when a sale already exists for the date
var ErrDuplicateDate = errors.New("sale for this date already exists")

// ErrSaleNotFound is returned by Update when no sale has the given id
var ErrSaleNotFound = errors.New("sale not found")

// SaleRepository defines the interface for daily sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uint) (*entity.Sale, error)
	GetByDate(ctx context.Context, date string) (*entity.Sale, error)
	// Update overwrites the date and amounts of sale.ID, keeping createdAt
	Update(ctx context.Context, sale *entity.Sale) error
	// List returns every sale, newest date first
	List(ctx context.Context) ([]entity.Sale, error)
	// ListByDateRange returns sales with start <= date <= end, oldest first
	ListByDateRange(ctx context.Context, start, end string) ([]entity.Sale, error)
}

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]entity.Expense, error)
	ListByDateRange(ctx context.Context, start, end string) ([]entity.Expense, error)
}

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]entity.Purchase, error)
	ListByDateRange(ctx context.Context, start, end string) ([]entity.Purchase, error)
}

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and endpoint
	GetByKey(ctx context.Context, key, endpoint string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) error
}
