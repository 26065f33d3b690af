package service

import (
	"context"
	"errors"

	"github.com/sangkips/daybook-api/internal/domain/entity"
	"github.com/sangkips/daybook-api/internal/domain/repository"
	"github.com/sangkips/daybook-api/pkg/apperror"
	"github.com/sangkips/daybook-api/pkg/lock"
	"github.com/sangkips/daybook-api/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	saleLockKey = "daily-sales"

	msgSaleNotFound  = "No sales record found for this date"
	msgSaleDuplicate = "Sales record for this date already exists"
)

// SaleService handles daily sale operations
type SaleService struct {
	saleRepo  repository.SaleRepository
	locker    lock.Locker
	validator *validation.Validator
	log       *logrus.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	locker lock.Locker,
	validator *validation.Validator,
	log *logrus.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:  saleRepo,
		locker:    locker,
		validator: validator,
		log:       log,
	}
}

// SaleInput represents the input for recording a day's sales
type SaleInput struct {
	Date         string           `json:"date" validate:"required,isodate"`
	TotalAmount  *decimal.Decimal `json:"totalAmount" validate:"required,gte=0"`
	BankakAmount *decimal.Decimal `json:"bankakAmount" validate:"required,gte=0"`
	CashAmount   *decimal.Decimal `json:"cashAmount" validate:"required,gte=0"`
}

// UpdateSaleInput carries the fields to change; nil fields are left alone
type UpdateSaleInput struct {
	Date         *string          `json:"date" validate:"omitempty,isodate"`
	TotalAmount  *decimal.Decimal `json:"totalAmount" validate:"omitempty,gte=0"`
	BankakAmount *decimal.Decimal `json:"bankakAmount" validate:"omitempty,gte=0"`
	CashAmount   *decimal.Decimal `json:"cashAmount" validate:"omitempty,gte=0"`
}

// ListSales returns every sale, newest date first
func (s *SaleService) ListSales(ctx context.Context) ([]entity.Sale, error) {
	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []entity.Sale{}
	}
	return sales, nil
}

// GetSaleByDate returns the sale recorded for date
func (s *SaleService) GetSaleByDate(ctx context.Context, date string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError(msgSaleNotFound)
	}
	return sale, nil
}

// CreateSale records a new day. A day that already has a sale is a conflict
// and leaves the collection unchanged.
func (s *SaleService) CreateSale(ctx context.Context, input *SaleInput) (*entity.Sale, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, saleLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := s.saleRepo.GetByDate(ctx, input.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(msgSaleDuplicate)
	}

	sale := &entity.Sale{
		Date:         input.Date,
		TotalAmount:  *input.TotalAmount,
		BankakAmount: *input.BankakAmount,
		CashAmount:   *input.CashAmount,
	}
	s.warnOnMismatch(sale)

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// Another replica can win the race when no shared lock is configured.
		if errors.Is(err, repository.ErrDuplicateDate) {
			return nil, apperror.NewConflictError(msgSaleDuplicate)
		}
		return nil, err
	}

	return sale, nil
}

// UpsertSale records a day, overwriting the amounts when the date is already
// taken. The existing id and createdAt are kept.
func (s *SaleService) UpsertSale(ctx context.Context, input *SaleInput) (*entity.Sale, bool, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, false, err
	}

	unlock, err := s.locker.Lock(ctx, saleLockKey)
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	existing, err := s.saleRepo.GetByDate(ctx, input.Date)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		sale, err := s.overwrite(ctx, existing, input)
		return sale, false, err
	}

	sale := &entity.Sale{
		Date:         input.Date,
		TotalAmount:  *input.TotalAmount,
		BankakAmount: *input.BankakAmount,
		CashAmount:   *input.CashAmount,
	}
	s.warnOnMismatch(sale)
	err = s.saleRepo.Create(ctx, sale)
	if err == nil {
		return sale, true, nil
	}
	if !errors.Is(err, repository.ErrDuplicateDate) {
		return nil, false, err
	}

	// Another replica inserted the day after our read; overwrite its row.
	existing, err = s.saleRepo.GetByDate(ctx, input.Date)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, apperror.NewConflictError(msgSaleDuplicate)
	}
	sale, err = s.overwrite(ctx, existing, input)
	return sale, false, err
}

func (s *SaleService) overwrite(ctx context.Context, existing *entity.Sale, input *SaleInput) (*entity.Sale, error) {
	existing.TotalAmount = *input.TotalAmount
	existing.BankakAmount = *input.BankakAmount
	existing.CashAmount = *input.CashAmount
	s.warnOnMismatch(existing)

	if err := s.saleRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return nil, apperror.NewConflictError(msgSaleDuplicate)
		}
		return nil, err
	}
	return existing, nil
}

// UpdateSale changes an existing sale by id
func (s *SaleService) UpdateSale(ctx context.Context, id uint, input *UpdateSaleInput) (*entity.Sale, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, saleLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sales record not found")
	}

	if input.Date != nil && *input.Date != sale.Date {
		taken, err := s.saleRepo.GetByDate(ctx, *input.Date)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, apperror.NewConflictError(msgSaleDuplicate)
		}
		sale.Date = *input.Date
	}
	if input.TotalAmount != nil {
		sale.TotalAmount = *input.TotalAmount
	}
	if input.BankakAmount != nil {
		sale.BankakAmount = *input.BankakAmount
	}
	if input.CashAmount != nil {
		sale.CashAmount = *input.CashAmount
	}
	s.warnOnMismatch(sale)

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateDate):
			return nil, apperror.NewConflictError(msgSaleDuplicate)
		case errors.Is(err, repository.ErrSaleNotFound):
			return nil, apperror.NewNotFoundError("Sales record not found")
		}
		return nil, err
	}
	return sale, nil
}

func (s *SaleService) warnOnMismatch(sale *entity.Sale) {
	if !sale.BreakdownMismatch() {
		return
	}
	s.log.WithFields(logrus.Fields{
		"date":         sale.Date,
		"totalAmount":  sale.TotalAmount.String(),
		"bankakAmount": sale.BankakAmount.String(),
		"cashAmount":   sale.CashAmount.String(),
	}).Warn("sale channel breakdown does not add up to the total")
}
