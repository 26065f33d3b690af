package service

import (
	"context"

	"github.com/sangkips/daybook-api/internal/domain/entity"
	"github.com/sangkips/daybook-api/internal/domain/repository"
	"github.com/sangkips/daybook-api/pkg/apperror"
	"github.com/sangkips/daybook-api/pkg/validation"
	"github.com/shopspring/decimal"
)

// PurchaseService handles purchase operations
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	validator    *validation.Validator
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(purchaseRepo repository.PurchaseRepository, validator *validation.Validator) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		validator:    validator,
	}
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	ItemName string           `json:"itemName" validate:"notblank,max=500"`
	Amount   *decimal.Decimal `json:"amount" validate:"required,gte=0"`
	Date     string           `json:"date" validate:"required,isodate"`
}

// ListPurchases returns every purchase, newest first
func (s *PurchaseService) ListPurchases(ctx context.Context) ([]entity.Purchase, error) {
	purchases, err := s.purchaseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if purchases == nil {
		purchases = []entity.Purchase{}
	}
	return purchases, nil
}

// CreatePurchase records stock bought for the business
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	purchase := &entity.Purchase{
		ItemName: input.ItemName,
		Amount:   *input.Amount,
		Date:     input.Date,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// DeletePurchase removes a purchase by id
func (s *PurchaseService) DeletePurchase(ctx context.Context, id uint) error {
	deleted, err := s.purchaseRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFoundError("Purchase not found")
	}
	return nil
}
