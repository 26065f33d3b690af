package repository

import (
	"context"

	"github.com/sangkips/daybook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/daybook-api/internal/domain/repository"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Purchase{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *purchaseRepository) List(ctx context.Context) ([]entity.Purchase, error) {
	var purchases []entity.Purchase
	err := r.db.WithContext(ctx).Scopes(NewestFirst).Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepository) ListByDateRange(ctx context.Context, start, end string) ([]entity.Purchase, error) {
	var purchases []entity.Purchase
	err := r.db.WithContext(ctx).
		Scopes(DateRange(start, end)).
		Order("date ASC").
		Find(&purchases).Error
	return purchases, err
}
