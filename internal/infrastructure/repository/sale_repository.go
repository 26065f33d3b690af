package repository

import (
	"context"
	"errors"

	"github.com/sangkips/daybook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/daybook-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new daily sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	err := r.db.WithContext(ctx).Create(sale).Error
	if isUniqueViolation(err) {
		return domainRepo.ErrDuplicateDate
	}
	return err
}

func (r *saleRepository) GetByID(ctx context.Context, id uint) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByDate(ctx context.Context, date string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

// Update writes the date and amounts; created_at is never touched
func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Sale{ID: sale.ID}).
		Select("date", "total_amount", "bankak_amount", "cash_amount").
		Updates(sale)
	if isUniqueViolation(result.Error) {
		return domainRepo.ErrDuplicateDate
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrSaleNotFound
	}
	return nil
}

func (r *saleRepository) List(ctx context.Context) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).Order("date DESC").Order("id DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepository) ListByDateRange(ctx context.Context, start, end string) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Scopes(DateRange(start, end)).
		Order("date ASC").
		Find(&sales).Error
	return sales, err
}
