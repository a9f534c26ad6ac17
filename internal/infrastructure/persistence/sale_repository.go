package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmalitics/backend/internal/domain/ledger"
	"github.com/pharmalitics/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSaleRepository implements ledger.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Save persists a new sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *ledger.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// FindByID finds an active sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Sale, error) {
	var sale ledger.Sale
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// Update persists changes to an existing sale
func (r *GormSaleRepository) Update(ctx context.Context, sale *ledger.Sale) error {
	result := r.db.WithContext(ctx).Save(sale)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// List returns active sales matching the filter, newest sale date first
func (r *GormSaleRepository) List(ctx context.Context, filter ledger.SaleListFilter) ([]*ledger.Sale, int64, error) {
	filter.Filter = filter.Filter.Normalize()

	query := r.db.WithContext(ctx).
		Model(&ledger.Sale{}).
		Where("is_active = ?", true)

	if filter.ProductName != "" {
		query = query.Where("product_name ILIKE ?", "%"+filter.ProductName+"%")
	}
	if filter.ProductCategory != "" {
		query = query.Where("product_category ILIKE ?", "%"+filter.ProductCategory+"%")
	}
	if filter.PharmacyName != "" {
		query = query.Where("pharmacy_name ILIKE ?", "%"+filter.PharmacyName+"%")
	}
	if !filter.StartDate.IsZero() {
		query = query.Where("sale_date >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query = query.Where("sale_date <= ?", filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []*ledger.Sale
	if err := query.
		Order("sale_date DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&sales).Error; err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}
