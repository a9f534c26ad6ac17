package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pharmalitics/backend/internal/domain/ledger"
	"github.com/pharmalitics/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements ledger.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save persists a new product
func (r *GormProductRepository) Save(ctx context.Context, product *ledger.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID finds an active product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Product, error) {
	var product ledger.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByCode finds an active product by its code
func (r *GormProductRepository) FindByCode(ctx context.Context, code string) (*ledger.Product, error) {
	var product ledger.Product
	if err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", strings.ToUpper(code), true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Update persists changes to an existing product
func (r *GormProductRepository) Update(ctx context.Context, product *ledger.Product) error {
	result := r.db.WithContext(ctx).Save(product)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// List returns active products ordered by name
func (r *GormProductRepository) List(ctx context.Context, filter shared.Filter) ([]*ledger.Product, int64, error) {
	filter = filter.Normalize()

	query := r.db.WithContext(ctx).
		Model(&ledger.Product{}).
		Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*ledger.Product
	if err := query.
		Order("name ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
