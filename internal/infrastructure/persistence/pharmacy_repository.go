package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmalitics/backend/internal/domain/ledger"
	"github.com/pharmalitics/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPharmacyRepository implements ledger.PharmacyRepository using GORM
type GormPharmacyRepository struct {
	db *gorm.DB
}

// NewGormPharmacyRepository creates a new GormPharmacyRepository
func NewGormPharmacyRepository(db *gorm.DB) *GormPharmacyRepository {
	return &GormPharmacyRepository{db: db}
}

// Save persists a new pharmacy
func (r *GormPharmacyRepository) Save(ctx context.Context, pharmacy *ledger.Pharmacy) error {
	return r.db.WithContext(ctx).Create(pharmacy).Error
}

// FindByID finds an active pharmacy by its ID
func (r *GormPharmacyRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Pharmacy, error) {
	var pharmacy ledger.Pharmacy
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&pharmacy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &pharmacy, nil
}

// Update persists changes to an existing pharmacy
func (r *GormPharmacyRepository) Update(ctx context.Context, pharmacy *ledger.Pharmacy) error {
	result := r.db.WithContext(ctx).Save(pharmacy)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// List returns active pharmacies ordered by name
func (r *GormPharmacyRepository) List(ctx context.Context, filter shared.Filter) ([]*ledger.Pharmacy, int64, error) {
	filter = filter.Normalize()

	query := r.db.WithContext(ctx).
		Model(&ledger.Pharmacy{}).
		Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var pharmacies []*ledger.Pharmacy
	if err := query.
		Order("name ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&pharmacies).Error; err != nil {
		return nil, 0, err
	}

	return pharmacies, total, nil
}
