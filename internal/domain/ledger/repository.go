package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalitics/backend/internal/domain/shared"
)

// SaleListFilter narrows a ledger listing. Text filters are case-insensitive
// substring matches; zero time bounds are ignored.
type SaleListFilter struct {
	shared.Filter

	ProductName     string
	ProductCategory string
	PharmacyName    string
	StartDate       time.Time
	EndDate         time.Time
}

// SaleRepository persists sales. Read operations only return active rows.
type SaleRepository interface {
	Save(ctx context.Context, sale *Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	Update(ctx context.Context, sale *Sale) error
	List(ctx context.Context, filter SaleListFilter) ([]*Sale, int64, error)
}

// ProductRepository persists catalog master data.
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	Update(ctx context.Context, product *Product) error
	List(ctx context.Context, filter shared.Filter) ([]*Product, int64, error)
}

// PharmacyRepository persists pharmacy master data.
type PharmacyRepository interface {
	Save(ctx context.Context, pharmacy *Pharmacy) error
	FindByID(ctx context.Context, id uuid.UUID) (*Pharmacy, error)
	Update(ctx context.Context, pharmacy *Pharmacy) error
	List(ctx context.Context, filter shared.Filter) ([]*Pharmacy, int64, error)
}
