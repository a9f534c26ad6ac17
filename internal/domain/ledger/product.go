package ledger

import (
	"strings"

	"github.com/pharmalitics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is master data for the pharmaceutical catalog. Sales reference
// products by denormalized name and code, so products can be edited without
// rewriting history.
type Product struct {
	shared.BaseEntity

	Name        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Category    string `gorm:"type:varchar(100);not null;index"`
	Subcategory string `gorm:"type:varchar(100)"`
	Description string `gorm:"type:text"`

	Manufacturer   string          `gorm:"type:varchar(255)"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SuggestedPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	IsActive bool `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProductInput carries the caller-supplied fields for a new product.
type NewProductInput struct {
	Name           string
	Code           string
	Category       string
	Subcategory    string
	Description    string
	Manufacturer   string
	UnitCost       decimal.Decimal
	SuggestedPrice decimal.Decimal
}

// NewProduct creates a product after validating required fields.
func NewProduct(in NewProductInput) (*Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if strings.TrimSpace(in.Code) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product code is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product category is required")
	}
	if in.UnitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit cost cannot be negative")
	}
	if in.SuggestedPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Suggested price cannot be negative")
	}

	return &Product{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           strings.TrimSpace(in.Name),
		Code:           strings.ToUpper(strings.TrimSpace(in.Code)),
		Category:       strings.TrimSpace(in.Category),
		Subcategory:    strings.TrimSpace(in.Subcategory),
		Description:    in.Description,
		Manufacturer:   strings.TrimSpace(in.Manufacturer),
		UnitCost:       in.UnitCost,
		SuggestedPrice: in.SuggestedPrice,
		IsActive:       true,
	}, nil
}

// ProductUpdate carries a partial update. Nil fields are left unchanged.
// Name and Code are immutable after creation.
type ProductUpdate struct {
	Category       *string
	Subcategory    *string
	Description    *string
	Manufacturer   *string
	UnitCost       *decimal.Decimal
	SuggestedPrice *decimal.Decimal
}

// Apply applies a partial update.
func (p *Product) Apply(u ProductUpdate) error {
	if u.UnitCost != nil && u.UnitCost.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Unit cost cannot be negative")
	}
	if u.SuggestedPrice != nil && u.SuggestedPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Suggested price cannot be negative")
	}

	if u.Category != nil {
		if strings.TrimSpace(*u.Category) == "" {
			return shared.NewDomainError("INVALID_INPUT", "Product category is required")
		}
		p.Category = strings.TrimSpace(*u.Category)
	}
	if u.Subcategory != nil {
		p.Subcategory = strings.TrimSpace(*u.Subcategory)
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Manufacturer != nil {
		p.Manufacturer = strings.TrimSpace(*u.Manufacturer)
	}
	if u.UnitCost != nil {
		p.UnitCost = *u.UnitCost
	}
	if u.SuggestedPrice != nil {
		p.SuggestedPrice = *u.SuggestedPrice
	}

	p.Touch()
	return nil
}

// Deactivate soft-deletes the product.
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
}
