package ledger

import (
	"strings"
	"time"

	"github.com/pharmalitics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Sale is one line item in the sales ledger. It is the aggregate root for
// ledger operations and the source of truth for all analytics.
//
// Product and pharmacy attributes are denormalized as plain text captured at
// the time of sale; they are not foreign keys and may diverge from the
// Product/Pharmacy master data.
type Sale struct {
	shared.BaseEntity

	ProductName     string `gorm:"type:varchar(255);not null;index"`
	ProductCategory string `gorm:"type:varchar(100);not null;index"`
	ProductCode     string `gorm:"type:varchar(50);index"`

	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Discount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	PharmacyName     string `gorm:"type:varchar(255);index"`
	PharmacyLocation string `gorm:"type:varchar(255)"`
	CustomerType     string `gorm:"type:varchar(50)"`

	SaleDate      time.Time `gorm:"not null;index"`
	PaymentMethod string    `gorm:"type:varchar(50)"`

	CampaignID string `gorm:"type:varchar(50)"`
	SalesRep   string `gorm:"type:varchar(100)"`

	Notes    string `gorm:"type:text"`
	IsActive bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSaleInput carries the caller-supplied fields for a new sale.
// TotalPrice is never accepted from the caller; it is always computed here.
type NewSaleInput struct {
	ProductName      string
	ProductCategory  string
	ProductCode      string
	Quantity         int
	UnitPrice        decimal.Decimal
	Discount         decimal.Decimal
	PharmacyName     string
	PharmacyLocation string
	CustomerType     string
	SaleDate         time.Time
	PaymentMethod    string
	CampaignID       string
	SalesRep         string
	Notes            string
}

// NewSale creates a sale, validating the ledger invariants and computing the
// total server-side.
func NewSale(in NewSaleInput) (*Sale, error) {
	if strings.TrimSpace(in.ProductName) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if strings.TrimSpace(in.ProductCategory) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product category is required")
	}
	if in.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if !in.UnitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price must be positive")
	}
	if in.Discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}

	saleDate := in.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}
	if saleDate.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale date cannot be in the future")
	}

	s := &Sale{
		BaseEntity:       shared.NewBaseEntity(),
		ProductName:      strings.TrimSpace(in.ProductName),
		ProductCategory:  strings.TrimSpace(in.ProductCategory),
		ProductCode:      strings.TrimSpace(in.ProductCode),
		Quantity:         in.Quantity,
		UnitPrice:        in.UnitPrice,
		Discount:         in.Discount,
		PharmacyName:     strings.TrimSpace(in.PharmacyName),
		PharmacyLocation: strings.TrimSpace(in.PharmacyLocation),
		CustomerType:     in.CustomerType,
		SaleDate:         saleDate,
		PaymentMethod:    in.PaymentMethod,
		CampaignID:       in.CampaignID,
		SalesRep:         in.SalesRep,
		Notes:            in.Notes,
		IsActive:         true,
	}
	s.recomputeTotal()

	return s, nil
}

// SaleUpdate carries a partial update. Nil fields are left unchanged.
type SaleUpdate struct {
	ProductName      *string
	ProductCategory  *string
	ProductCode      *string
	Quantity         *int
	UnitPrice        *decimal.Decimal
	Discount         *decimal.Decimal
	PharmacyName     *string
	PharmacyLocation *string
	CustomerType     *string
	SaleDate         *time.Time
	PaymentMethod    *string
	CampaignID       *string
	SalesRep         *string
	Notes            *string
}

// Apply applies a partial update. The total is recomputed only when a
// financial field (quantity, unit price, discount) changed.
func (s *Sale) Apply(u SaleUpdate) error {
	if u.Quantity != nil && *u.Quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if u.UnitPrice != nil && !u.UnitPrice.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Unit price must be positive")
	}
	if u.Discount != nil && u.Discount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}
	if u.SaleDate != nil && u.SaleDate.After(time.Now()) {
		return shared.NewDomainError("INVALID_INPUT", "Sale date cannot be in the future")
	}

	if u.ProductName != nil {
		if strings.TrimSpace(*u.ProductName) == "" {
			return shared.NewDomainError("INVALID_INPUT", "Product name is required")
		}
		s.ProductName = strings.TrimSpace(*u.ProductName)
	}
	if u.ProductCategory != nil {
		s.ProductCategory = strings.TrimSpace(*u.ProductCategory)
	}
	if u.ProductCode != nil {
		s.ProductCode = strings.TrimSpace(*u.ProductCode)
	}
	if u.PharmacyName != nil {
		s.PharmacyName = strings.TrimSpace(*u.PharmacyName)
	}
	if u.PharmacyLocation != nil {
		s.PharmacyLocation = strings.TrimSpace(*u.PharmacyLocation)
	}
	if u.CustomerType != nil {
		s.CustomerType = *u.CustomerType
	}
	if u.SaleDate != nil {
		s.SaleDate = *u.SaleDate
	}
	if u.PaymentMethod != nil {
		s.PaymentMethod = *u.PaymentMethod
	}
	if u.CampaignID != nil {
		s.CampaignID = *u.CampaignID
	}
	if u.SalesRep != nil {
		s.SalesRep = *u.SalesRep
	}
	if u.Notes != nil {
		s.Notes = *u.Notes
	}

	financial := u.Quantity != nil || u.UnitPrice != nil || u.Discount != nil
	if u.Quantity != nil {
		s.Quantity = *u.Quantity
	}
	if u.UnitPrice != nil {
		s.UnitPrice = *u.UnitPrice
	}
	if u.Discount != nil {
		s.Discount = *u.Discount
	}
	if financial {
		s.recomputeTotal()
	}

	s.Touch()
	return nil
}

// Deactivate soft-deletes the sale. Inactive rows are excluded from every
// listing and aggregation; they are never physically removed.
func (s *Sale) Deactivate() {
	s.IsActive = false
	s.Touch()
}

// GrossAmount returns quantity * unit_price before discount.
func (s *Sale) GrossAmount() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

func (s *Sale) recomputeTotal() {
	s.TotalPrice = s.GrossAmount().Sub(s.Discount)
}
