package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalitics/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// SaleService provides application-level sales ledger operations
type SaleService struct {
	sales ledger.SaleRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(sales ledger.SaleRepository) *SaleService {
	return &SaleService{sales: sales}
}

// CreateSaleRequest carries the payload for recording a sale
type CreateSaleRequest struct {
	ProductName      string    `json:"product_name" binding:"required"`
	ProductCategory  string    `json:"product_category" binding:"required"`
	ProductCode      string    `json:"product_code"`
	Quantity         int       `json:"quantity" binding:"required"`
	UnitPrice        float64   `json:"unit_price" binding:"required"`
	Discount         float64   `json:"discount"`
	PharmacyName     string    `json:"pharmacy_name"`
	PharmacyLocation string    `json:"pharmacy_location"`
	CustomerType     string    `json:"customer_type"`
	SaleDate         time.Time `json:"sale_date"`
	PaymentMethod    string    `json:"payment_method"`
	CampaignID       string    `json:"campaign_id"`
	SalesRep         string    `json:"sales_rep"`
	Notes            string    `json:"notes"`
}

// UpdateSaleRequest carries a partial update; nil fields stay unchanged
type UpdateSaleRequest struct {
	ProductName      *string    `json:"product_name"`
	ProductCategory  *string    `json:"product_category"`
	ProductCode      *string    `json:"product_code"`
	Quantity         *int       `json:"quantity"`
	UnitPrice        *float64   `json:"unit_price"`
	Discount         *float64   `json:"discount"`
	PharmacyName     *string    `json:"pharmacy_name"`
	PharmacyLocation *string    `json:"pharmacy_location"`
	CustomerType     *string    `json:"customer_type"`
	SaleDate         *time.Time `json:"sale_date"`
	PaymentMethod    *string    `json:"payment_method"`
	CampaignID       *string    `json:"campaign_id"`
	SalesRep         *string    `json:"sales_rep"`
	Notes            *string    `json:"notes"`
}

// ListSalesRequest narrows a ledger listing
type ListSalesRequest struct {
	ProductName     string    `form:"product_name"`
	ProductCategory string    `form:"product_category"`
	PharmacyName    string    `form:"pharmacy_name"`
	StartDate       time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate         time.Time `form:"end_date" time_format:"2006-01-02"`
	Offset          int       `form:"offset"`
	Limit           int       `form:"limit"`
}

// SaleResponse is the API shape of a sale
type SaleResponse struct {
	ID               string    `json:"id"`
	ProductName      string    `json:"product_name"`
	ProductCategory  string    `json:"product_category"`
	ProductCode      string    `json:"product_code,omitempty"`
	Quantity         int       `json:"quantity"`
	UnitPrice        float64   `json:"unit_price"`
	Discount         float64   `json:"discount"`
	TotalPrice       float64   `json:"total_price"`
	PharmacyName     string    `json:"pharmacy_name,omitempty"`
	PharmacyLocation string    `json:"pharmacy_location,omitempty"`
	CustomerType     string    `json:"customer_type,omitempty"`
	SaleDate         time.Time `json:"sale_date"`
	PaymentMethod    string    `json:"payment_method,omitempty"`
	CampaignID       string    `json:"campaign_id,omitempty"`
	SalesRep         string    `json:"sales_rep,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SaleListResponse wraps a paginated ledger listing
type SaleListResponse struct {
	Items  []SaleResponse `json:"items"`
	Total  int64          `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// CreateSale records a sale; the total is always computed server-side
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	sale, err := ledger.NewSale(ledger.NewSaleInput{
		ProductName:      req.ProductName,
		ProductCategory:  req.ProductCategory,
		ProductCode:      req.ProductCode,
		Quantity:         req.Quantity,
		UnitPrice:        decimal.NewFromFloat(req.UnitPrice),
		Discount:         decimal.NewFromFloat(req.Discount),
		PharmacyName:     req.PharmacyName,
		PharmacyLocation: req.PharmacyLocation,
		CustomerType:     req.CustomerType,
		SaleDate:         req.SaleDate,
		PaymentMethod:    req.PaymentMethod,
		CampaignID:       req.CampaignID,
		SalesRep:         req.SalesRep,
		Notes:            req.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// GetSale returns one active sale
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// UpdateSale applies a partial update and recomputes the total when a
// financial field changed
func (s *SaleService) UpdateSale(ctx context.Context, id uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := ledger.SaleUpdate{
		ProductName:      req.ProductName,
		ProductCategory:  req.ProductCategory,
		ProductCode:      req.ProductCode,
		Quantity:         req.Quantity,
		PharmacyName:     req.PharmacyName,
		PharmacyLocation: req.PharmacyLocation,
		CustomerType:     req.CustomerType,
		SaleDate:         req.SaleDate,
		PaymentMethod:    req.PaymentMethod,
		CampaignID:       req.CampaignID,
		SalesRep:         req.SalesRep,
		Notes:            req.Notes,
	}
	if req.UnitPrice != nil {
		price := decimal.NewFromFloat(*req.UnitPrice)
		update.UnitPrice = &price
	}
	if req.Discount != nil {
		discount := decimal.NewFromFloat(*req.Discount)
		update.Discount = &discount
	}

	if err := sale.Apply(update); err != nil {
		return nil, err
	}
	if err := s.sales.Update(ctx, sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// DeleteSale soft-deletes a sale; the row stays for audit but disappears
// from listings and analytics
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return err
	}
	sale.Deactivate()
	return s.sales.Update(ctx, sale)
}

// ListSales returns a filtered, paginated ledger listing, newest first
func (s *SaleService) ListSales(ctx context.Context, req ListSalesRequest) (*SaleListResponse, error) {
	filter := ledger.SaleListFilter{
		ProductName:     req.ProductName,
		ProductCategory: req.ProductCategory,
		PharmacyName:    req.PharmacyName,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	}
	filter.Offset = req.Offset
	filter.Limit = req.Limit
	filter.Filter = filter.Filter.Normalize()

	sales, total, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SaleResponse, len(sales))
	for i, sale := range sales {
		items[i] = *toSaleResponse(sale)
	}
	return &SaleListResponse{
		Items:  items,
		Total:  total,
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}, nil
}

func toSaleResponse(sale *ledger.Sale) *SaleResponse {
	return &SaleResponse{
		ID:               sale.ID.String(),
		ProductName:      sale.ProductName,
		ProductCategory:  sale.ProductCategory,
		ProductCode:      sale.ProductCode,
		Quantity:         sale.Quantity,
		UnitPrice:        toFloat64(sale.UnitPrice),
		Discount:         toFloat64(sale.Discount),
		TotalPrice:       toFloat64(sale.TotalPrice),
		PharmacyName:     sale.PharmacyName,
		PharmacyLocation: sale.PharmacyLocation,
		CustomerType:     sale.CustomerType,
		SaleDate:         sale.SaleDate,
		PaymentMethod:    sale.PaymentMethod,
		CampaignID:       sale.CampaignID,
		SalesRep:         sale.SalesRep,
		Notes:            sale.Notes,
		CreatedAt:        sale.CreatedAt,
		UpdatedAt:        sale.UpdatedAt,
	}
}

// toFloat64 converts a decimal for JSON output
func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
