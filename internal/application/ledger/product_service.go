package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalitics/backend/internal/domain/ledger"
	"github.com/pharmalitics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductService provides catalog master data operations
type ProductService struct {
	products ledger.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(products ledger.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// CreateProductRequest carries the payload for a new product
type CreateProductRequest struct {
	Name           string  `json:"name" binding:"required"`
	Code           string  `json:"code" binding:"required"`
	Category       string  `json:"category" binding:"required"`
	Subcategory    string  `json:"subcategory"`
	Description    string  `json:"description"`
	Manufacturer   string  `json:"manufacturer"`
	UnitCost       float64 `json:"unit_cost"`
	SuggestedPrice float64 `json:"suggested_price"`
}

// UpdateProductRequest carries a partial update; nil fields stay unchanged
type UpdateProductRequest struct {
	Category       *string  `json:"category"`
	Subcategory    *string  `json:"subcategory"`
	Description    *string  `json:"description"`
	Manufacturer   *string  `json:"manufacturer"`
	UnitCost       *float64 `json:"unit_cost"`
	SuggestedPrice *float64 `json:"suggested_price"`
}

// ProductResponse is the API shape of a product
type ProductResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	Category       string    `json:"category"`
	Subcategory    string    `json:"subcategory,omitempty"`
	Description    string    `json:"description,omitempty"`
	Manufacturer   string    `json:"manufacturer,omitempty"`
	UnitCost       float64   `json:"unit_cost"`
	SuggestedPrice float64   `json:"suggested_price"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProductListResponse wraps a paginated product listing
type ProductListResponse struct {
	Items  []ProductResponse `json:"items"`
	Total  int64             `json:"total"`
	Offset int               `json:"offset"`
	Limit  int               `json:"limit"`
}

// CreateProduct registers a product, rejecting duplicate codes
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.products.FindByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product code already registered")
	}

	product, err := ledger.NewProduct(ledger.NewProductInput{
		Name:           req.Name,
		Code:           req.Code,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		Description:    req.Description,
		Manufacturer:   req.Manufacturer,
		UnitCost:       decimal.NewFromFloat(req.UnitCost),
		SuggestedPrice: decimal.NewFromFloat(req.SuggestedPrice),
	})
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct returns one active product
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateProduct applies a partial update
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := ledger.ProductUpdate{
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		Description:  req.Description,
		Manufacturer: req.Manufacturer,
	}
	if req.UnitCost != nil {
		cost := decimal.NewFromFloat(*req.UnitCost)
		update.UnitCost = &cost
	}
	if req.SuggestedPrice != nil {
		price := decimal.NewFromFloat(*req.SuggestedPrice)
		update.SuggestedPrice = &price
	}

	if err := product.Apply(update); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.products.Update(ctx, product)
}

// ListProducts returns a paginated product listing
func (s *ProductService) ListProducts(ctx context.Context, offset, limit int) (*ProductListResponse, error) {
	filter := shared.Filter{Offset: offset, Limit: limit}.Normalize()

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i, product := range products {
		items[i] = *toProductResponse(product)
	}
	return &ProductListResponse{
		Items:  items,
		Total:  total,
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}, nil
}

func toProductResponse(product *ledger.Product) *ProductResponse {
	return &ProductResponse{
		ID:             product.ID.String(),
		Name:           product.Name,
		Code:           product.Code,
		Category:       product.Category,
		Subcategory:    product.Subcategory,
		Description:    product.Description,
		Manufacturer:   product.Manufacturer,
		UnitCost:       toFloat64(product.UnitCost),
		SuggestedPrice: toFloat64(product.SuggestedPrice),
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}
