package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmalitics/backend/internal/domain/ledger"
	"github.com/pharmalitics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a testify mock for ledger.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product *ledger.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*ledger.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *ledger.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, filter shared.Filter) ([]*ledger.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ledger.Product), args.Get(1).(int64), args.Error(2)
}

func existingProduct(t *testing.T) *ledger.Product {
	t.Helper()
	product, err := ledger.NewProduct(ledger.NewProductInput{
		Name:           "Amoxicillin 500mg",
		Code:           "AMX-500",
		Category:       "Antibiotic",
		UnitCost:       decimal.NewFromFloat(4.10),
		SuggestedPrice: decimal.NewFromFloat(12.50),
	})
	require.NoError(t, err)
	return product
}

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("creates a product with a fresh code", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("FindByCode", mock.Anything, "AMX-500").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Product")).Return(nil)

		resp, err := service.CreateProduct(context.Background(), CreateProductRequest{
			Name:     "Amoxicillin 500mg",
			Code:     "AMX-500",
			Category: "Antibiotic",
		})

		require.NoError(t, err)
		assert.Equal(t, "AMX-500", resp.Code)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate codes", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("FindByCode", mock.Anything, "AMX-500").Return(existingProduct(t), nil)

		_, err := service.CreateProduct(context.Background(), CreateProductRequest{
			Name:     "Another Product",
			Code:     "AMX-500",
			Category: "Antibiotic",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	product := existingProduct(t)

	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Update", mock.Anything, product).Return(nil)

	cost := 5.25
	resp, err := service.UpdateProduct(context.Background(), product.ID, UpdateProductRequest{UnitCost: &cost})

	require.NoError(t, err)
	assert.Equal(t, 5.25, resp.UnitCost)
	repo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	product := existingProduct(t)

	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Update", mock.Anything, product).Return(nil)

	require.NoError(t, service.DeleteProduct(context.Background(), product.ID))
	assert.False(t, product.IsActive)
}
