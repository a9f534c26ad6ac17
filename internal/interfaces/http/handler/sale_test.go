package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appledger "github.com/pharmalitics/backend/internal/application/ledger"
	"github.com/pharmalitics/backend/internal/domain/ledger"
	"github.com/pharmalitics/backend/internal/domain/shared"
	"github.com/pharmalitics/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSaleRepo struct {
	mock.Mock
}

func (m *mockSaleRepo) Save(ctx context.Context, sale *ledger.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *mockSaleRepo) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Sale), args.Error(1)
}

func (m *mockSaleRepo) Update(ctx context.Context, sale *ledger.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *mockSaleRepo) List(ctx context.Context, filter ledger.SaleListFilter) ([]*ledger.Sale, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ledger.Sale), args.Get(1).(int64), args.Error(2)
}

func newSaleRouter(repo *mockSaleRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewSaleHandler(appledger.NewSaleService(repo)).RegisterRoutes(api)
	return engine
}

func TestSaleHandlerCreate(t *testing.T) {
	repo := new(mockSaleRepo)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Sale")).Return(nil)
	router := newSaleRouter(repo)

	body, _ := json.Marshal(map[string]any{
		"product_name":     "Amoxicillin 500mg",
		"product_category": "Antibiotic",
		"quantity":         10,
		"unit_price":       12.5,
		"discount":         5,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, 120.0, data["total_price"])
	repo.AssertExpectations(t)
}

func TestSaleHandlerCreateRejectsMissingFields(t *testing.T) {
	repo := new(mockSaleRepo)
	router := newSaleRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewReader([]byte(`{"quantity": 5}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSaleHandlerGetNotFound(t *testing.T) {
	repo := new(mockSaleRepo)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)
	router := newSaleRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sales/"+id.String(), nil))

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestSaleHandlerGetRejectsBadID(t *testing.T) {
	router := newSaleRouter(new(mockSaleRepo))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sales/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandlerList(t *testing.T) {
	repo := new(mockSaleRepo)
	sale, err := ledger.NewSale(ledger.NewSaleInput{
		ProductName:     "Ibuprofen 400mg",
		ProductCategory: "Analgesic",
		Quantity:        4,
		UnitPrice:       decimal.NewFromInt(8),
	})
	require.NoError(t, err)
	repo.On("List", mock.Anything, mock.AnythingOfType("ledger.SaleListFilter")).
		Return([]*ledger.Sale{sale}, int64(1), nil)
	router := newSaleRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sales?product_category=Analgesic", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	repo.AssertExpectations(t)
}

func TestSaleHandlerDelete(t *testing.T) {
	repo := new(mockSaleRepo)
	sale, err := ledger.NewSale(ledger.NewSaleInput{
		ProductName:     "Ibuprofen 400mg",
		ProductCategory: "Analgesic",
		Quantity:        4,
		UnitPrice:       decimal.NewFromInt(8),
	})
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	repo.On("Update", mock.Anything, sale).Return(nil)
	router := newSaleRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/sales/"+sale.ID.String(), nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, sale.IsActive)
	repo.AssertExpectations(t)
}
