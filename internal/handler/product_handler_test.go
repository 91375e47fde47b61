package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loja-rosa/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func TestProductHandler_GetAll(t *testing.T) {
	logger := zerolog.Nop()

	products := []model.Product{
		{ID: "P001", Name: "Farinha de Milho", Price: 3.49, CategoryID: "mercearia", CreatedAt: time.Now()},
		{ID: "P002", Name: "Sabonete Natural", Price: 5.99, CategoryID: "cosmeticos", CreatedAt: time.Now()},
	}

	tests := []struct {
		name           string
		method         string
		queryParams    string
		mockReturn     []model.Product
		mockError      error
		expectedStatus int
		expectService  bool
		limit          int
		offset         int
	}{
		{
			name:           "Success with default pagination",
			method:         http.MethodGet,
			mockReturn:     products,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Success with custom pagination",
			method:         http.MethodGet,
			queryParams:    "?limit=5&offset=10",
			mockReturn:     []model.Product{},
			expectedStatus: http.StatusOK,
			expectService:  true,
			limit:          5,
			offset:         10,
		},
		{
			name:           "Invalid limit parameter",
			method:         http.MethodGet,
			queryParams:    "?limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodPost,
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "Service error",
			method:         http.MethodGet,
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			if tt.expectService {
				mockService.On("GetAll", mock.Anything, tt.limit, tt.offset).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewProductHandler(mockService, logger)

			req := httptest.NewRequest(tt.method, "/api/products"+tt.queryParams, nil)
			rec := httptest.NewRecorder()

			h.GetAll(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	product := &model.Product{ID: "P001", Name: "Farinha de Milho", Price: 3.49, CategoryID: "mercearia"}

	mockService := new(MockProductService)
	mockService.On("GetByID", mock.Anything, "P001").Return(product, nil)

	h := NewProductHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/products/P001", nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "P001", got.ID)
	mockService.AssertExpectations(t)
}

func TestProductHandler_GetByID_IvaBreakdown(t *testing.T) {
	product := &model.Product{ID: "P001", Name: "Farinha de Milho", Price: 3.49, CategoryID: "mercearia"}

	mockService := new(MockProductService)
	mockService.On("GetByID", mock.Anything, "P001").Return(product, nil)

	h := NewProductHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products/P001", nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got productResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 3.09, got.BasePrice)
	assert.Equal(t, 0.40, got.VATAmount)
	assert.Equal(t, "IVA Intermédio (13%)", got.IvaDescription)
	assert.Nil(t, got.PromoPrice)
}

func TestProductHandler_GetByID_PromoPrice(t *testing.T) {
	product := &model.Product{ID: "P003", Name: "Sabonete Natural", Price: 5.99, CategoryID: "cosmeticos", DiscountPercent: 10}

	mockService := new(MockProductService)
	mockService.On("GetByID", mock.Anything, "P003").Return(product, nil)

	h := NewProductHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products/P003", nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got productResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	// Base 5.30, minus 10% is 4.77, plus 13% IVA back on top
	require.NotNil(t, got.PromoPrice)
	assert.Equal(t, 5.39, *got.PromoPrice)
	assert.Less(t, *got.PromoPrice, got.Price)
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockProductService)
	mockService.On("GetByID", mock.Anything, "P999").Return(nil, errors.New("not found"))

	h := NewProductHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/products/P999", nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_GetByID_MissingID(t *testing.T) {
	h := NewProductHandler(new(MockProductService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
