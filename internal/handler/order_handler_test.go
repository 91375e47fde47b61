package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loja-rosa/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderHandler_GetByID(t *testing.T) {
	orderID := uuid.New()
	order := &model.Order{ID: orderID, OrderNumber: "ORD-1736935200000", Status: model.OrderStatusPending}

	mockService := new(MockCheckoutService)
	mockService.On("GetOrder", mock.Anything, orderID).Return(order, nil)

	h := NewOrderHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String(), nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, orderID, got.ID)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_GetByID_InvalidID(t *testing.T) {
	h := NewOrderHandler(new(MockCheckoutService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_GetByID_NotFound(t *testing.T) {
	orderID := uuid.New()

	mockService := new(MockCheckoutService)
	mockService.On("GetOrder", mock.Anything, orderID).Return(nil, model.ErrOrderNotFound)

	h := NewOrderHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String(), nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHandler_Confirm(t *testing.T) {
	orderID := uuid.New()
	confirmed := &model.Order{ID: orderID, Status: model.OrderStatusConfirmed}

	mockService := new(MockCheckoutService)
	mockService.On("ConfirmOrder", mock.Anything, orderID).Return(confirmed, nil)

	h := NewOrderHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+orderID.String()+"/confirm", nil)
	rec := httptest.NewRecorder()

	h.Confirm(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, model.OrderStatusConfirmed, got.Status)
}

func TestOrderHandler_Confirm_NotPending(t *testing.T) {
	orderID := uuid.New()

	mockService := new(MockCheckoutService)
	mockService.On("ConfirmOrder", mock.Anything, orderID).Return(nil, model.ErrOrderNotPending)

	h := NewOrderHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+orderID.String()+"/confirm", nil)
	rec := httptest.NewRecorder()

	h.Confirm(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOrderHandler_Confirm_MethodNotAllowed(t *testing.T) {
	h := NewOrderHandler(new(MockCheckoutService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+uuid.NewString()+"/confirm", nil)
	rec := httptest.NewRecorder()

	h.Confirm(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
