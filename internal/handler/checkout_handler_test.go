package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roastery/internal/checkout"
	"roastery/internal/model"
	"roastery/internal/payment"
	"roastery/internal/shipping"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, draft *model.OrderDraft) (*model.OrderReceipt, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderReceipt), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Get(1).([]model.OrderItem), args.Error(2)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// MockGateway is a mock payment gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Authorize(ctx context.Context, amount decimal.Decimal, currency string, paymentMethodID string, metadata map[string]string) (string, error) {
	args := m.Called(ctx, amount, currency, paymentMethodID, metadata)
	return args.String(0), args.Error(1)
}

// offlineLookup always fails so the calculator's fallback rate applies.
type offlineLookup struct{}

func (offlineLookup) Lookup(context.Context, model.ShippingQuoteRequest) (*model.ShippingRule, error) {
	return nil, errors.New("rule service offline")
}

// newCheckoutTestHandler wires a real orchestrator over mocked services the
// same way cmd/api does.
func newCheckoutTestHandler(products *MockProductService, orders *MockOrderService, gateway *MockGateway) *CheckoutHandler {
	logger := zerolog.Nop()
	calc := shipping.NewCalculator(offlineLookup{}, logger)
	orch := checkout.NewOrchestrator(products, calc, gateway, orders, "aed", logger)
	return NewCheckoutHandler(orch, logger)
}

func checkoutBody(t *testing.T) string {
	t.Helper()
	req := model.CheckoutRequest{
		Customer: model.CustomerInfo{
			FullName: "Fatima Al Mansouri",
			Email:    "fatima@example.com",
			Phone:    "+971 50 123 4567",
		},
		Shipping: model.ShippingInfo{
			Emirate: "Dubai",
			City:    "Jumeirah",
			Address: "Villa 12, Street 8b, Jumeirah 1",
		},
		Items: []model.CartItem{
			{
				ProductID: "prod-colombia",
				Selection: model.VariationSelection{SizeGrams: 250},
				Quantity:  2,
			},
		},
		PaymentMethodID: "pm_test_card",
	}
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	return string(raw)
}

func pricedColombia(quantity int) *model.PricedItem {
	product := sampleProduct()
	return &model.PricedItem{
		Product: product,
		Variation: &model.ProductVariation{
			ID:        uuid.New(),
			ProductID: product.ID,
			SizeGrams: 250,
			Active:    true,
		},
		UnitPrice: decimal.RequireFromString("45.00"),
		Quantity:  quantity,
	}
}

func TestCheckoutHandler_Success(t *testing.T) {
	products := new(MockProductService)
	orders := new(MockOrderService)
	gateway := new(MockGateway)
	handler := newCheckoutTestHandler(products, orders, gateway)

	// 2 x 45.00 = 90.00 subtotal, below the free-shipping threshold so the
	// fallback flat rate of 25.00 applies: total 115.00.
	products.On("PriceItem", mock.Anything, "prod-colombia", model.VariationSelection{SizeGrams: 250}, 2).
		Return(pricedColombia(2), nil)
	gateway.On("Authorize", mock.Anything, decimal.RequireFromString("115.00"), "aed", "pm_test_card", mock.Anything).
		Return("pi_test_123", nil)
	orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*model.OrderDraft")).
		Return(&model.OrderReceipt{OrderID: uuid.New(), IsNewCustomer: true}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody(t)))
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp model.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsNewCustomer)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("115.00")),
		"expected total 115.00, got %s", resp.Total)
	assert.Equal(t, model.OrderStatusNew, resp.Status)

	products.AssertExpectations(t)
	orders.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestCheckoutHandler_ValidationFailure(t *testing.T) {
	products := new(MockProductService)
	orders := new(MockOrderService)
	gateway := new(MockGateway)
	handler := newCheckoutTestHandler(products, orders, gateway)

	body := strings.Replace(checkoutBody(t), "fatima@example.com", "not-an-email", 1)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout?lang=ar", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeValidation, resp.Code)
	assert.Equal(t, "يرجى إدخال بريد إلكتروني صحيح", resp.Fields["email"])

	gateway.AssertNotCalled(t, "Authorize")
	orders.AssertNotCalled(t, "CreateOrder")
}

func TestCheckoutHandler_PaymentDeclined(t *testing.T) {
	products := new(MockProductService)
	orders := new(MockOrderService)
	gateway := new(MockGateway)
	handler := newCheckoutTestHandler(products, orders, gateway)

	products.On("PriceItem", mock.Anything, "prod-colombia", model.VariationSelection{SizeGrams: 250}, 2).
		Return(pricedColombia(2), nil)
	gateway.On("Authorize", mock.Anything, mock.Anything, "aed", "pm_test_card", mock.Anything).
		Return("", &payment.Error{Message: "Your card was declined."})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody(t)))
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	require.Equal(t, http.StatusPaymentRequired, w.Code)

	// The gateway's message reaches the customer verbatim.
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Your card was declined.", resp.Error)
	assert.Equal(t, model.ErrCodePaymentFailed, resp.Code)

	orders.AssertNotCalled(t, "CreateOrder")
}

func TestCheckoutHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name           string
		priceErr       error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Variation not found",
			priceErr:       model.ErrVariationNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeVariationNotFound,
		},
		{
			name:           "Product not found",
			priceErr:       model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeProductNotFound,
		},
		{
			name:           "Invalid quantity",
			priceErr:       model.ErrInvalidQuantity,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(MockProductService)
			orders := new(MockOrderService)
			gateway := new(MockGateway)
			handler := newCheckoutTestHandler(products, orders, gateway)

			products.On("PriceItem", mock.Anything, "prod-colombia", model.VariationSelection{SizeGrams: 250}, 2).
				Return(nil, tt.priceErr)

			req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody(t)))
			w := httptest.NewRecorder()

			handler.Checkout(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)

			var resp model.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedCode, resp.Code)

			gateway.AssertNotCalled(t, "Authorize")
		})
	}
}

func TestCheckoutHandler_InsufficientStock(t *testing.T) {
	products := new(MockProductService)
	orders := new(MockOrderService)
	gateway := new(MockGateway)
	handler := newCheckoutTestHandler(products, orders, gateway)

	products.On("PriceItem", mock.Anything, "prod-colombia", model.VariationSelection{SizeGrams: 250}, 2).
		Return(pricedColombia(2), nil)
	gateway.On("Authorize", mock.Anything, mock.Anything, "aed", "pm_test_card", mock.Anything).
		Return("pi_test_123", nil)
	orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*model.OrderDraft")).
		Return(nil, model.ErrInsufficientStock)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody(t)))
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeInsufficientStock, resp.Code)
}

func TestCheckoutHandler_TotalMismatch(t *testing.T) {
	products := new(MockProductService)
	orders := new(MockOrderService)
	gateway := new(MockGateway)
	handler := newCheckoutTestHandler(products, orders, gateway)

	products.On("PriceItem", mock.Anything, "prod-colombia", model.VariationSelection{SizeGrams: 250}, 2).
		Return(pricedColombia(2), nil)

	// The client claims a much lower total than the server computes.
	clientTotal := decimal.RequireFromString("10.00")
	body := checkoutBody(t)
	body = strings.TrimSuffix(body, "}") + fmt.Sprintf(`,"clientTotal":%q}`, clientTotal.String())

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeTotalMismatch, resp.Code)

	gateway.AssertNotCalled(t, "Authorize")
}

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	products := new(MockProductService)
	orders := new(MockOrderService)
	gateway := new(MockGateway)
	handler := newCheckoutTestHandler(products, orders, gateway)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"items":[]}`))
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeEmptyCart, resp.Code)
}

func TestCheckoutHandler_MalformedBody(t *testing.T) {
	products := new(MockProductService)
	orders := new(MockOrderService)
	gateway := new(MockGateway)
	handler := newCheckoutTestHandler(products, orders, gateway)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
