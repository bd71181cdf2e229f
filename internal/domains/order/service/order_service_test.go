package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-backend/internal/domains/order/model"
	"checkout-backend/internal/domains/order/repository"
)

func validCreateRequest() model.CreateOrderRequest {
	return model.CreateOrderRequest{
		Customer: model.CustomerInput{
			Name:  "Maria Silva",
			Email: "maria@example.com",
			CPF:   "12345678901",
		},
		ProductID:     42,
		ProductName:   "Curso de Fotografia",
		ProductPrice:  decimal.NewFromFloat(197.90),
		PaymentMethod: model.PaymentMethodPix,
	}
}

func TestCreateOrder_Success(t *testing.T) {
	repo := &MockOrderRepository{}
	svc := NewOrderService(repo, 5*time.Minute)

	order, reused, err := svc.CreateOrder(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.False(t, reused)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	assert.Len(t, repo.CreatedOrders, 1)
}

func TestCreateOrder_ValidationFailures(t *testing.T) {
	repo := &MockOrderRepository{}
	svc := NewOrderService(repo, 5*time.Minute)

	tests := []struct {
		name   string
		mutate func(*model.CreateOrderRequest)
	}{
		{"missing name", func(r *model.CreateOrderRequest) { r.Customer.Name = "" }},
		{"missing email", func(r *model.CreateOrderRequest) { r.Customer.Email = "" }},
		{"invalid email", func(r *model.CreateOrderRequest) { r.Customer.Email = "not-an-email" }},
		{"missing cpf", func(r *model.CreateOrderRequest) { r.Customer.CPF = "" }},
		{"missing product name", func(r *model.CreateOrderRequest) { r.ProductName = "" }},
		{"invalid payment method", func(r *model.CreateOrderRequest) { r.PaymentMethod = "BARTER" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			_, _, err := svc.CreateOrder(context.Background(), req)
			require.Error(t, err)
			assert.True(t, model.IsValidationError(err))
			assert.Empty(t, repo.CreatedOrders, "nothing may be persisted on validation failure")
		})
	}
}

func TestCreateOrder_PaymentReferenceIdempotent(t *testing.T) {
	existing := &model.Order{ID: uuid.New(), PaymentStatus: model.PaymentStatusPending}
	repo := &MockOrderRepository{
		GetByPaymentIDFunc: func(ctx context.Context, paymentID string) (*model.Order, error) {
			assert.Equal(t, "pay_123", paymentID)
			return existing, nil
		},
	}
	svc := NewOrderService(repo, 5*time.Minute)

	req := validCreateRequest()
	paymentID := "pay_123"
	req.PaymentID = &paymentID

	order, reused, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, reused)
	assert.Equal(t, existing.ID, order.ID)
	assert.Empty(t, repo.CreatedOrders)
}

func TestCreateOrder_DuplicateWindowReuses(t *testing.T) {
	existing := &model.Order{ID: uuid.New()}
	var captured repository.DuplicateQuery
	repo := &MockOrderRepository{
		FindDuplicateFunc: func(ctx context.Context, q repository.DuplicateQuery) (*model.Order, error) {
			captured = q
			return existing, nil
		},
	}
	svc := NewOrderService(repo, 5*time.Minute)

	before := time.Now()
	order, reused, err := svc.CreateOrder(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.True(t, reused)
	assert.Equal(t, existing.ID, order.ID)
	assert.Empty(t, repo.CreatedOrders)

	// the window lower bound is now minus the configured duration
	expectedSince := before.Add(-5 * time.Minute)
	assert.WithinDuration(t, expectedSince, captured.Since, 2*time.Second)
	assert.Equal(t, "maria@example.com", captured.CustomerEmail)
	assert.Equal(t, int64(42), captured.ProductID)
	assert.True(t, decimal.NewFromFloat(197.90).Equal(captured.Price))
}

func TestCreateOrder_DuplicateMissCreatesNew(t *testing.T) {
	repo := &MockOrderRepository{
		FindDuplicateFunc: func(ctx context.Context, q repository.DuplicateQuery) (*model.Order, error) {
			return nil, model.ErrOrderNotFound
		},
	}
	svc := NewOrderService(repo, 5*time.Minute)

	_, reused, err := svc.CreateOrder(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.False(t, reused)
	assert.Len(t, repo.CreatedOrders, 1)
}

func TestCreateOrder_NormalizesIncomingStatus(t *testing.T) {
	repo := &MockOrderRepository{}
	svc := NewOrderService(repo, 5*time.Minute)

	req := validCreateRequest()
	req.PaymentStatus = "PAGO"

	order, _, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, order.PaymentStatus)
}

func TestCreateOrder_CardDetailsStored(t *testing.T) {
	repo := &MockOrderRepository{}
	svc := NewOrderService(repo, 5*time.Minute)

	req := validCreateRequest()
	req.PaymentMethod = model.PaymentMethodCreditCard
	req.CardDetails = &model.CardDetailsInput{
		Number:      "4111111111111111",
		ExpiryMonth: "12",
		ExpiryYear:  "2030",
		CVV:         "123",
		Brand:       "visa",
	}

	order, _, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, order.CreditCardNumber)
	assert.Equal(t, "4111111111111111", *order.CreditCardNumber)
	require.NotNil(t, order.CreditCardExpiry)
	assert.Equal(t, "12/2030", *order.CreditCardExpiry)
}

func TestListOrders_Pagination(t *testing.T) {
	repo := &MockOrderRepository{
		ListFunc: func(ctx context.Context, status string, page, limit int) ([]model.Order, int, error) {
			assert.Equal(t, "PAID", status)
			assert.Equal(t, 2, page)
			assert.Equal(t, 10, limit)
			return []model.Order{{ID: uuid.New()}}, 25, nil
		},
	}
	svc := NewOrderService(repo, 5*time.Minute)

	result, err := svc.ListOrders(context.Background(), model.ListOrdersRequest{
		Status: "PAID",
		Page:   2,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Len(t, result.Orders, 1)
	assert.Equal(t, 25, result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
}

func TestListOrders_RejectsUnknownStatusFilter(t *testing.T) {
	svc := NewOrderService(&MockOrderRepository{}, 5*time.Minute)

	_, err := svc.ListOrders(context.Background(), model.ListOrdersRequest{Status: "NOPE"})
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}
