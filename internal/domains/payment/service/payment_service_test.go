package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermodel "checkout-backend/internal/domains/order/model"
	gatewayMock "checkout-backend/internal/domains/payment/gateway/mock"
	"checkout-backend/internal/domains/payment/model"
)

func newTestService(orderRepo *MockOrderRepository, paymentRepo *MockPaymentRepository, webhookRepo *MockWebhookRepository, gw *gatewayMock.MockAsaasGateway) PaymentService {
	return NewPaymentService(orderRepo, paymentRepo, webhookRepo, gw, NewInProgressGuard(nil, 0))
}

func pendingOrder() *ordermodel.Order {
	return &ordermodel.Order{
		ID:            uuid.New(),
		CustomerName:  "Maria Silva",
		CustomerEmail: "maria@example.com",
		CustomerCPF:   "12345678901",
		ProductID:     42,
		ProductName:   "Curso de Fotografia",
		Price:         decimal.NewFromFloat(197.90),
		PaymentMethod: ordermodel.PaymentMethodPix,
		PaymentStatus: ordermodel.PaymentStatusPending,
	}
}

func createChargeRequest(orderID uuid.UUID) model.CreatePaymentRequest {
	return model.CreatePaymentRequest{
		OrderID:       orderID,
		CustomerName:  "Maria Silva",
		CustomerEmail: "maria@example.com",
		CustomerCPF:   "12345678901",
		ProductName:   "Curso de Fotografia",
		Price:         decimal.NewFromFloat(197.90),
		PaymentMethod: "PIX",
	}
}

// =====================================================
// CREATE CHARGE
// =====================================================

func TestCreateCharge_Success(t *testing.T) {
	order := pendingOrder()
	var attachedPaymentID string

	orderRepo := &MockOrderRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*ordermodel.Order, error) {
			require.Equal(t, order.ID, id)
			return order, nil
		},
		AttachPaymentFunc: func(ctx context.Context, orderID uuid.UUID, paymentID, qrCode, qrCodeImage string) error {
			attachedPaymentID = paymentID
			return nil
		},
	}
	paymentRepo := &MockPaymentRepository{}
	svc := newTestService(orderRepo, paymentRepo, &MockWebhookRepository{}, gatewayMock.NewMockAsaasGateway())

	resp, err := svc.CreateCharge(context.Background(), createChargeRequest(order.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.PaymentID)
	assert.NotEmpty(t, resp.QRCode)
	assert.NotEmpty(t, resp.QRImage)
	assert.Equal(t, resp.PaymentID, attachedPaymentID)

	require.Len(t, paymentRepo.CreatedRecords, 1)
	record := paymentRepo.CreatedRecords[0]
	assert.Equal(t, order.ID, record.OrderID)
	assert.Equal(t, model.GatewayAsaas, record.Gateway)
	assert.True(t, decimal.NewFromFloat(197.90).Equal(record.Amount))
}

func TestCreateCharge_OrderNotFound(t *testing.T) {
	svc := newTestService(&MockOrderRepository{}, &MockPaymentRepository{}, &MockWebhookRepository{}, gatewayMock.NewMockAsaasGateway())

	_, err := svc.CreateCharge(context.Background(), createChargeRequest(uuid.New()))
	require.Error(t, err)

	var payErr *model.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, model.ErrCodeOrderNotFound, payErr.Code)
}

func TestCreateCharge_IdempotentForExistingReference(t *testing.T) {
	order := pendingOrder()
	paymentID := "pay_existing"
	qr := "pix-payload"
	order.PaymentID = &paymentID
	order.QRCode = &qr

	orderRepo := &MockOrderRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*ordermodel.Order, error) {
			return order, nil
		},
	}
	gw := gatewayMock.NewMockAsaasGateway()
	gw.SetFailCharge(true) // must not be reached
	svc := newTestService(orderRepo, &MockPaymentRepository{}, &MockWebhookRepository{}, gw)

	resp, err := svc.CreateCharge(context.Background(), createChargeRequest(order.ID))
	require.NoError(t, err)
	assert.Equal(t, "pay_existing", resp.PaymentID)
	assert.Equal(t, "pix-payload", resp.QRCode)
}

func TestCreateCharge_GatewayFailureLeavesOrderRecoverable(t *testing.T) {
	order := pendingOrder()
	orderRepo := &MockOrderRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*ordermodel.Order, error) {
			return order, nil
		},
	}
	paymentRepo := &MockPaymentRepository{}
	gw := gatewayMock.NewMockAsaasGateway()
	gw.SetFailCharge(true)
	svc := newTestService(orderRepo, paymentRepo, &MockWebhookRepository{}, gw)

	_, err := svc.CreateCharge(context.Background(), createChargeRequest(order.ID))
	require.Error(t, err)

	var payErr *model.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, model.ErrCodeGatewayFailure, payErr.Code)
	assert.Empty(t, paymentRepo.CreatedRecords)
	assert.Equal(t, ordermodel.PaymentStatusPending, order.PaymentStatus)
}

func TestCreateCharge_QRCodeFailureIsNonFatal(t *testing.T) {
	order := pendingOrder()
	orderRepo := &MockOrderRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*ordermodel.Order, error) {
			return order, nil
		},
	}
	gw := gatewayMock.NewMockAsaasGateway()
	gw.SetFailQRCode(true)
	svc := newTestService(orderRepo, &MockPaymentRepository{}, &MockWebhookRepository{}, gw)

	resp, err := svc.CreateCharge(context.Background(), createChargeRequest(order.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.PaymentID)
	assert.Empty(t, resp.QRCode)
}

// =====================================================
// WEBHOOK PROCESSING
// =====================================================

func webhookRequest(event, paymentID, status string) model.WebhookRequest {
	return model.WebhookRequest{
		Event:   event,
		Payment: &model.WebhookPayment{ID: paymentID, Status: status},
	}
}

func TestProcessWebhook_ConfirmedEventMarksPaid(t *testing.T) {
	order := pendingOrder()
	paymentID := "pay_1"
	order.PaymentID = &paymentID

	var appliedStatus ordermodel.PaymentStatus
	orderRepo := &MockOrderRepository{
		GetByPaymentIDFunc: func(ctx context.Context, id string) (*ordermodel.Order, error) {
			return order, nil
		},
		UpdateMonotonicFunc: func(ctx context.Context, orderID uuid.UUID, status ordermodel.PaymentStatus) (bool, error) {
			appliedStatus = status
			return true, nil
		},
	}
	webhookRepo := &MockWebhookRepository{}
	svc := newTestService(orderRepo, &MockPaymentRepository{}, webhookRepo, gatewayMock.NewMockAsaasGateway())

	err := svc.ProcessWebhook(context.Background(),
		webhookRequest(model.EventPaymentConfirmed, "pay_1", "CONFIRMED"),
		map[string]interface{}{"event": model.EventPaymentConfirmed})
	require.NoError(t, err)
	assert.Equal(t, ordermodel.PaymentStatusPaid, appliedStatus)

	require.Len(t, webhookRepo.Entries, 1)
	assert.True(t, webhookRepo.Entries[0].IsProcessed)
}

func TestProcessWebhook_RejectFamilyMarksDenied(t *testing.T) {
	events := []string{
		model.EventPaymentOverdue,
		model.EventPaymentRefused,
		model.EventPaymentReprovedByRisk,
		model.EventPaymentChargebackRequested,
	}

	for _, event := range events {
		t.Run(event, func(t *testing.T) {
			order := pendingOrder()
			var appliedStatus ordermodel.PaymentStatus
			orderRepo := &MockOrderRepository{
				GetByPaymentIDFunc: func(ctx context.Context, id string) (*ordermodel.Order, error) {
					return order, nil
				},
				UpdateMonotonicFunc: func(ctx context.Context, orderID uuid.UUID, status ordermodel.PaymentStatus) (bool, error) {
					appliedStatus = status
					return true, nil
				},
			}
			svc := newTestService(orderRepo, &MockPaymentRepository{}, &MockWebhookRepository{}, gatewayMock.NewMockAsaasGateway())

			err := svc.ProcessWebhook(context.Background(), webhookRequest(event, "pay_1", ""), nil)
			require.NoError(t, err)
			assert.Equal(t, ordermodel.PaymentStatusDenied, appliedStatus)
		})
	}
}

func TestProcessWebhook_UnknownEventIsAcknowledgedWithoutMutation(t *testing.T) {
	mutated := false
	orderRepo := &MockOrderRepository{
		UpdateMonotonicFunc: func(ctx context.Context, orderID uuid.UUID, status ordermodel.PaymentStatus) (bool, error) {
			mutated = true
			return true, nil
		},
	}
	webhookRepo := &MockWebhookRepository{}
	svc := newTestService(orderRepo, &MockPaymentRepository{}, webhookRepo, gatewayMock.NewMockAsaasGateway())

	err := svc.ProcessWebhook(context.Background(), webhookRequest("PAYMENT_SOMETHING_NEW", "pay_1", ""), nil)
	require.NoError(t, err)
	assert.False(t, mutated)
	assert.Len(t, webhookRepo.Entries, 1, "ignored deliveries still hit the audit trail")
}

func TestProcessWebhook_InertEventIsAcknowledged(t *testing.T) {
	svc := newTestService(&MockOrderRepository{}, &MockPaymentRepository{}, &MockWebhookRepository{}, gatewayMock.NewMockAsaasGateway())

	err := svc.ProcessWebhook(context.Background(), webhookRequest(model.EventPaymentCreated, "pay_1", "PENDING"), nil)
	require.NoError(t, err)
}

func TestProcessWebhook_UnknownPaymentReturnsNotFound(t *testing.T) {
	webhookRepo := &MockWebhookRepository{}
	svc := newTestService(&MockOrderRepository{}, &MockPaymentRepository{}, webhookRepo, gatewayMock.NewMockAsaasGateway())

	err := svc.ProcessWebhook(context.Background(), webhookRequest(model.EventPaymentConfirmed, "pay_ghost", ""), nil)
	require.Error(t, err)

	var payErr *model.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, model.ErrCodeOrderNotFound, payErr.Code)

	require.Len(t, webhookRepo.Entries, 1)
	assert.False(t, webhookRepo.Entries[0].IsProcessed)
	assert.NotNil(t, webhookRepo.Entries[0].ProcessingError)
}

func TestProcessWebhook_StaleDeliveryIsAcknowledged(t *testing.T) {
	order := pendingOrder()
	order.PaymentStatus = ordermodel.PaymentStatusPaid

	orderRepo := &MockOrderRepository{
		GetByPaymentIDFunc: func(ctx context.Context, id string) (*ordermodel.Order, error) {
			return order, nil
		},
		UpdateMonotonicFunc: func(ctx context.Context, orderID uuid.UUID, status ordermodel.PaymentStatus) (bool, error) {
			return false, nil
		},
	}
	webhookRepo := &MockWebhookRepository{}
	svc := newTestService(orderRepo, &MockPaymentRepository{}, webhookRepo, gatewayMock.NewMockAsaasGateway())

	err := svc.ProcessWebhook(context.Background(), webhookRequest(model.EventPaymentConfirmed, "pay_1", ""), nil)
	require.NoError(t, err, "a stale delivery must still be acknowledged")
	require.Len(t, webhookRepo.Entries, 1)
	assert.True(t, webhookRepo.Entries[0].IsProcessed)
}

func TestProcessWebhook_StoreFailurePropagates(t *testing.T) {
	order := pendingOrder()
	orderRepo := &MockOrderRepository{
		GetByPaymentIDFunc: func(ctx context.Context, id string) (*ordermodel.Order, error) {
			return order, nil
		},
		UpdateMonotonicFunc: func(ctx context.Context, orderID uuid.UUID, status ordermodel.PaymentStatus) (bool, error) {
			return false, assert.AnError
		},
	}
	svc := newTestService(orderRepo, &MockPaymentRepository{}, &MockWebhookRepository{}, gatewayMock.NewMockAsaasGateway())

	err := svc.ProcessWebhook(context.Background(), webhookRequest(model.EventPaymentConfirmed, "pay_1", ""), nil)
	require.Error(t, err)

	var payErr *model.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, model.ErrCodeStoreFailure, payErr.Code)
}

// =====================================================
// STATUS CHECK
// =====================================================

func TestCheckStatus_TerminalOrderSkipsGateway(t *testing.T) {
	order := pendingOrder()
	paymentID := "pay_1"
	order.PaymentID = &paymentID
	order.PaymentStatus = ordermodel.PaymentStatusPaid

	orderRepo := &MockOrderRepository{
		GetByPaymentIDFunc: func(ctx context.Context, id string) (*ordermodel.Order, error) {
			return order, nil
		},
	}
	// charge is unknown to the mock gateway; reaching it would error
	svc := newTestService(orderRepo, &MockPaymentRepository{}, &MockWebhookRepository{}, gatewayMock.NewMockAsaasGateway())

	resp, err := svc.CheckStatus(context.Background(), model.CheckStatusRequest{PaymentID: "pay_1"})
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.PaymentStatus)
	assert.Equal(t, order.ID.String(), resp.PaymentID)
	assert.Equal(t, "pay_1", resp.GatewayPaymentID)
}

func TestCheckStatus_PendingOrderRefreshesFromGateway(t *testing.T) {
	order := pendingOrder()
	paymentID := "pay_1"
	order.PaymentID = &paymentID

	var appliedStatus ordermodel.PaymentStatus
	orderRepo := &MockOrderRepository{
		GetByPaymentIDFunc: func(ctx context.Context, id string) (*ordermodel.Order, error) {
			return order, nil
		},
		UpdateMonotonicFunc: func(ctx context.Context, orderID uuid.UUID, status ordermodel.PaymentStatus) (bool, error) {
			appliedStatus = status
			return true, nil
		},
	}
	gw := gatewayMock.NewMockAsaasGateway()
	gw.SetChargeStatus("pay_1", "RECEIVED")
	svc := newTestService(orderRepo, &MockPaymentRepository{}, &MockWebhookRepository{}, gw)

	resp, err := svc.CheckStatus(context.Background(), model.CheckStatusRequest{PaymentID: "pay_1"})
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.PaymentStatus)
	assert.Equal(t, ordermodel.PaymentStatusPaid, appliedStatus)
}

func TestCheckStatus_GatewayFailureFallsBackToStored(t *testing.T) {
	order := pendingOrder()
	paymentID := "pay_unknown_to_gateway"
	order.PaymentID = &paymentID

	orderRepo := &MockOrderRepository{
		GetByPaymentIDFunc: func(ctx context.Context, id string) (*ordermodel.Order, error) {
			return order, nil
		},
	}
	svc := newTestService(orderRepo, &MockPaymentRepository{}, &MockWebhookRepository{}, gatewayMock.NewMockAsaasGateway())

	resp, err := svc.CheckStatus(context.Background(), model.CheckStatusRequest{PaymentID: paymentID})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.PaymentStatus)
}

func TestCheckStatus_ResolvesByOrderID(t *testing.T) {
	order := pendingOrder()
	orderRepo := &MockOrderRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*ordermodel.Order, error) {
			require.Equal(t, order.ID, id)
			return order, nil
		},
	}
	svc := newTestService(orderRepo, &MockPaymentRepository{}, &MockWebhookRepository{}, gatewayMock.NewMockAsaasGateway())

	resp, err := svc.CheckStatus(context.Background(), model.CheckStatusRequest{PaymentID: order.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, order.ID.String(), resp.PaymentID)
}

func TestCheckStatus_UnknownReferenceIsNotFound(t *testing.T) {
	svc := newTestService(&MockOrderRepository{}, &MockPaymentRepository{}, &MockWebhookRepository{}, gatewayMock.NewMockAsaasGateway())

	_, err := svc.CheckStatus(context.Background(), model.CheckStatusRequest{PaymentID: "pay_nope"})
	require.Error(t, err)

	var payErr *model.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, model.ErrCodePaymentNotFound, payErr.Code)
}
