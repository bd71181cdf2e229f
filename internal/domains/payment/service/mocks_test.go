package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	ordermodel "checkout-backend/internal/domains/order/model"
	orderrepo "checkout-backend/internal/domains/order/repository"
	"checkout-backend/internal/domains/payment/model"
)

// MockOrderRepository implements orderrepo.OrderRepository for testing.
type MockOrderRepository struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*ordermodel.Order, error)
	GetByPaymentIDFunc  func(ctx context.Context, paymentID string) (*ordermodel.Order, error)
	AttachPaymentFunc   func(ctx context.Context, orderID uuid.UUID, paymentID, qrCode, qrCodeImage string) error
	UpdateMonotonicFunc func(ctx context.Context, orderID uuid.UUID, status ordermodel.PaymentStatus) (bool, error)
	ListPendingFunc     func(ctx context.Context, cutoff time.Time, limit int) ([]ordermodel.Order, error)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *ordermodel.Order) error {
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*ordermodel.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ordermodel.ErrOrderNotFound
}

func (m *MockOrderRepository) GetByPaymentID(ctx context.Context, paymentID string) (*ordermodel.Order, error) {
	if m.GetByPaymentIDFunc != nil {
		return m.GetByPaymentIDFunc(ctx, paymentID)
	}
	return nil, ordermodel.ErrOrderNotFound
}

func (m *MockOrderRepository) FindDuplicate(ctx context.Context, q orderrepo.DuplicateQuery) (*ordermodel.Order, error) {
	return nil, ordermodel.ErrOrderNotFound
}

func (m *MockOrderRepository) AttachPayment(ctx context.Context, orderID uuid.UUID, paymentID, qrCode, qrCodeImage string) error {
	if m.AttachPaymentFunc != nil {
		return m.AttachPaymentFunc(ctx, orderID, paymentID, qrCode, qrCodeImage)
	}
	return nil
}

func (m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status ordermodel.PaymentStatus) error {
	return nil
}

func (m *MockOrderRepository) UpdatePaymentStatusMonotonic(ctx context.Context, orderID uuid.UUID, status ordermodel.PaymentStatus) (bool, error) {
	if m.UpdateMonotonicFunc != nil {
		return m.UpdateMonotonicFunc(ctx, orderID, status)
	}
	return true, nil
}

func (m *MockOrderRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]ordermodel.Order, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, cutoff, limit)
	}
	return nil, nil
}

func (m *MockOrderRepository) List(ctx context.Context, status string, page, limit int) ([]ordermodel.Order, int, error) {
	return nil, 0, nil
}

// MockPaymentRepository implements repository.PaymentRepository for testing.
type MockPaymentRepository struct {
	mu sync.Mutex

	CreateFunc         func(ctx context.Context, record *model.PaymentRecord) error
	GetByPaymentIDFunc func(ctx context.Context, paymentID string) (*model.PaymentRecord, error)
	GetByOrderIDFunc   func(ctx context.Context, orderID uuid.UUID) (*model.PaymentRecord, error)
	UpdateStatusFunc   func(ctx context.Context, paymentID string, status string) error

	CreatedRecords []*model.PaymentRecord
}

func (m *MockPaymentRepository) Create(ctx context.Context, record *model.PaymentRecord) error {
	m.mu.Lock()
	m.CreatedRecords = append(m.CreatedRecords, record)
	m.mu.Unlock()

	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return nil
}

func (m *MockPaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*model.PaymentRecord, error) {
	if m.GetByPaymentIDFunc != nil {
		return m.GetByPaymentIDFunc(ctx, paymentID)
	}
	return nil, model.ErrPaymentNotFound
}

func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.PaymentRecord, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, model.ErrPaymentNotFound
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, paymentID string, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, paymentID, status)
	}
	return nil
}

// MockWebhookRepository implements repository.WebhookRepository for testing.
type MockWebhookRepository struct {
	mu sync.Mutex

	CreateFunc func(ctx context.Context, log *model.WebhookLog) error

	Entries []*model.WebhookLog
}

func (m *MockWebhookRepository) Create(ctx context.Context, log *model.WebhookLog) error {
	m.mu.Lock()
	m.Entries = append(m.Entries, log)
	m.mu.Unlock()

	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	return nil
}

func (m *MockWebhookRepository) Update(ctx context.Context, log *model.WebhookLog) error {
	return nil
}
