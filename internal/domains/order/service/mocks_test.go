package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"checkout-backend/internal/domains/order/model"
	"checkout-backend/internal/domains/order/repository"
)

// MockOrderRepository implements repository.OrderRepository for testing.
type MockOrderRepository struct {
	mu sync.Mutex

	CreateFunc          func(ctx context.Context, order *model.Order) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetByPaymentIDFunc  func(ctx context.Context, paymentID string) (*model.Order, error)
	FindDuplicateFunc   func(ctx context.Context, q repository.DuplicateQuery) (*model.Order, error)
	AttachPaymentFunc   func(ctx context.Context, orderID uuid.UUID, paymentID, qrCode, qrCodeImage string) error
	UpdateStatusFunc    func(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus) error
	UpdateMonotonicFunc func(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus) (bool, error)
	ListPendingFunc     func(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
	ListFunc            func(ctx context.Context, status string, page, limit int) ([]model.Order, int, error)

	CreatedOrders []*model.Order
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	m.mu.Lock()
	m.CreatedOrders = append(m.CreatedOrders, order)
	m.mu.Unlock()

	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, model.ErrOrderNotFound
}

func (m *MockOrderRepository) GetByPaymentID(ctx context.Context, paymentID string) (*model.Order, error) {
	if m.GetByPaymentIDFunc != nil {
		return m.GetByPaymentIDFunc(ctx, paymentID)
	}
	return nil, model.ErrOrderNotFound
}

func (m *MockOrderRepository) FindDuplicate(ctx context.Context, q repository.DuplicateQuery) (*model.Order, error) {
	if m.FindDuplicateFunc != nil {
		return m.FindDuplicateFunc(ctx, q)
	}
	return nil, model.ErrOrderNotFound
}

func (m *MockOrderRepository) AttachPayment(ctx context.Context, orderID uuid.UUID, paymentID, qrCode, qrCodeImage string) error {
	if m.AttachPaymentFunc != nil {
		return m.AttachPaymentFunc(ctx, orderID, paymentID, qrCode, qrCodeImage)
	}
	return nil
}

func (m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, orderID, status)
	}
	return nil
}

func (m *MockOrderRepository) UpdatePaymentStatusMonotonic(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus) (bool, error) {
	if m.UpdateMonotonicFunc != nil {
		return m.UpdateMonotonicFunc(ctx, orderID, status)
	}
	return true, nil
}

func (m *MockOrderRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, cutoff, limit)
	}
	return nil, nil
}

func (m *MockOrderRepository) List(ctx context.Context, status string, page, limit int) ([]model.Order, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status, page, limit)
	}
	return nil, 0, nil
}
