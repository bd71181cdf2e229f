package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"checkout-backend/internal/domains/order/model"
)

// DuplicateQuery describes the 5-minute duplicate window lookup: candidate
// rows match on email/product/method within the window, and collapse only on
// an exact price/name/CPF match.
type DuplicateQuery struct {
	CustomerEmail string
	CustomerName  string
	CustomerCPF   string
	ProductID     int64
	ProductName   string
	PaymentMethod model.PaymentMethod
	Price         decimal.Decimal
	Since         time.Time
}

// OrderRepository is the order store accessor.
type OrderRepository interface {
	// Create inserts a new order. When the order carries a payment_id that
	// already exists, the existing row is returned instead (insert-or-fetch
	// on the unique index).
	Create(ctx context.Context, order *model.Order) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetByPaymentID resolves an order by its gateway payment reference.
	GetByPaymentID(ctx context.Context, paymentID string) (*model.Order, error)

	// FindDuplicate returns the most recent exact duplicate inside the
	// window, or ErrOrderNotFound.
	FindDuplicate(ctx context.Context, q DuplicateQuery) (*model.Order, error)

	// AttachPayment writes the gateway reference and QR fields after charge
	// creation.
	AttachPayment(ctx context.Context, orderID uuid.UUID, paymentID, qrCode, qrCodeImage string) error

	// UpdatePaymentStatus applies a status unconditionally (last-write-wins).
	UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus) error

	// UpdatePaymentStatusMonotonic applies a status only when its rank is not
	// below the stored one. Returns false when the row exists but the update
	// was rejected as stale.
	UpdatePaymentStatusMonotonic(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus) (bool, error)

	// ListPendingOlderThan returns orders still PENDING that were created
	// before the cutoff and carry a gateway reference; used by the
	// reconciliation sweep.
	ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)

	List(ctx context.Context, status string, page, limit int) ([]model.Order, int, error)
}
