package repository

import (
	"context"

	"github.com/google/uuid"

	"checkout-backend/internal/domains/payment/model"
)

// =====================================================
// PAYMENT REPOSITORY INTERFACES
// =====================================================

// PaymentRepository persists gateway charge records.
type PaymentRepository interface {
	Create(ctx context.Context, record *model.PaymentRecord) error
	GetByPaymentID(ctx context.Context, paymentID string) (*model.PaymentRecord, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.PaymentRecord, error)
	UpdateStatus(ctx context.Context, paymentID string, status string) error
}

// WebhookRepository stores the audit trail of gateway deliveries.
type WebhookRepository interface {
	Create(ctx context.Context, log *model.WebhookLog) error
	Update(ctx context.Context, log *model.WebhookLog) error
}
