package service

import (
	"context"

	"checkout-backend/internal/domains/payment/model"
)

// PaymentService drives the gateway-facing half of the checkout flow:
// charge creation, webhook ingestion and status checks.
type PaymentService interface {
	// CreateCharge provisions a gateway customer and PIX charge for an
	// existing order, persists the charge record and attaches the gateway
	// reference to the order.
	CreateCharge(ctx context.Context, req model.CreatePaymentRequest) (*model.CreatePaymentResponse, error)

	// ProcessWebhook applies a gateway delivery to the referenced order.
	// Recognized but inert events and unknown events return nil without
	// mutating anything.
	ProcessWebhook(ctx context.Context, req model.WebhookRequest, rawBody map[string]interface{}) error

	// CheckStatus reports the current status for a payment reference,
	// opportunistically refreshing a still-pending order from the gateway.
	CheckStatus(ctx context.Context, req model.CheckStatusRequest) (*model.CheckStatusResponse, error)

	// RefreshOrderStatus consults the gateway for one pending order and
	// applies the result. Used by the reconciliation sweep.
	RefreshOrderStatus(ctx context.Context, paymentID string) error
}
