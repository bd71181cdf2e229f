package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// =====================================================
// GATEWAY INTERFACE
// =====================================================

// Gateway is the payment gateway accessor: customer/charge creation, PIX
// QR-code retrieval and charge status lookup.
type Gateway interface {
	// CreateCustomer registers the buyer with the gateway.
	CreateCustomer(ctx context.Context, req CustomerRequest) (*Customer, error)

	// CreateCharge creates a PIX charge for an existing gateway customer.
	CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error)

	// GetPixQRCode fetches the QR payload and image for a charge.
	GetPixQRCode(ctx context.Context, chargeID string) (*PixQRCode, error)

	// GetChargeStatus fetches the current upstream status string of a charge.
	GetChargeStatus(ctx context.Context, chargeID string) (string, error)
}

// =====================================================
// COMMON REQUEST/RESPONSE TYPES
// =====================================================

// CustomerRequest registers a buyer with the gateway.
type CustomerRequest struct {
	Name  string
	Email string
	CPF   string // tax id (cpfCnpj upstream)
	Phone string
}

// Customer is the gateway-side customer reference.
type Customer struct {
	ID string
}

// ChargeRequest creates a PIX charge.
type ChargeRequest struct {
	CustomerID  string
	Value       decimal.Decimal
	DueDate     string // yyyy-MM-dd
	Description string
}

// Charge is the gateway-side charge.
type Charge struct {
	ID     string
	Status string
	Value  decimal.Decimal
}

// PixQRCode carries the scannable image and the copy-paste payload.
type PixQRCode struct {
	Payload      string
	EncodedImage string
}
