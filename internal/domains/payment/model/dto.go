package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// WEBHOOK REQUEST
// =====================================================
// WebhookRequest is the structured event payload the gateway POSTs on every
// charge status change.
type WebhookRequest struct {
	Event   string          `json:"event"`
	Payment *WebhookPayment `json:"payment"`
}

type WebhookPayment struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// HasPayload reports whether the event carries enough to act on. Deliveries
// without an event type or payment sub-object are acknowledged and ignored,
// since the gateway sends many event shapes this system does not consume.
func (r WebhookRequest) HasPayload() bool {
	return r.Event != "" && r.Payment != nil && r.Payment.ID != ""
}

// =====================================================
// CREATE PAYMENT REQUEST
// =====================================================
type CreatePaymentRequest struct {
	OrderID       uuid.UUID       `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerCPF   string          `json:"customer_cpf"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	ProductName   string          `json:"product_name"`
	Price         decimal.Decimal `json:"price"`
	PaymentMethod string          `json:"payment_method"`
	Description   string          `json:"description,omitempty"`
}

// Validate validates CreatePaymentRequest.
func (req CreatePaymentRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.OrderID, validation.By(func(interface{}) error {
			if req.OrderID == uuid.Nil {
				return validation.NewError("validation_required", "cannot be blank")
			}
			return nil
		})),
		validation.Field(&req.CustomerName, validation.Required),
		validation.Field(&req.CustomerEmail, validation.Required, is.Email),
		validation.Field(&req.CustomerCPF, validation.Required),
	)
}

// =====================================================
// CREATE PAYMENT RESPONSE
// =====================================================
type CreatePaymentResponse struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
	QRCode    string `json:"qrCode"`
	QRImage   string `json:"qrImage"`
}

// =====================================================
// STATUS CHECK
// =====================================================
// CheckStatusRequest accepts either the internal payment record id or the
// gateway payment id in the same field, matching the storefront contract.
type CheckStatusRequest struct {
	PaymentID string `json:"paymentId"`
}

func (req CheckStatusRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.PaymentID, validation.Required),
	)
}

type CheckStatusResponse struct {
	PaymentStatus    string `json:"paymentStatus"`
	PaymentID        string `json:"paymentId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
}
