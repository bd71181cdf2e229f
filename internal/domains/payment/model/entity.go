package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// PAYMENT RECORD ENTITY
// =====================================================
// PaymentRecord links a gateway charge to an order. It is the secondary
// lookup table keyed by the gateway payment id.
type PaymentRecord struct {
	ID      uuid.UUID `json:"id" db:"id"`
	OrderID uuid.UUID `json:"order_id" db:"order_id"`

	// Gateway information
	Gateway   string `json:"gateway" db:"gateway"`
	PaymentID string `json:"payment_id" db:"payment_id"`

	// Charge
	Amount decimal.Decimal `json:"amount" db:"amount"`
	Status string          `json:"status" db:"status"`

	// PIX
	QRCode      *string `json:"qr_code,omitempty" db:"qr_code"`
	QRCodeImage *string `json:"qr_code_image,omitempty" db:"qr_code_image"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// =====================================================
// WEBHOOK LOG ENTITY
// =====================================================
// WebhookLog is the audit trail of every delivery the webhook receiver saw,
// whether or not it mutated anything.
type WebhookLog struct {
	ID      uuid.UUID  `json:"id" db:"id"`
	OrderID *uuid.UUID `json:"order_id,omitempty" db:"order_id"`

	Gateway      string  `json:"gateway" db:"gateway"`
	WebhookEvent string  `json:"webhook_event" db:"webhook_event"`
	PaymentID    *string `json:"payment_id,omitempty" db:"payment_id"`

	Body map[string]interface{} `json:"body" db:"body"`

	IsProcessed     bool    `json:"is_processed" db:"is_processed"`
	ProcessingError *string `json:"processing_error,omitempty" db:"processing_error"`

	ReceivedAt time.Time `json:"received_at" db:"received_at"`
}

// MarkAsProcessed marks the delivery as applied.
func (w *WebhookLog) MarkAsProcessed() {
	w.IsProcessed = true
}

// MarkProcessingError records why the delivery could not be applied.
func (w *WebhookLog) MarkProcessingError(err error) {
	errMsg := err.Error()
	w.ProcessingError = &errMsg
}
