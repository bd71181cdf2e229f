package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents valid payment methods
type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "PIX"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
)

func (pm PaymentMethod) IsValid() bool {
	switch pm {
	case PaymentMethodPix, PaymentMethodCreditCard:
		return true
	}
	return false
}

func (pm PaymentMethod) String() string {
	return string(pm)
}

// =====================================================
// ORDER ENTITY
// =====================================================
type Order struct {
	ID uuid.UUID `json:"id" db:"id"`

	// Customer
	CustomerName  string  `json:"customer_name" db:"customer_name"`
	CustomerEmail string  `json:"customer_email" db:"customer_email"`
	CustomerCPF   string  `json:"customer_cpf" db:"customer_cpf"`
	CustomerPhone *string `json:"customer_phone,omitempty" db:"customer_phone"`

	// Product
	ProductID   int64           `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Price       decimal.Decimal `json:"price" db:"price"`

	// Payment
	PaymentMethod PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentID     *string       `json:"payment_id,omitempty" db:"payment_id"`

	// PIX charge details
	QRCode      *string `json:"qr_code,omitempty" db:"qr_code"`
	QRCodeImage *string `json:"qr_code_image,omitempty" db:"qr_code_image"`

	// Card details (stored as provided, masked only in logs)
	CreditCardNumber *string `json:"credit_card_number,omitempty" db:"credit_card_number"`
	CreditCardExpiry *string `json:"credit_card_expiry,omitempty" db:"credit_card_expiry"`
	CreditCardCVV    *string `json:"credit_card_cvv,omitempty" db:"credit_card_cvv"`
	CreditCardBrand  *string `json:"credit_card_brand,omitempty" db:"credit_card_brand"`

	// Client metadata
	DeviceType       string `json:"device_type" db:"device_type"`
	IsDigitalProduct bool   `json:"is_digital_product" db:"is_digital_product"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasPaymentReference reports whether a gateway charge is attached.
func (o *Order) HasPaymentReference() bool {
	return o.PaymentID != nil && *o.PaymentID != ""
}

// IsTerminal reports whether polling can stop for this order.
func (o *Order) IsTerminal() bool {
	return ResolveStatus(string(o.PaymentStatus)) != ResolvedPending
}
