package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// CREATE ORDER REQUEST
// =====================================================
type CreateOrderRequest struct {
	Customer      CustomerInput   `json:"customer"`
	ProductID     int64           `json:"product_id" binding:"required"`
	ProductName   string          `json:"product_name" binding:"required"`
	ProductPrice  decimal.Decimal `json:"product_price"`
	PaymentMethod PaymentMethod   `json:"payment_method" binding:"required"`

	// Optional pre-existing gateway reference (idempotent create)
	PaymentID     *string `json:"payment_id,omitempty"`
	PaymentStatus string  `json:"payment_status,omitempty"`

	PixDetails  *PixDetailsInput  `json:"pix_details,omitempty"`
	CardDetails *CardDetailsInput `json:"card_details,omitempty"`

	DeviceType       string `json:"device_type,omitempty"`
	IsDigitalProduct bool   `json:"is_digital_product,omitempty"`
}

type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
	Phone string `json:"phone,omitempty"`
}

type PixDetailsInput struct {
	QRCode      string `json:"qr_code,omitempty"`
	QRCodeImage string `json:"qr_code_image,omitempty"`
}

type CardDetailsInput struct {
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVV         string `json:"cvv"`
	Brand       string `json:"brand,omitempty"`
}

// Validate validates CreateOrderRequest. Customer name, email and CPF are
// mandatory; missing any is a validation error, nothing is persisted.
func (req CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Customer, validation.Required),
		validation.Field(&req.ProductID, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.ProductName, validation.Required),
		validation.Field(&req.PaymentMethod, validation.Required, validation.In(
			PaymentMethodPix,
			PaymentMethodCreditCard,
		)),
	)
}

func (c CustomerInput) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.CPF, validation.Required),
	)
}

// =====================================================
// ORDER RESPONSES
// =====================================================
type OrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Price         decimal.Decimal `json:"price"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	PaymentID     *string         `json:"payment_id,omitempty"`
	QRCode        *string         `json:"qr_code,omitempty"`
	QRCodeImage   *string         `json:"qr_code_image,omitempty"`
	DeviceType    string          `json:"device_type"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToResponse converts an Order entity to its API shape.
func (o *Order) ToResponse() OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		ProductID:     o.ProductID,
		ProductName:   o.ProductName,
		Price:         o.Price,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		PaymentID:     o.PaymentID,
		QRCode:        o.QRCode,
		QRCodeImage:   o.QRCodeImage,
		DeviceType:    o.DeviceType,
		CreatedAt:     o.CreatedAt,
	}
}

// =====================================================
// LIST ORDERS REQUEST (Admin)
// =====================================================
type ListOrdersRequest struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// Validate normalizes pagination and checks the status filter.
func (req *ListOrdersRequest) Validate() error {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	if req.Status != "" {
		statuses := make([]interface{}, 0, len(ValidPaymentStatuses))
		for _, s := range ValidPaymentStatuses {
			statuses = append(statuses, string(s))
		}
		return validation.Validate(req.Status, validation.In(statuses...))
	}

	return nil
}

type ListOrdersResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Pagination PaginationMeta  `json:"pagination"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
