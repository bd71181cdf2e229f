package model

import (
	"errors"
	"fmt"
)

// =====================================================
// PREDEFINED ERRORS
// =====================================================

var (
	ErrPaymentNotFound   = errors.New("payment record not found")
	ErrOrderNotFound     = errors.New("order not found for payment")
	ErrPaymentInProgress = errors.New("payment already in progress")
)

// =====================================================
// CUSTOM PAYMENT ERROR
// =====================================================

// PaymentError carries an internal code plus the raw upstream diagnostic
// payload, surfaced in the HTTP error `details` field.
type PaymentError struct {
	Code    string
	Message string
	Details interface{}
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new payment error
func NewPaymentError(code, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =====================================================
// ERROR CONSTRUCTORS
// =====================================================

func NewPaymentNotFoundError(paymentID string) *PaymentError {
	return NewPaymentError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment record not found: %s", paymentID),
		ErrPaymentNotFound,
	)
}

func NewOrderNotFoundError(paymentID string) *PaymentError {
	return NewPaymentError(
		ErrCodeOrderNotFound,
		fmt.Sprintf("No order references payment %s", paymentID),
		ErrOrderNotFound,
	)
}

// NewGatewayError wraps an upstream failure, attaching the raw response body
// for diagnostics.
func NewGatewayError(message string, details interface{}, err error) *PaymentError {
	return &PaymentError{
		Code:    ErrCodeGatewayFailure,
		Message: message,
		Details: details,
		Err:     err,
	}
}

func NewPaymentInProgressError(paymentID string) *PaymentError {
	return NewPaymentError(
		ErrCodePaymentInProgress,
		fmt.Sprintf("Payment %s is already being processed", paymentID),
		ErrPaymentInProgress,
	)
}
