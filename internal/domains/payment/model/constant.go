package model

import ordermodel "checkout-backend/internal/domains/order/model"

// =====================================================
// PAYMENT GATEWAYS
// =====================================================
const (
	GatewayAsaas = "asaas"
)

// =====================================================
// WEBHOOK EVENTS
// =====================================================
// Event names as emitted by the Asaas webhook.
const (
	EventPaymentCreated              = "PAYMENT_CREATED"
	EventPaymentUpdated              = "PAYMENT_UPDATED"
	EventPaymentConfirmed            = "PAYMENT_CONFIRMED"
	EventPaymentReceived             = "PAYMENT_RECEIVED"
	EventPaymentApprovedByRisk       = "PAYMENT_APPROVED_BY_RISK_ANALYSIS"
	EventPaymentReprovedByRisk       = "PAYMENT_REPROVED_BY_RISK_ANALYSIS"
	EventPaymentAwaitingRiskAnalysis = "PAYMENT_AWAITING_RISK_ANALYSIS"
	EventPaymentOverdue              = "PAYMENT_OVERDUE"
	EventPaymentRefused              = "PAYMENT_REFUSED"
	EventPaymentChargebackRequested  = "PAYMENT_CHARGEBACK_REQUESTED"
	EventPaymentDeleted              = "PAYMENT_DELETED"
	EventPaymentRefunded             = "PAYMENT_REFUNDED"
)

// EventStatusMap is the allow-list of event types that mutate an order,
// mapped to the stored status they apply. Events absent from this map are
// acknowledged with 200 and no mutation: the gateway must never receive an
// error for an event family this system does not act on, or it will retry
// the delivery indefinitely.
var EventStatusMap = map[string]ordermodel.PaymentStatus{
	// Confirm family
	EventPaymentConfirmed:      ordermodel.PaymentStatusPaid,
	EventPaymentReceived:       ordermodel.PaymentStatusPaid,
	EventPaymentApprovedByRisk: ordermodel.PaymentStatusPaid,

	// Reject family
	EventPaymentOverdue:             ordermodel.PaymentStatusDenied,
	EventPaymentRefused:             ordermodel.PaymentStatusDenied,
	EventPaymentReprovedByRisk:      ordermodel.PaymentStatusDenied,
	EventPaymentChargebackRequested: ordermodel.PaymentStatusDenied,
}

// InertEvents are recognized event types that intentionally do not mutate
// order state. Kept separate from unknown events only for log clarity.
var InertEvents = map[string]struct{}{
	EventPaymentCreated:              {},
	EventPaymentUpdated:              {},
	EventPaymentAwaitingRiskAnalysis: {},
	EventPaymentDeleted:              {},
	EventPaymentRefunded:             {},
}

// =====================================================
// INTERNAL ERROR CODES
// =====================================================
const (
	ErrCodePaymentNotFound   = "PAY001"
	ErrCodeOrderNotFound     = "PAY002"
	ErrCodeInvalidRequest    = "PAY003"
	ErrCodeGatewayFailure    = "PAY004"
	ErrCodeStoreFailure      = "PAY005"
	ErrCodePaymentInProgress = "PAY006"
	ErrCodeInternalError     = "PAY007"
)

// =====================================================
// PAYMENT CONFIGURATION
// =====================================================
const (
	// Default PIX charge description
	DefaultChargeDescription = "Pagamento via PIX"

	// Default currency for charge amounts
	DefaultCurrency = "BRL"
)
