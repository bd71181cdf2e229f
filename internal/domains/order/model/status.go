package model

import "strings"

// PaymentStatus is the stored payment status vocabulary.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusApproved  PaymentStatus = "APPROVED"
	PaymentStatusDenied    PaymentStatus = "DENIED"
	PaymentStatusAnalysis  PaymentStatus = "ANALYSIS"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
)

var ValidPaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusApproved,
	PaymentStatusDenied,
	PaymentStatusAnalysis,
	PaymentStatusCancelled,
	PaymentStatusConfirmed,
}

func (ps PaymentStatus) IsValid() bool {
	for _, s := range ValidPaymentStatuses {
		if ps == s {
			return true
		}
	}
	return false
}

func (ps PaymentStatus) String() string {
	return string(ps)
}

// ResolvedStatus is the coarse three-state classification used for polling
// and UI transitions.
type ResolvedStatus string

const (
	ResolvedPending   ResolvedStatus = "PENDING"
	ResolvedConfirmed ResolvedStatus = "CONFIRMED"
	ResolvedRejected  ResolvedStatus = "REJECTED"
)

// confirmSynonyms and rejectSynonyms are the single authoritative mapping
// from gateway vocabulary (including Portuguese variants) to the internal
// three-state model. Consumed by the webhook receiver, the status poller and
// the creation workflow.
var confirmSynonyms = map[string]struct{}{
	"CONFIRMED": {},
	"APPROVED":  {},
	"PAID":      {},
	"APROVADO":  {},
	"PAGO":      {},
	"COMPLETED": {},
	"SUCCESS":   {},
	"RECEIVED":  {},
}

var rejectSynonyms = map[string]struct{}{
	"REJECTED":   {},
	"DENIED":     {},
	"FAILED":     {},
	"RECUSADO":   {},
	"NEGADO":     {},
	"CANCELADO":  {},
	"CANCELLED":  {},
	"DECLINED":   {},
	"OVERDUE":    {},
	"REFUNDED":   {},
	"CHARGEBACK": {},
}

// ResolveStatus maps an arbitrary upstream status string to exactly one of
// PENDING, CONFIRMED or REJECTED. Input is trimmed and case-folded; empty or
// unrecognized input resolves to PENDING. Total: never errors.
func ResolveStatus(status string) ResolvedStatus {
	normalized := strings.ToUpper(strings.TrimSpace(status))
	if normalized == "" {
		return ResolvedPending
	}

	if _, ok := confirmSynonyms[normalized]; ok {
		return ResolvedConfirmed
	}

	if _, ok := rejectSynonyms[normalized]; ok {
		return ResolvedRejected
	}

	return ResolvedPending
}

// IsConfirmedStatus reports whether the raw status resolves to CONFIRMED.
func IsConfirmedStatus(status string) bool {
	return ResolveStatus(status) == ResolvedConfirmed
}

// IsRejectedStatus reports whether the raw status resolves to REJECTED.
func IsRejectedStatus(status string) bool {
	return ResolveStatus(status) == ResolvedRejected
}

// IsPendingStatus reports whether the raw status resolves to PENDING.
func IsPendingStatus(status string) bool {
	return ResolveStatus(status) == ResolvedPending
}

// storedStatusMap is the broader synonym table used when persisting an order:
// gateway-specific and localized spellings collapse into the stored vocabulary.
var storedStatusMap = map[string]PaymentStatus{
	"PAGO":       PaymentStatusPaid,
	"PAID":       PaymentStatusPaid,
	"RECEIVED":   PaymentStatusPaid,
	"CONFIRMED":  PaymentStatusPaid,
	"PENDING":    PaymentStatusPending,
	"AGUARDANDO": PaymentStatusPending,
	"PENDENTE":   PaymentStatusPending,
	"ANÁLISE":    PaymentStatusAnalysis,
	"ANALYSIS":   PaymentStatusAnalysis,
	"APROVADO":   PaymentStatusApproved,
	"APPROVED":   PaymentStatusApproved,
	"RECUSADO":   PaymentStatusDenied,
	"REJECTED":   PaymentStatusDenied,
	"NEGADO":     PaymentStatusDenied,
	"DENIED":     PaymentStatusDenied,
	"DECLINED":   PaymentStatusDenied,
	"CANCELADO":  PaymentStatusCancelled,
	"CANCELLED":  PaymentStatusCancelled,
}

// NormalizeStoredStatus maps an arbitrary incoming status string into one of
// the allowed persisted states, defaulting to PENDING for anything
// unrecognized.
func NormalizeStoredStatus(status string) PaymentStatus {
	normalized := strings.ToUpper(strings.TrimSpace(status))
	if mapped, ok := storedStatusMap[normalized]; ok {
		return mapped
	}
	return PaymentStatusPending
}

// StatusRank orders stored statuses for the webhook's out-of-order guard:
// a late, lower-ranked event (e.g. PAYMENT_CREATED after PAYMENT_CONFIRMED)
// must not overwrite a terminal status. Terminal statuses share a rank so
// legitimate terminal transitions (paid → chargeback) remain last-write-wins.
func StatusRank(status PaymentStatus) int {
	switch status {
	case PaymentStatusPending:
		return 0
	case PaymentStatusAnalysis:
		return 1
	case PaymentStatusPaid, PaymentStatusApproved, PaymentStatusConfirmed,
		PaymentStatusDenied, PaymentStatusCancelled:
		return 2
	}
	return 0
}
