package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect ResolvedStatus
	}{
		{"confirmed english", "CONFIRMED", ResolvedConfirmed},
		{"approved", "APPROVED", ResolvedConfirmed},
		{"paid", "PAID", ResolvedConfirmed},
		{"received", "RECEIVED", ResolvedConfirmed},
		{"portuguese approved lowercase", "aprovado", ResolvedConfirmed},
		{"portuguese paid", "PAGO", ResolvedConfirmed},
		{"completed", "COMPLETED", ResolvedConfirmed},
		{"success", "SUCCESS", ResolvedConfirmed},
		{"trailing whitespace", "APROVADO ", ResolvedConfirmed},
		{"mixed case with spaces", "  Confirmed  ", ResolvedConfirmed},

		{"rejected", "REJECTED", ResolvedRejected},
		{"denied", "DENIED", ResolvedRejected},
		{"failed", "FAILED", ResolvedRejected},
		{"portuguese refused", "recusado", ResolvedRejected},
		{"portuguese denied", "NEGADO", ResolvedRejected},
		{"portuguese cancelled", "CANCELADO", ResolvedRejected},
		{"declined", "DECLINED", ResolvedRejected},
		{"overdue", "OVERDUE", ResolvedRejected},
		{"chargeback", "CHARGEBACK", ResolvedRejected},

		{"empty", "", ResolvedPending},
		{"whitespace only", "   ", ResolvedPending},
		{"pending", "PENDING", ResolvedPending},
		{"unknown vocabulary", "BANANA", ResolvedPending},
		{"analysis is not terminal", "ANALYSIS", ResolvedPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ResolveStatus(tt.input))
		})
	}
}

func TestResolveStatusPredicates(t *testing.T) {
	assert.True(t, IsConfirmedStatus("pago"))
	assert.True(t, IsRejectedStatus("NEGADO"))
	assert.True(t, IsPendingStatus("whatever"))
	assert.False(t, IsConfirmedStatus("REJECTED"))
}

func TestNormalizeStoredStatus(t *testing.T) {
	tests := []struct {
		input  string
		expect PaymentStatus
	}{
		{"PAGO", PaymentStatusPaid},
		{"paid", PaymentStatusPaid},
		{"RECEIVED", PaymentStatusPaid},
		{"CONFIRMED", PaymentStatusPaid},
		{"AGUARDANDO", PaymentStatusPending},
		{"PENDENTE", PaymentStatusPending},
		{"ANÁLISE", PaymentStatusAnalysis},
		{"ANALYSIS", PaymentStatusAnalysis},
		{"APROVADO", PaymentStatusApproved},
		{"RECUSADO", PaymentStatusDenied},
		{"DECLINED", PaymentStatusDenied},
		{"CANCELADO", PaymentStatusCancelled},
		{"", PaymentStatusPending},
		{"GARBAGE", PaymentStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expect, NormalizeStoredStatus(tt.input))
		})
	}
}

func TestStatusRank(t *testing.T) {
	// PENDING < ANALYSIS < all terminals, terminals tie
	assert.Less(t, StatusRank(PaymentStatusPending), StatusRank(PaymentStatusAnalysis))
	assert.Less(t, StatusRank(PaymentStatusAnalysis), StatusRank(PaymentStatusPaid))
	assert.Equal(t, StatusRank(PaymentStatusPaid), StatusRank(PaymentStatusDenied))
	assert.Equal(t, StatusRank(PaymentStatusDenied), StatusRank(PaymentStatusCancelled))
}

func TestOrderIsTerminal(t *testing.T) {
	order := &Order{PaymentStatus: PaymentStatusPending}
	assert.False(t, order.IsTerminal())

	order.PaymentStatus = PaymentStatusAnalysis
	assert.False(t, order.IsTerminal())

	order.PaymentStatus = PaymentStatusPaid
	assert.True(t, order.IsTerminal())

	order.PaymentStatus = PaymentStatusDenied
	assert.True(t, order.IsTerminal())
}
