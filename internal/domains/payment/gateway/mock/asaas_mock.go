package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"checkout-backend/internal/domains/payment/gateway"
)

// =====================================================
// MOCK ASAAS GATEWAY FOR TESTING
// =====================================================

type MockAsaasGateway struct {
	mu sync.Mutex

	shouldFailCustomer bool
	shouldFailCharge   bool
	shouldFailQRCode   bool

	// chargeStatus lets tests script what GetChargeStatus reports per charge.
	chargeStatus map[string]string

	seq int
}

func NewMockAsaasGateway() *MockAsaasGateway {
	return &MockAsaasGateway{
		chargeStatus: make(map[string]string),
	}
}

func (m *MockAsaasGateway) CreateCustomer(
	ctx context.Context,
	req gateway.CustomerRequest,
) (*gateway.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFailCustomer {
		return nil, fmt.Errorf("mock customer creation failed")
	}

	m.seq++
	return &gateway.Customer{
		ID: fmt.Sprintf("cus_mock_%d", m.seq),
	}, nil
}

func (m *MockAsaasGateway) CreateCharge(
	ctx context.Context,
	req gateway.ChargeRequest,
) (*gateway.Charge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFailCharge {
		return nil, fmt.Errorf("mock charge creation failed")
	}

	m.seq++
	chargeID := fmt.Sprintf("pay_mock_%d_%d", time.Now().Unix(), m.seq)
	m.chargeStatus[chargeID] = "PENDING"

	return &gateway.Charge{
		ID:     chargeID,
		Status: "PENDING",
		Value:  req.Value,
	}, nil
}

func (m *MockAsaasGateway) GetPixQRCode(ctx context.Context, chargeID string) (*gateway.PixQRCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFailQRCode {
		return nil, fmt.Errorf("mock QR code retrieval failed")
	}

	return &gateway.PixQRCode{
		Payload:      fmt.Sprintf("00020126mock-pix-payload-%s", chargeID),
		EncodedImage: "iVBORw0KGgoMockImage",
	}, nil
}

func (m *MockAsaasGateway) GetChargeStatus(ctx context.Context, chargeID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status, ok := m.chargeStatus[chargeID]
	if !ok {
		return "", fmt.Errorf("mock charge not found: %s", chargeID)
	}
	return status, nil
}

// SetChargeStatus scripts the status returned for a charge.
func (m *MockAsaasGateway) SetChargeStatus(chargeID, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chargeStatus[chargeID] = status
}

// SetFailCustomer sets whether customer creation should fail
func (m *MockAsaasGateway) SetFailCustomer(shouldFail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailCustomer = shouldFail
}

// SetFailCharge sets whether charge creation should fail
func (m *MockAsaasGateway) SetFailCharge(shouldFail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailCharge = shouldFail
}

// SetFailQRCode sets whether QR retrieval should fail
func (m *MockAsaasGateway) SetFailQRCode(shouldFail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailQRCode = shouldFail
}
