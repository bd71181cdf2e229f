package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"checkout-backend/internal/domains/payment/gateway"
	"checkout-backend/internal/domains/payment/model"
)

// =====================================================
// ASAAS CLIENT IMPLEMENTATION
// =====================================================

type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates new Asaas client
func NewClient(config *Config) (gateway.Gateway, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// CreateCustomer registers the buyer with Asaas.
func (c *Client) CreateCustomer(ctx context.Context, req gateway.CustomerRequest) (*gateway.Customer, error) {
	body := customerRequest{
		Name:    req.Name,
		Email:   req.Email,
		CpfCnpj: req.CPF,
		Phone:   req.Phone,
	}

	var resp customerResponse
	if err := c.post(ctx, c.config.customersURL(), body, &resp); err != nil {
		return nil, err
	}

	if resp.ID == "" {
		return nil, model.NewGatewayError("Asaas customer response missing id", nil, nil)
	}

	return &gateway.Customer{ID: resp.ID}, nil
}

// CreateCharge creates a PIX charge for an existing Asaas customer.
func (c *Client) CreateCharge(ctx context.Context, req gateway.ChargeRequest) (*gateway.Charge, error) {
	body := chargeRequest{
		Customer:    req.CustomerID,
		BillingType: "PIX",
		Value:       req.Value,
		DueDate:     req.DueDate,
		Description: req.Description,
	}

	var resp chargeResponse
	if err := c.post(ctx, c.config.paymentsURL(), body, &resp); err != nil {
		return nil, err
	}

	if resp.ID == "" {
		return nil, model.NewGatewayError("Asaas charge response missing id", nil, nil)
	}

	return &gateway.Charge{
		ID:     resp.ID,
		Status: resp.Status,
		Value:  resp.Value,
	}, nil
}

// GetPixQRCode fetches the QR payload and image for a charge.
func (c *Client) GetPixQRCode(ctx context.Context, chargeID string) (*gateway.PixQRCode, error) {
	var resp pixQRCodeResponse
	if err := c.get(ctx, c.config.pixQRCodeURL(chargeID), &resp); err != nil {
		return nil, err
	}

	return &gateway.PixQRCode{
		Payload:      resp.Payload,
		EncodedImage: resp.EncodedImage,
	}, nil
}

// GetChargeStatus fetches the current upstream status of a charge.
func (c *Client) GetChargeStatus(ctx context.Context, chargeID string) (string, error) {
	var resp chargeResponse
	if err := c.get(ctx, c.config.paymentURL(chargeID), &resp); err != nil {
		return "", err
	}

	return resp.Status, nil
}

// =====================================================
// HTTP HELPERS
// =====================================================

func (c *Client) post(ctx context.Context, url string, body, out interface{}) error {
	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyJSON))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("access_token", c.config.APIKey)

	return c.do(httpReq, out)
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("access_token", c.config.APIKey)

	return c.do(httpReq, out)
}

// do executes the request and decodes the response. Non-2xx responses become
// a GatewayError carrying the raw upstream body for diagnostics.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.NewGatewayError("failed to call Asaas API", nil, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.NewGatewayError("failed to read Asaas response", nil, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var details interface{}
		var errResp errorResponse
		if json.Unmarshal(bodyBytes, &errResp) == nil && errResp.description() != "" {
			details = errResp
		} else {
			details = string(bodyBytes)
		}

		message := errResp.description()
		if message == "" {
			message = fmt.Sprintf("Asaas API returned status %d", resp.StatusCode)
		}

		return model.NewGatewayError(message, details, nil)
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return model.NewGatewayError("failed to unmarshal Asaas response", string(bodyBytes), err)
		}
	}

	return nil
}
