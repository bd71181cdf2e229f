package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPSource reads payment status from the check-status endpoint.
type HTTPSource struct {
	endpoint   string
	httpClient *http.Client
}

func NewHTTPSource(endpoint string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{endpoint: endpoint, httpClient: client}
}

type checkStatusRequest struct {
	PaymentID string `json:"paymentId"`
}

type checkStatusEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		PaymentStatus string `json:"paymentStatus"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *HTTPSource) Status(ctx context.Context, paymentID string) (string, error) {
	body, err := json.Marshal(checkStatusRequest{PaymentID: paymentID})
	if err != nil {
		return "", fmt.Errorf("failed to encode status request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read status response: %w", err)
	}

	var envelope checkStatusEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("failed to decode status response: %w", err)
	}

	if !envelope.Success {
		if envelope.Error != nil {
			return "", fmt.Errorf("status check rejected: %s %s", envelope.Error.Code, envelope.Error.Message)
		}
		return "", fmt.Errorf("status check rejected: HTTP %d", resp.StatusCode)
	}

	return envelope.Data.PaymentStatus, nil
}
