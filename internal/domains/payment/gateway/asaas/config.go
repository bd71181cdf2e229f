package asaas

import (
	"fmt"
	"time"
)

// Config holds the Asaas API credentials and endpoints.
type Config struct {
	APIKey  string // access_token header value
	APIURL  string // e.g. https://www.asaas.com/api/v3
	Timeout time.Duration
}

// Validate checks the minimum viable configuration.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("asaas: API key is required")
	}
	if c.APIURL == "" {
		return fmt.Errorf("asaas: API URL is required")
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}

func (c *Config) customersURL() string {
	return c.APIURL + "/customers"
}

func (c *Config) paymentsURL() string {
	return c.APIURL + "/payments"
}

func (c *Config) paymentURL(id string) string {
	return c.APIURL + "/payments/" + id
}

func (c *Config) pixQRCodeURL(id string) string {
	return c.APIURL + "/payments/" + id + "/pixQrCode"
}
