package asaas

import "github.com/shopspring/decimal"

// Wire types for the Asaas v3 API.

type customerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	CpfCnpj string `json:"cpfCnpj"`
	Phone   string `json:"phone,omitempty"`
}

type customerResponse struct {
	ID string `json:"id"`
}

type chargeRequest struct {
	Customer    string          `json:"customer"`
	BillingType string          `json:"billingType"`
	Value       decimal.Decimal `json:"value"`
	DueDate     string          `json:"dueDate"`
	Description string          `json:"description,omitempty"`
}

type chargeResponse struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Value  decimal.Decimal `json:"value"`
}

type pixQRCodeResponse struct {
	Payload      string `json:"payload"`
	EncodedImage string `json:"encodedImage"`
}

// errorResponse is the Asaas error envelope.
type errorResponse struct {
	Errors []struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"errors"`
}

func (e errorResponse) description() string {
	if len(e.Errors) > 0 {
		return e.Errors[0].Description
	}
	return ""
}
