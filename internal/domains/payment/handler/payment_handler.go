package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout-backend/internal/domains/payment/model"
	"checkout-backend/internal/domains/payment/service"
	"checkout-backend/internal/shared/response"
	"checkout-backend/pkg/logger"
)

// =====================================================
// PAYMENT HANDLER
// =====================================================
type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePayment handles POST /api/v1/payments/create
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	// Step 1: Bind request
	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 2: Create the charge
	resp, err := h.paymentService.CreateCharge(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// CheckStatus handles POST /api/v1/payments/check-status
func (h *PaymentHandler) CheckStatus(c *gin.Context) {
	var req model.CheckStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.paymentService.CheckStatus(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// HandleWebhook handles POST /api/v1/webhooks/asaas.
//
// Response contract with the gateway: 400 for a body that cannot be acted
// on, 404 when no order references the payment, 500 when the store rejects
// the update (so the gateway redelivers), and 200 for everything else,
// including events this system ignores.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	// Step 1: Read the raw body once; it feeds both the parse and the audit log
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		response.BadRequest(c, "Empty webhook body")
		return
	}

	var rawBody map[string]interface{}
	if err := json.Unmarshal(body, &rawBody); err != nil {
		response.BadRequest(c, "Malformed webhook body")
		return
	}

	var req model.WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.BadRequest(c, "Malformed webhook body")
		return
	}

	// Step 2: Deliveries without an event or payment reference carry nothing
	// to act on
	if !req.HasPayload() {
		response.BadRequest(c, "Webhook body missing event or payment")
		return
	}

	// Step 3: Apply
	if err := h.paymentService.ProcessWebhook(c.Request.Context(), req, rawBody); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"received": true})
}

// respondError maps service errors onto the HTTP error envelope.
func (h *PaymentHandler) respondError(c *gin.Context, err error) {
	var payErr *model.PaymentError
	if !errors.As(err, &payErr) {
		logger.Error("Unhandled payment error", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch payErr.Code {
	case model.ErrCodeInvalidRequest:
		status = http.StatusBadRequest
	case model.ErrCodePaymentNotFound, model.ErrCodeOrderNotFound:
		status = http.StatusNotFound
	case model.ErrCodePaymentInProgress:
		status = http.StatusConflict
	case model.ErrCodeGatewayFailure:
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Payment operation failed", payErr)
	}

	if payErr.Details != nil {
		response.ErrorWithDetails(c, status, payErr.Code, payErr.Message, payErr.Details)
		return
	}
	response.ErrorResponse(c, status, payErr.Code, payErr.Message)
}
