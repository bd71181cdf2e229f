package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	ordermodel "checkout-backend/internal/domains/order/model"
	orderrepo "checkout-backend/internal/domains/order/repository"
	"checkout-backend/internal/domains/payment/gateway"
	"checkout-backend/internal/domains/payment/model"
	"checkout-backend/internal/domains/payment/repository"
	"checkout-backend/pkg/logger"
)

// =====================================================
// PAYMENT SERVICE IMPLEMENTATION
// =====================================================
type paymentService struct {
	orderRepo   orderrepo.OrderRepository
	paymentRepo repository.PaymentRepository
	webhookRepo repository.WebhookRepository
	gateway     gateway.Gateway
	guard       *InProgressGuard
}

func NewPaymentService(
	orderRepo orderrepo.OrderRepository,
	paymentRepo repository.PaymentRepository,
	webhookRepo repository.WebhookRepository,
	gw gateway.Gateway,
	guard *InProgressGuard,
) PaymentService {
	return &paymentService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		webhookRepo: webhookRepo,
		gateway:     gw,
		guard:       guard,
	}
}

// =====================================================
// CHARGE CREATION
// =====================================================

// CreateCharge provisions the gateway side of an order: customer, PIX charge
// and QR code. A failure after the order exists leaves it PENDING without a
// gateway reference, which a retried create call can complete.
func (s *paymentService) CreateCharge(ctx context.Context, req model.CreatePaymentRequest) (*model.CreatePaymentResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewPaymentError(model.ErrCodeInvalidRequest, err.Error(), err)
	}

	// Step 2: Load the order the charge is for
	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, ordermodel.ErrOrderNotFound) {
			return nil, model.NewOrderNotFoundError(req.OrderID.String())
		}
		return nil, model.NewPaymentError(model.ErrCodeStoreFailure, "Failed to load order", err)
	}

	// Step 3: Idempotency. An order that already carries a gateway reference
	// gets its existing charge back instead of a second one.
	if order.HasPaymentReference() {
		return s.existingChargeResponse(ctx, order)
	}

	// Step 4: Advisory guard against concurrent creates for the same order
	acquired, err := s.guard.Acquire(ctx, order.ID.String())
	if err != nil {
		logger.Warn("In-progress guard unavailable, continuing without it", map[string]interface{}{
			"order_id": order.ID.String(),
			"error":    err.Error(),
		})
	}
	if !acquired {
		return nil, model.NewPaymentInProgressError(order.ID.String())
	}
	defer s.guard.Release(ctx, order.ID.String())

	// Step 5: Create gateway customer
	customer, err := s.gateway.CreateCustomer(ctx, gateway.CustomerRequest{
		Name:  req.CustomerName,
		Email: req.CustomerEmail,
		CPF:   req.CustomerCPF,
		Phone: req.CustomerPhone,
	})
	if err != nil {
		return nil, asGatewayError("Failed to create gateway customer", err)
	}

	// Step 6: Create PIX charge
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("%s - %s", model.DefaultChargeDescription, req.ProductName)
	}

	charge, err := s.gateway.CreateCharge(ctx, gateway.ChargeRequest{
		CustomerID:  customer.ID,
		Value:       req.Price,
		DueDate:     time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		Description: description,
	})
	if err != nil {
		return nil, asGatewayError("Failed to create charge", err)
	}

	// Step 7: Fetch the PIX QR code. Non-fatal: the charge exists either way
	// and the reconciliation sweep can still settle the order.
	var qrCode, qrImage string
	if pix, err := s.gateway.GetPixQRCode(ctx, charge.ID); err != nil {
		logger.Warn("Failed to fetch PIX QR code", map[string]interface{}{
			"order_id":   order.ID.String(),
			"payment_id": charge.ID,
			"error":      err.Error(),
		})
	} else {
		qrCode = pix.Payload
		qrImage = pix.EncodedImage
	}

	// Step 8: Persist the charge record
	record := &model.PaymentRecord{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Gateway:   model.GatewayAsaas,
		PaymentID: charge.ID,
		Amount:    req.Price,
		Status:    string(ordermodel.NormalizeStoredStatus(charge.Status)),
	}
	if qrCode != "" {
		record.QRCode = &qrCode
	}
	if qrImage != "" {
		record.QRCodeImage = &qrImage
	}

	if err := s.paymentRepo.Create(ctx, record); err != nil {
		return nil, model.NewPaymentError(model.ErrCodeStoreFailure, "Failed to store payment record", err)
	}

	// Step 9: Attach the gateway reference to the order
	if err := s.orderRepo.AttachPayment(ctx, order.ID, charge.ID, qrCode, qrImage); err != nil {
		return nil, model.NewPaymentError(model.ErrCodeStoreFailure, "Failed to attach payment to order", err)
	}

	logger.Info("Charge created", map[string]interface{}{
		"order_id":   order.ID.String(),
		"payment_id": charge.ID,
		"amount":     req.Price.String(),
	})

	return &model.CreatePaymentResponse{
		PaymentID: charge.ID,
		Status:    record.Status,
		QRCode:    qrCode,
		QRImage:   qrImage,
	}, nil
}

// existingChargeResponse rebuilds a create response from the charge already
// attached to the order.
func (s *paymentService) existingChargeResponse(ctx context.Context, order *ordermodel.Order) (*model.CreatePaymentResponse, error) {
	resp := &model.CreatePaymentResponse{
		PaymentID: *order.PaymentID,
		Status:    string(order.PaymentStatus),
	}
	if order.QRCode != nil {
		resp.QRCode = *order.QRCode
	}
	if order.QRCodeImage != nil {
		resp.QRImage = *order.QRCodeImage
	}

	logger.Info("Charge already exists for order, returning it", map[string]interface{}{
		"order_id":   order.ID.String(),
		"payment_id": resp.PaymentID,
	})

	return resp, nil
}

// =====================================================
// WEBHOOK PROCESSING
// =====================================================

// ProcessWebhook applies one gateway delivery. Inert and unknown events are
// logged and acknowledged; only events in the allow-list mutate the order,
// and only through the monotonic status update.
func (s *paymentService) ProcessWebhook(ctx context.Context, req model.WebhookRequest, rawBody map[string]interface{}) error {
	entry := &model.WebhookLog{
		ID:           uuid.New(),
		Gateway:      model.GatewayAsaas,
		WebhookEvent: req.Event,
		Body:         rawBody,
	}
	if req.Payment != nil && req.Payment.ID != "" {
		paymentID := req.Payment.ID
		entry.PaymentID = &paymentID
	}

	// Step 1: Classify the event
	status, actionable := model.EventStatusMap[req.Event]
	if !actionable {
		if _, inert := model.InertEvents[req.Event]; inert {
			logger.Info("Ignoring inert webhook event", map[string]interface{}{"event": req.Event})
		} else {
			logger.Info("Ignoring unknown webhook event", map[string]interface{}{"event": req.Event})
		}
		s.appendWebhookLog(ctx, entry)
		return nil
	}

	// Step 2: Resolve the order by gateway payment reference
	order, err := s.orderRepo.GetByPaymentID(ctx, req.Payment.ID)
	if err != nil {
		if errors.Is(err, ordermodel.ErrOrderNotFound) {
			notFound := model.NewOrderNotFoundError(req.Payment.ID)
			entry.MarkProcessingError(notFound)
			s.appendWebhookLog(ctx, entry)
			return notFound
		}
		storeErr := model.NewPaymentError(model.ErrCodeStoreFailure, "Failed to resolve order for webhook", err)
		entry.MarkProcessingError(storeErr)
		s.appendWebhookLog(ctx, entry)
		return storeErr
	}
	entry.OrderID = &order.ID

	// Step 3: Apply the status, refusing to move backwards
	applied, err := s.orderRepo.UpdatePaymentStatusMonotonic(ctx, order.ID, status)
	if err != nil {
		storeErr := model.NewPaymentError(model.ErrCodeStoreFailure, "Failed to update order status", err)
		entry.MarkProcessingError(storeErr)
		s.appendWebhookLog(ctx, entry)
		return storeErr
	}

	if !applied {
		logger.Info("Stale webhook delivery ignored", map[string]interface{}{
			"order_id":   order.ID.String(),
			"event":      req.Event,
			"new_status": string(status),
			"old_status": string(order.PaymentStatus),
		})
		entry.MarkAsProcessed()
		s.appendWebhookLog(ctx, entry)
		return nil
	}

	// Step 4: Mirror the gateway-reported status onto the charge record
	if req.Payment.Status != "" {
		if err := s.paymentRepo.UpdateStatus(ctx, req.Payment.ID, req.Payment.Status); err != nil &&
			!errors.Is(err, model.ErrPaymentNotFound) {
			logger.Warn("Failed to update payment record from webhook", map[string]interface{}{
				"payment_id": req.Payment.ID,
				"error":      err.Error(),
			})
		}
	}

	logger.Info("Webhook applied", map[string]interface{}{
		"order_id":   order.ID.String(),
		"event":      req.Event,
		"new_status": string(status),
	})

	entry.MarkAsProcessed()
	s.appendWebhookLog(ctx, entry)
	return nil
}

// appendWebhookLog writes the audit entry. Audit failures are logged but do
// not fail the delivery.
func (s *paymentService) appendWebhookLog(ctx context.Context, entry *model.WebhookLog) {
	if err := s.webhookRepo.Create(ctx, entry); err != nil {
		logger.Error("Failed to store webhook log", err)
	}
}

// =====================================================
// STATUS CHECK
// =====================================================

// CheckStatus resolves a payment reference (gateway charge id or order id)
// and reports the stored status. Still-pending orders get an opportunistic
// refresh from the gateway; a gateway failure falls back to the stored value.
func (s *paymentService) CheckStatus(ctx context.Context, req model.CheckStatusRequest) (*model.CheckStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewPaymentError(model.ErrCodeInvalidRequest, err.Error(), err)
	}

	order, err := s.resolveOrder(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}

	if !order.IsTerminal() && order.HasPaymentReference() {
		if refreshed := s.tryRefresh(ctx, order); refreshed != nil {
			order = refreshed
		}
	}

	resp := &model.CheckStatusResponse{
		PaymentStatus: string(order.PaymentStatus),
		PaymentID:     order.ID.String(),
	}
	if order.PaymentID != nil {
		resp.GatewayPaymentID = *order.PaymentID
	}

	return resp, nil
}

// resolveOrder accepts either the gateway charge id or the order UUID in the
// same field, matching the storefront contract.
func (s *paymentService) resolveOrder(ctx context.Context, ref string) (*ordermodel.Order, error) {
	order, err := s.orderRepo.GetByPaymentID(ctx, ref)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, ordermodel.ErrOrderNotFound) {
		return nil, model.NewPaymentError(model.ErrCodeStoreFailure, "Failed to resolve payment", err)
	}

	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		order, err = s.orderRepo.GetByID(ctx, id)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, ordermodel.ErrOrderNotFound) {
			return nil, model.NewPaymentError(model.ErrCodeStoreFailure, "Failed to resolve payment", err)
		}
	}

	return nil, model.NewPaymentNotFoundError(ref)
}

// tryRefresh consults the gateway for a pending order and applies the result.
// Returns the refreshed order, or nil when nothing changed or the gateway
// could not be reached.
func (s *paymentService) tryRefresh(ctx context.Context, order *ordermodel.Order) *ordermodel.Order {
	rawStatus, err := s.gateway.GetChargeStatus(ctx, *order.PaymentID)
	if err != nil {
		logger.Warn("Gateway status check failed, returning stored status", map[string]interface{}{
			"order_id":   order.ID.String(),
			"payment_id": *order.PaymentID,
			"error":      err.Error(),
		})
		return nil
	}

	status := ordermodel.NormalizeStoredStatus(rawStatus)
	if status == order.PaymentStatus {
		return nil
	}

	applied, err := s.orderRepo.UpdatePaymentStatusMonotonic(ctx, order.ID, status)
	if err != nil {
		logger.Error("Failed to persist refreshed status", err)
		return nil
	}
	if !applied {
		return nil
	}

	if err := s.paymentRepo.UpdateStatus(ctx, *order.PaymentID, rawStatus); err != nil &&
		!errors.Is(err, model.ErrPaymentNotFound) {
		logger.Warn("Failed to update payment record from status check", map[string]interface{}{
			"payment_id": *order.PaymentID,
			"error":      err.Error(),
		})
	}

	logger.Info("Order status refreshed from gateway", map[string]interface{}{
		"order_id":   order.ID.String(),
		"old_status": string(order.PaymentStatus),
		"new_status": string(status),
	})

	refreshed := *order
	refreshed.PaymentStatus = status
	return &refreshed
}

// =====================================================
// RECONCILIATION
// =====================================================

// RefreshOrderStatus is the sweep entrypoint: one pending order, one gateway
// round trip.
func (s *paymentService) RefreshOrderStatus(ctx context.Context, paymentID string) error {
	order, err := s.orderRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, ordermodel.ErrOrderNotFound) {
			return model.NewOrderNotFoundError(paymentID)
		}
		return fmt.Errorf("failed to load order for refresh: %w", err)
	}

	if order.IsTerminal() {
		return nil
	}

	s.tryRefresh(ctx, order)
	return nil
}

// asGatewayError passes through an already-typed gateway error, otherwise
// wraps it.
func asGatewayError(message string, err error) *model.PaymentError {
	var payErr *model.PaymentError
	if errors.As(err, &payErr) {
		return payErr
	}
	return model.NewGatewayError(message, nil, err)
}
