package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"checkout-backend/internal/config"
	orderrepo "checkout-backend/internal/domains/order/repository"
	"checkout-backend/internal/domains/payment/service"
	"checkout-backend/internal/shared"
	"checkout-backend/internal/shared/utils"
	"checkout-backend/pkg/logger"
)

// ================================================
// RECONCILE PENDING PAYMENTS JOB HANDLER
// ================================================
// Webhooks can be lost: the gateway may fail to deliver, or we may be down
// when it tries. This sweep catches orders that stayed PENDING past the
// configured age and asks the gateway directly.

type ReconcilePendingHandler struct {
	orderRepo      orderrepo.OrderRepository
	paymentService service.PaymentService
	checkoutConfig config.CheckoutConfig
}

func NewReconcilePendingHandler(
	orderRepo orderrepo.OrderRepository,
	paymentService service.PaymentService,
	checkoutConfig config.CheckoutConfig,
) *ReconcilePendingHandler {
	return &ReconcilePendingHandler{
		orderRepo:      orderRepo,
		paymentService: paymentService,
		checkoutConfig: checkoutConfig,
	}
}

func (h *ReconcilePendingHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	// 1. Parse payload, fall back to the configured batch size
	var payload shared.ReconcilePendingPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		logger.Error("Failed to unmarshal reconcile payload, using default limit", err)
	}

	limit := payload.Limit
	if limit <= 0 {
		limit = h.checkoutConfig.ReconcileBatch
	}

	// 2. Collect pending orders older than the threshold
	cutoff := time.Now().Add(-h.checkoutConfig.PendingMaxAge)
	orders, err := h.orderRepo.ListPendingOlderThan(ctx, cutoff, limit)
	if err != nil {
		return fmt.Errorf("list pending orders: %w", err)
	}

	if len(orders) == 0 {
		return nil
	}

	logger.Info("Starting pending payment reconciliation", map[string]interface{}{
		"candidates": len(orders),
		"cutoff":     cutoff,
	})

	// 3. Refresh each order from the gateway. One bad order must not stop
	// the sweep; failures are logged and the rest continue.
	var failed int
	for i := range orders {
		order := &orders[i]
		if order.PaymentID == nil {
			continue
		}

		if err := h.paymentService.RefreshOrderStatus(ctx, *order.PaymentID); err != nil {
			failed++
			logger.Warn("Failed to reconcile order", map[string]interface{}{
				"order_id":   order.ID.String(),
				"payment_id": *order.PaymentID,
				"error":      err.Error(),
			})
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	logger.Info("Completed pending payment reconciliation", map[string]interface{}{
		"candidates": len(orders),
		"failed":     failed,
	})

	return nil
}
