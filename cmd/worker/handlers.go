package main

import (
	"github.com/hibiken/asynq"

	paymentJob "checkout-backend/internal/domains/payment/job"
	"checkout-backend/internal/shared"
	"checkout-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	reconcilePending *paymentJob.ReconcilePendingHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		reconcilePending: paymentJob.NewReconcilePendingHandler(
			c.OrderRepo,
			c.PaymentService,
			c.Config.Checkout,
		),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeReconcilePendingPayments, h.reconcilePending.ProcessTask)
}
