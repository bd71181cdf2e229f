package service

import (
	"context"

	"github.com/google/uuid"

	"checkout-backend/internal/domains/order/model"
)

// OrderService is the order-facing half of the checkout flow.
type OrderService interface {
	// CreateOrder persists a new order, or returns an existing one when the
	// request duplicates a recent order or carries an already-known gateway
	// reference. The second return reports whether an existing order was
	// reused.
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.Order, bool, error)

	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListOrders is the admin listing with status filter and pagination.
	ListOrders(ctx context.Context, req model.ListOrdersRequest) (*model.ListOrdersResponse, error)
}
