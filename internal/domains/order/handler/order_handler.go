package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"checkout-backend/internal/domains/order/model"
	"checkout-backend/internal/domains/order/service"
	"checkout-backend/internal/shared/response"
	"checkout-backend/pkg/logger"
)

// =====================================================
// ORDER HANDLER
// =====================================================
type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles POST /api/v1/orders.
// Returns 201 for a new order and 200 when an existing order was reused.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	// Step 1: Bind request
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 2: Create or reuse
	order, reused, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		if model.IsValidationError(err) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "ORD001", "Validation failed", err.Error())
			return
		}
		logger.Error("Failed to create order", err)
		response.InternalServerError(c, "Failed to create order")
		return
	}

	status := http.StatusCreated
	if reused {
		status = http.StatusOK
	}
	response.Success(c, status, order.ToResponse())
}

// GetOrder handles GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			response.NotFound(c, "Order not found")
			return
		}
		logger.Error("Failed to get order", err)
		response.InternalServerError(c, "Failed to get order")
		return
	}

	response.Success(c, http.StatusOK, order.ToResponse())
}

// ListOrders handles GET /api/v1/admin/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req model.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), req)
	if err != nil {
		if model.IsValidationError(err) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "ORD001", "Validation failed", err.Error())
			return
		}
		logger.Error("Failed to list orders", err)
		response.InternalServerError(c, "Failed to list orders")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Orders, &response.Meta{
		Page:  result.Pagination.Page,
		Limit: result.Pagination.Limit,
		Total: result.Pagination.Total,
	})
}
