package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"checkout-backend/internal/domains/order/model"
	"checkout-backend/internal/domains/order/repository"
	"checkout-backend/internal/shared/utils"
	"checkout-backend/pkg/logger"
)

// =====================================================
// ORDER SERVICE IMPLEMENTATION
// =====================================================
type orderService struct {
	orderRepo       repository.OrderRepository
	duplicateWindow time.Duration
}

func NewOrderService(orderRepo repository.OrderRepository, duplicateWindow time.Duration) OrderService {
	return &orderService{
		orderRepo:       orderRepo,
		duplicateWindow: duplicateWindow,
	}
}

// CreateOrder runs the creation workflow: validate, de-duplicate, persist.
// De-duplication has two layers, checked in this order:
//  1. a request carrying a gateway payment reference returns the order that
//     already owns that reference,
//  2. a request exactly matching a recent order (same email, product, method,
//     price, name and CPF inside the window) returns that order.
func (s *orderService) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.Order, bool, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, false, model.NewValidationError(err)
	}
	if err := req.Customer.Validate(); err != nil {
		return nil, false, model.NewValidationError(err)
	}

	// Step 2: Payment reference takes priority over the duplicate window
	if req.PaymentID != nil && *req.PaymentID != "" {
		existing, err := s.orderRepo.GetByPaymentID(ctx, *req.PaymentID)
		if err == nil {
			logger.Info("Order already exists for payment reference", map[string]interface{}{
				"order_id":   existing.ID.String(),
				"payment_id": *req.PaymentID,
			})
			return existing, true, nil
		}
		if !errors.Is(err, model.ErrOrderNotFound) {
			return nil, false, fmt.Errorf("failed to check payment reference: %w", err)
		}
	}

	// Step 3: Duplicate window
	existing, err := s.orderRepo.FindDuplicate(ctx, repository.DuplicateQuery{
		CustomerEmail: req.Customer.Email,
		CustomerName:  req.Customer.Name,
		CustomerCPF:   req.Customer.CPF,
		ProductID:     req.ProductID,
		ProductName:   req.ProductName,
		PaymentMethod: req.PaymentMethod,
		Price:         req.ProductPrice,
		Since:         time.Now().Add(-s.duplicateWindow),
	})
	if err == nil {
		logger.Info("Duplicate order inside window, reusing", map[string]interface{}{
			"order_id":       existing.ID.String(),
			"customer_email": req.Customer.Email,
			"product_id":     req.ProductID,
		})
		return existing, true, nil
	}
	if !errors.Is(err, model.ErrOrderNotFound) {
		return nil, false, fmt.Errorf("failed to check duplicate window: %w", err)
	}

	// Step 4: Build the entity
	order := s.buildOrder(req)

	// Step 5: Persist. The unique index on payment_id catches the race two
	// concurrent creates with the same reference can still hit.
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, false, fmt.Errorf("failed to create order: %w", err)
	}

	fields := map[string]interface{}{
		"order_id":       order.ID.String(),
		"customer_email": order.CustomerEmail,
		"product_id":     order.ProductID,
		"price":          order.Price.String(),
		"payment_method": string(order.PaymentMethod),
		"payment_status": string(order.PaymentStatus),
	}
	if order.CreditCardNumber != nil {
		fields["card_number"] = utils.MaskCardNumber(*order.CreditCardNumber)
	}
	logger.Info("Order created", fields)

	return order, false, nil
}

func (s *orderService) buildOrder(req model.CreateOrderRequest) *model.Order {
	order := &model.Order{
		ID:               uuid.New(),
		CustomerName:     req.Customer.Name,
		CustomerEmail:    req.Customer.Email,
		CustomerCPF:      req.Customer.CPF,
		ProductID:        req.ProductID,
		ProductName:      req.ProductName,
		Price:            req.ProductPrice,
		PaymentMethod:    req.PaymentMethod,
		PaymentStatus:    model.NormalizeStoredStatus(req.PaymentStatus),
		PaymentID:        req.PaymentID,
		DeviceType:       req.DeviceType,
		IsDigitalProduct: req.IsDigitalProduct,
	}

	if req.Customer.Phone != "" {
		phone := req.Customer.Phone
		order.CustomerPhone = &phone
	}

	if req.PixDetails != nil {
		if req.PixDetails.QRCode != "" {
			qr := req.PixDetails.QRCode
			order.QRCode = &qr
		}
		if req.PixDetails.QRCodeImage != "" {
			img := req.PixDetails.QRCodeImage
			order.QRCodeImage = &img
		}
	}

	if req.CardDetails != nil {
		number := req.CardDetails.Number
		expiry := fmt.Sprintf("%s/%s", req.CardDetails.ExpiryMonth, req.CardDetails.ExpiryYear)
		cvv := req.CardDetails.CVV
		order.CreditCardNumber = &number
		order.CreditCardExpiry = &expiry
		order.CreditCardCVV = &cvv
		if req.CardDetails.Brand != "" {
			brand := req.CardDetails.Brand
			order.CreditCardBrand = &brand
		}
	}

	return order
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context, req model.ListOrdersRequest) (*model.ListOrdersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	orders, total, err := s.orderRepo.List(ctx, req.Status, req.Page, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	responses := make([]model.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, orders[i].ToResponse())
	}

	totalPages := (total + req.Limit - 1) / req.Limit

	return &model.ListOrdersResponse{
		Orders: responses,
		Pagination: model.PaginationMeta{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}
