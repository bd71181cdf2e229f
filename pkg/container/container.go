package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"checkout-backend/internal/config"
	orderHandler "checkout-backend/internal/domains/order/handler"
	orderRepo "checkout-backend/internal/domains/order/repository"
	orderService "checkout-backend/internal/domains/order/service"
	"checkout-backend/internal/domains/payment/gateway"
	"checkout-backend/internal/domains/payment/gateway/asaas"
	gatewayMock "checkout-backend/internal/domains/payment/gateway/mock"
	paymentHandler "checkout-backend/internal/domains/payment/handler"
	paymentRepo "checkout-backend/internal/domains/payment/repository"
	paymentService "checkout-backend/internal/domains/payment/service"
	"checkout-backend/internal/infrastructure/cache"
	"checkout-backend/internal/infrastructure/database"
	"checkout-backend/pkg/jwt"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph, shared by the API and the
// worker. Everything in it is a singleton for the process lifetime.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *cache.RedisClient
	JWTManager *jwt.Manager
	Gateway    gateway.Gateway

	// Repositories
	OrderRepo   orderRepo.OrderRepository
	PaymentRepo paymentRepo.PaymentRepository
	WebhookRepo paymentRepo.WebhookRepository

	// Services
	OrderService   orderService.OrderService
	PaymentService paymentService.PaymentService

	// Handlers
	OrderHandler   *orderHandler.OrderHandler
	PaymentHandler *paymentHandler.PaymentHandler
}

// NewContainer initializes the full graph in dependency order: config,
// infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	// Step 2: Database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// Step 3: Redis. Not critical at startup: the in-progress guard degrades
	// gracefully without it.
	redisClient := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(context.Background()); err != nil {
		log.Printf("[Container] Redis connection failed (non-critical): %v", err)
	}
	c.Redis = redisClient

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// Step 4: Payment gateway. Without an API key (local development) the
	// mock gateway stands in for Asaas.
	if cfg.Asaas.APIKey != "" {
		gw, err := asaas.NewClient(&asaas.Config{
			APIKey:  cfg.Asaas.APIKey,
			APIURL:  cfg.Asaas.APIURL,
			Timeout: cfg.Asaas.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init asaas client: %w", err)
		}
		c.Gateway = gw
	} else {
		log.Println("[Container] ASAAS_API_KEY not set, using mock gateway")
		c.Gateway = gatewayMock.NewMockAsaasGateway()
	}

	// Step 5: Repositories
	c.OrderRepo = orderRepo.NewOrderRepository(db.Pool)
	c.PaymentRepo = paymentRepo.NewPaymentRepository(db.Pool)
	c.WebhookRepo = paymentRepo.NewWebhookRepository(db.Pool)

	// Step 6: Services
	guard := paymentService.NewInProgressGuard(redisClient.Client, cfg.Checkout.InProgressTTL)
	c.OrderService = orderService.NewOrderService(c.OrderRepo, cfg.Checkout.DuplicateWindow)
	c.PaymentService = paymentService.NewPaymentService(
		c.OrderRepo,
		c.PaymentRepo,
		c.WebhookRepo,
		c.Gateway,
		guard,
	)

	// Step 7: Handlers
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.PaymentService)

	log.Println("[Container] Initialized")
	return c, nil
}

// Cleanup releases infrastructure connections.
func (c *Container) Cleanup() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("[Container] Redis close failed: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Println("[Container] Cleaned up")
}
