package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"checkout-backend/internal/domains/order/model"
)

// =====================================================
// ORDER REPOSITORY IMPLEMENTATION
// =====================================================
type orderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `
	id, customer_name, customer_email, customer_cpf, customer_phone,
	product_id, product_name, price, payment_method, payment_status,
	payment_id, qr_code, qr_code_image,
	credit_card_number, credit_card_expiry, credit_card_cvv, credit_card_brand,
	device_type, is_digital_product, created_at, updated_at
`

// statusRankSQL mirrors model.StatusRank for in-database comparisons.
const statusRankSQL = `(CASE %s WHEN 'PENDING' THEN 0 WHEN 'ANALYSIS' THEN 1 ELSE 2 END)`

func scanOrder(row pgx.Row) (*model.Order, error) {
	order := &model.Order{}
	err := row.Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerCPF,
		&order.CustomerPhone,
		&order.ProductID,
		&order.ProductName,
		&order.Price,
		&order.PaymentMethod,
		&order.PaymentStatus,
		&order.PaymentID,
		&order.QRCode,
		&order.QRCodeImage,
		&order.CreditCardNumber,
		&order.CreditCardExpiry,
		&order.CreditCardCVV,
		&order.CreditCardBrand,
		&order.DeviceType,
		&order.IsDigitalProduct,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Create inserts a new order row. A unique index on payment_id makes the
// create idempotent for requests that already carry a gateway reference: on
// conflict the existing row is loaded into the receiver instead.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, customer_name, customer_email, customer_cpf, customer_phone,
			product_id, product_name, price, payment_method, payment_status,
			payment_id, qr_code, qr_code_image,
			credit_card_number, credit_card_expiry, credit_card_cvv, credit_card_brand,
			device_type, is_digital_product
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		order.ID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerCPF,
		order.CustomerPhone,
		order.ProductID,
		order.ProductName,
		order.Price,
		order.PaymentMethod,
		order.PaymentStatus,
		order.PaymentID,
		order.QRCode,
		order.QRCodeImage,
		order.CreditCardNumber,
		order.CreditCardExpiry,
		order.CreditCardCVV,
		order.CreditCardBrand,
		order.DeviceType,
		order.IsDigitalProduct,
	).Scan(&order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && order.PaymentID != nil {
			existing, fetchErr := r.GetByPaymentID(ctx, *order.PaymentID)
			if fetchErr != nil {
				return fmt.Errorf("failed to fetch order after conflict: %w", fetchErr)
			}
			*order = *existing
			return nil
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID gets an order by primary key.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// GetByPaymentID resolves an order by its gateway payment reference.
func (r *orderRepository) GetByPaymentID(ctx context.Context, paymentID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_id = $1 LIMIT 1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by payment id: %w", err)
	}

	return order, nil
}

// FindDuplicate returns the most recent order matching the duplicate window
// query exactly (email, product, method, price, name and CPF).
func (r *orderRepository) FindDuplicate(ctx context.Context, q DuplicateQuery) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_email = $1
		  AND product_id = $2
		  AND product_name = $3
		  AND payment_method = $4
		  AND price = $5
		  AND customer_name = $6
		  AND customer_cpf = $7
		  AND created_at >= $8
		ORDER BY created_at DESC
		LIMIT 1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query,
		q.CustomerEmail,
		q.ProductID,
		q.ProductName,
		q.PaymentMethod,
		q.Price,
		q.CustomerName,
		q.CustomerCPF,
		q.Since,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find duplicate order: %w", err)
	}

	return order, nil
}

// AttachPayment writes the gateway reference and QR fields after the charge
// is created.
func (r *orderRepository) AttachPayment(ctx context.Context, orderID uuid.UUID, paymentID, qrCode, qrCodeImage string) error {
	query := `
		UPDATE orders
		SET payment_id = $2,
			qr_code = $3,
			qr_code_image = $4,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, orderID, paymentID, qrCode, qrCodeImage)
	if err != nil {
		return fmt.Errorf("failed to attach payment to order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// UpdatePaymentStatus applies a status unconditionally.
func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus) error {
	query := `
		UPDATE orders
		SET payment_status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, orderID, status)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// UpdatePaymentStatusMonotonic applies a status only when its rank is at
// least the stored one, so late low-rank webhook deliveries cannot claw back
// a terminal status. Returns false when the row exists but the write was
// rejected as stale.
func (r *orderRepository) UpdatePaymentStatusMonotonic(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE orders
		SET payment_status = $2, updated_at = NOW()
		WHERE id = $1
		  AND %s <= %s
	`, fmt.Sprintf(statusRankSQL, "payment_status"), fmt.Sprintf(statusRankSQL, "$2::text"))

	result, err := r.pool.Exec(ctx, query, orderID, status)
	if err != nil {
		return false, fmt.Errorf("failed to update payment status: %w", err)
	}

	if result.RowsAffected() > 0 {
		return true, nil
	}

	// Row missing vs. stale write
	if _, err := r.GetByID(ctx, orderID); err != nil {
		return false, err
	}

	return false, nil
}

// ListPendingOlderThan returns PENDING orders with a gateway reference
// created before the cutoff, oldest first.
func (r *orderRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE payment_status = $1
		  AND payment_id IS NOT NULL
		  AND created_at < $2
		ORDER BY created_at ASC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, model.PaymentStatusPending, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending orders: %w", err)
	}

	return orders, nil
}

// List returns orders with optional status filter and pagination.
func (r *orderRepository) List(ctx context.Context, status string, page, limit int) ([]model.Order, int, error) {
	countQuery := `SELECT COUNT(*) FROM orders WHERE ($1 = '' OR payment_status = $1)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR payment_status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, total, nil
}
