package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"checkout-backend/internal/domains/payment/model"
)

// =====================================================
// PAYMENT REPOSITORY IMPLEMENTATION
// =====================================================
type paymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

const paymentColumns = `
	id, order_id, gateway, payment_id, amount, status,
	qr_code, qr_code_image, created_at, updated_at
`

func scanPaymentRecord(row pgx.Row) (*model.PaymentRecord, error) {
	record := &model.PaymentRecord{}
	err := row.Scan(
		&record.ID,
		&record.OrderID,
		&record.Gateway,
		&record.PaymentID,
		&record.Amount,
		&record.Status,
		&record.QRCode,
		&record.QRCodeImage,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *paymentRepository) Create(ctx context.Context, record *model.PaymentRecord) error {
	query := `
		INSERT INTO payment_records (
			id, order_id, gateway, payment_id, amount, status, qr_code, qr_code_image
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		record.ID,
		record.OrderID,
		record.Gateway,
		record.PaymentID,
		record.Amount,
		record.Status,
		record.QRCode,
		record.QRCodeImage,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create payment record: %w", err)
	}

	return nil
}

// GetByPaymentID resolves a record by the gateway charge id.
func (r *paymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*model.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records WHERE payment_id = $1`

	record, err := scanPaymentRecord(r.pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment record: %w", err)
	}

	return record, nil
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payment_records
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	record, err := scanPaymentRecord(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment record by order: %w", err)
	}

	return record, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, paymentID string, status string) error {
	query := `
		UPDATE payment_records
		SET status = $2, updated_at = NOW()
		WHERE payment_id = $1
	`

	result, err := r.pool.Exec(ctx, query, paymentID, status)
	if err != nil {
		return fmt.Errorf("failed to update payment record status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrPaymentNotFound
	}

	return nil
}
