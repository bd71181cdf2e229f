package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"checkout-backend/internal/domains/payment/model"
)

// =====================================================
// WEBHOOK LOG REPOSITORY IMPLEMENTATION
// =====================================================
type webhookRepository struct {
	pool *pgxpool.Pool
}

func NewWebhookRepository(pool *pgxpool.Pool) WebhookRepository {
	return &webhookRepository{pool: pool}
}

func (r *webhookRepository) Create(ctx context.Context, log *model.WebhookLog) error {
	body, err := json.Marshal(log.Body)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook body: %w", err)
	}

	query := `
		INSERT INTO webhook_logs (
			id, order_id, gateway, webhook_event, payment_id,
			body, is_processed, processing_error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING received_at
	`

	err = r.pool.QueryRow(ctx, query,
		log.ID,
		log.OrderID,
		log.Gateway,
		log.WebhookEvent,
		log.PaymentID,
		body,
		log.IsProcessed,
		log.ProcessingError,
	).Scan(&log.ReceivedAt)

	if err != nil {
		return fmt.Errorf("failed to create webhook log: %w", err)
	}

	return nil
}

func (r *webhookRepository) Update(ctx context.Context, log *model.WebhookLog) error {
	query := `
		UPDATE webhook_logs
		SET order_id = $2, is_processed = $3, processing_error = $4
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		log.ID,
		log.OrderID,
		log.IsProcessed,
		log.ProcessingError,
	)
	if err != nil {
		return fmt.Errorf("failed to update webhook log: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("webhook log not found: %s", log.ID)
	}

	return nil
}
