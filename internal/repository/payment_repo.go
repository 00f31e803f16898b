package repository

import (
	"context"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

type CreatePaymentInput struct {
	SubscriptionID int64
	ClientID       int64
	CoachID        int64
	Amount         float64
	Status         string
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	query := `
		INSERT INTO payments (subscription_id, client_id, coach_id, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, subscription_id, client_id, coach_id, amount, status, created_at
	`

	var payment models.Payment
	err := r.db.QueryRow(ctx, query, input.SubscriptionID, input.ClientID, input.CoachID, input.Amount, input.Status).Scan(
		&payment.ID,
		&payment.SubscriptionID,
		&payment.ClientID,
		&payment.CoachID,
		&payment.Amount,
		&payment.Status,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) ListBySubscription(
	ctx context.Context,
	subscriptionID int64,
) ([]models.Payment, error) {
	query := `
		SELECT id, subscription_id, client_id, coach_id, amount, status, created_at
		FROM payments
		WHERE subscription_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, subscriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.SubscriptionID,
			&payment.ClientID,
			&payment.CoachID,
			&payment.Amount,
			&payment.Status,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}

		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
