package repository

import (
	"context"
	"time"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

type CreateSubscriptionInput struct {
	ClientID    int64
	CoachID     int64
	PackageName string
	StartsAt    time.Time
	ExpiresAt   time.Time
}

type SubscriptionRepository struct {
	db DBTX
}

func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(
	ctx context.Context,
	input CreateSubscriptionInput,
) (*models.Subscription, error) {
	query := `
		INSERT INTO subscriptions (client_id, coach_id, package_name, status, starts_at, expires_at)
		VALUES ($1, $2, $3, 'active', $4, $5)
		RETURNING id, client_id, coach_id, package_name, status, starts_at, expires_at, created_at
	`

	var subscription models.Subscription
	err := r.db.QueryRow(
		ctx,
		query,
		input.ClientID,
		input.CoachID,
		input.PackageName,
		input.StartsAt,
		input.ExpiresAt,
	).Scan(
		&subscription.ID,
		&subscription.ClientID,
		&subscription.CoachID,
		&subscription.PackageName,
		&subscription.Status,
		&subscription.StartsAt,
		&subscription.ExpiresAt,
		&subscription.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &subscription, nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id int64) (*models.Subscription, error) {
	query := `
		SELECT id, client_id, coach_id, package_name, status, starts_at, expires_at, created_at
		FROM subscriptions
		WHERE id = $1
	`

	var subscription models.Subscription
	err := r.db.QueryRow(ctx, query, id).Scan(
		&subscription.ID,
		&subscription.ClientID,
		&subscription.CoachID,
		&subscription.PackageName,
		&subscription.Status,
		&subscription.StartsAt,
		&subscription.ExpiresAt,
		&subscription.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &subscription, nil
}

// GetActiveForPair finds the active subscription binding a client to a coach.
func (r *SubscriptionRepository) GetActiveForPair(
	ctx context.Context,
	clientID int64,
	coachID int64,
) (*models.Subscription, error) {
	query := `
		SELECT id, client_id, coach_id, package_name, status, starts_at, expires_at, created_at
		FROM subscriptions
		WHERE client_id = $1
		  AND coach_id = $2
		  AND status = 'active'
		ORDER BY starts_at DESC
		LIMIT 1
	`

	var subscription models.Subscription
	err := r.db.QueryRow(ctx, query, clientID, coachID).Scan(
		&subscription.ID,
		&subscription.ClientID,
		&subscription.CoachID,
		&subscription.PackageName,
		&subscription.Status,
		&subscription.StartsAt,
		&subscription.ExpiresAt,
		&subscription.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &subscription, nil
}

// GetActiveCoachForClient resolves the client's current coach, used when a
// daily log is submitted without an explicit coach.
func (r *SubscriptionRepository) GetActiveCoachForClient(
	ctx context.Context,
	clientID int64,
) (int64, error) {
	var coachID int64
	err := r.db.QueryRow(ctx, `
		SELECT coach_id
		FROM subscriptions
		WHERE client_id = $1
		  AND status = 'active'
		ORDER BY starts_at DESC
		LIMIT 1
	`, clientID).Scan(&coachID)
	return coachID, err
}

// ListExpiringWithin returns active subscriptions that lapse inside the
// window. Used by the admin-triggered expiry sweep; the core runs no
// scheduler of its own.
func (r *SubscriptionRepository) ListExpiringWithin(
	ctx context.Context,
	window time.Duration,
) ([]models.Subscription, error) {
	query := `
		SELECT id, client_id, coach_id, package_name, status, starts_at, expires_at, created_at
		FROM subscriptions
		WHERE status = 'active'
		  AND expires_at > NOW()
		  AND expires_at <= NOW() + $1
		ORDER BY expires_at ASC
	`

	rows, err := r.db.Query(ctx, query, window)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscriptions := make([]models.Subscription, 0)
	for rows.Next() {
		var subscription models.Subscription
		if err := rows.Scan(
			&subscription.ID,
			&subscription.ClientID,
			&subscription.CoachID,
			&subscription.PackageName,
			&subscription.Status,
			&subscription.StartsAt,
			&subscription.ExpiresAt,
			&subscription.CreatedAt,
		); err != nil {
			return nil, err
		}

		subscriptions = append(subscriptions, subscription)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subscriptions, nil
}
