package repository

import (
	"context"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

type PlanRepository struct {
	db DBTX
}

func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(
	ctx context.Context,
	clientID int64,
	coachID int64,
	planType string,
	title string,
) (*models.Plan, error) {
	query := `
		INSERT INTO plans (client_id, coach_id, plan_type, title)
		VALUES ($1, $2, $3, $4)
		RETURNING id, client_id, coach_id, plan_type, title, feedback, completed_at, created_at
	`

	var plan models.Plan
	err := r.db.QueryRow(ctx, query, clientID, coachID, planType, title).Scan(
		&plan.ID,
		&plan.ClientID,
		&plan.CoachID,
		&plan.PlanType,
		&plan.Title,
		&plan.Feedback,
		&plan.CompletedAt,
		&plan.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*models.Plan, error) {
	query := `
		SELECT id, client_id, coach_id, plan_type, title, feedback, completed_at, created_at
		FROM plans
		WHERE id = $1
	`

	var plan models.Plan
	err := r.db.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.ClientID,
		&plan.CoachID,
		&plan.PlanType,
		&plan.Title,
		&plan.Feedback,
		&plan.CompletedAt,
		&plan.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *PlanRepository) ListByClient(ctx context.Context, clientID int64) ([]models.Plan, error) {
	query := `
		SELECT id, client_id, coach_id, plan_type, title, feedback, completed_at, created_at
		FROM plans
		WHERE client_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]models.Plan, 0)
	for rows.Next() {
		var plan models.Plan
		if err := rows.Scan(
			&plan.ID,
			&plan.ClientID,
			&plan.CoachID,
			&plan.PlanType,
			&plan.Title,
			&plan.Feedback,
			&plan.CompletedAt,
			&plan.CreatedAt,
		); err != nil {
			return nil, err
		}

		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// MarkCompleted stamps an exercise plan as done by its owning client.
// Returns false when the plan is missing or not owned by the client.
func (r *PlanRepository) MarkCompleted(ctx context.Context, planID int64, clientID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE plans
		SET completed_at = NOW()
		WHERE id = $1
		  AND client_id = $2
		  AND completed_at IS NULL
	`, planID, clientID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetFeedback stores the client's feedback on their own plan.
func (r *PlanRepository) SetFeedback(
	ctx context.Context,
	planID int64,
	clientID int64,
	feedback string,
) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE plans
		SET feedback = $3
		WHERE id = $1
		  AND client_id = $2
	`, planID, clientID, feedback)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
