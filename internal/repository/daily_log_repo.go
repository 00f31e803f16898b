package repository

import (
	"context"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

type CreateDailyLogInput struct {
	ClientID      int64
	CoachID       *int64
	CurrentWeight float64
	Notes         *string
	PhotoURL      *string
}

type DailyLogRepository struct {
	db DBTX
}

func NewDailyLogRepository(db DBTX) *DailyLogRepository {
	return &DailyLogRepository{db: db}
}

func (r *DailyLogRepository) Create(
	ctx context.Context,
	input CreateDailyLogInput,
) (*models.DailyLog, error) {
	query := `
		INSERT INTO daily_logs (client_id, coach_id, current_weight, notes, photo_url, is_reviewed)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id, client_id, coach_id, current_weight, notes, photo_url,
		          feedback, rating, is_reviewed, log_date
	`

	var log models.DailyLog
	err := r.db.QueryRow(
		ctx,
		query,
		input.ClientID,
		input.CoachID,
		input.CurrentWeight,
		input.Notes,
		input.PhotoURL,
	).Scan(
		&log.ID,
		&log.ClientID,
		&log.CoachID,
		&log.CurrentWeight,
		&log.Notes,
		&log.PhotoURL,
		&log.Feedback,
		&log.Rating,
		&log.IsReviewed,
		&log.LogDate,
	)
	if err != nil {
		return nil, err
	}

	return &log, nil
}

func (r *DailyLogRepository) GetByID(ctx context.Context, id int64) (*models.DailyLog, error) {
	query := `
		SELECT id, client_id, coach_id, current_weight, notes, photo_url,
		       feedback, rating, is_reviewed, log_date
		FROM daily_logs
		WHERE id = $1
	`

	var log models.DailyLog
	err := r.db.QueryRow(ctx, query, id).Scan(
		&log.ID,
		&log.ClientID,
		&log.CoachID,
		&log.CurrentWeight,
		&log.Notes,
		&log.PhotoURL,
		&log.Feedback,
		&log.Rating,
		&log.IsReviewed,
		&log.LogDate,
	)
	if err != nil {
		return nil, err
	}

	return &log, nil
}

func (r *DailyLogRepository) ListByClient(ctx context.Context, clientID int64) ([]models.DailyLog, error) {
	return r.list(ctx, `client_id = $1`, clientID)
}

func (r *DailyLogRepository) ListByCoach(ctx context.Context, coachID int64) ([]models.DailyLog, error) {
	return r.list(ctx, `coach_id = $1`, coachID)
}

func (r *DailyLogRepository) list(ctx context.Context, where string, arg any) ([]models.DailyLog, error) {
	query := `
		SELECT id, client_id, coach_id, current_weight, notes, photo_url,
		       feedback, rating, is_reviewed, log_date
		FROM daily_logs
		WHERE ` + where + `
		ORDER BY log_date DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]models.DailyLog, 0)
	for rows.Next() {
		var log models.DailyLog
		if err := rows.Scan(
			&log.ID,
			&log.ClientID,
			&log.CoachID,
			&log.CurrentWeight,
			&log.Notes,
			&log.PhotoURL,
			&log.Feedback,
			&log.Rating,
			&log.IsReviewed,
			&log.LogDate,
		); err != nil {
			return nil, err
		}

		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// Review stores the coach's feedback, but only on a log that is assigned to
// that coach. Returns false when the log is missing or belongs to another
// coach.
func (r *DailyLogRepository) Review(
	ctx context.Context,
	logID int64,
	coachID int64,
	feedback string,
	rating int,
) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE daily_logs
		SET feedback = $3, rating = $4, is_reviewed = TRUE
		WHERE id = $1
		  AND coach_id = $2
	`, logID, coachID, feedback, rating)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
