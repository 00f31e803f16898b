package models

import "time"

const (
	PlanTypeExercise = "exercise"
	PlanTypeDiet     = "diet"
)

type Plan struct {
	ID          int64      `json:"id"`
	ClientID    int64      `json:"client_id"`
	CoachID     int64      `json:"coach_id"`
	PlanType    string     `json:"plan_type"`
	Title       string     `json:"title"`
	Feedback    *string    `json:"feedback"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
