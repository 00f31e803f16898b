package models

import "time"

type DailyLog struct {
	ID            int64     `json:"id"`
	ClientID      int64     `json:"client_id"`
	CoachID       *int64    `json:"coach_id"`
	CurrentWeight float64   `json:"current_weight"`
	Notes         *string   `json:"notes"`
	PhotoURL      *string   `json:"photo_url"`
	Feedback      *string   `json:"feedback"`
	Rating        *int      `json:"rating"`
	IsReviewed    bool      `json:"is_reviewed"`
	LogDate       time.Time `json:"log_date"`
}
