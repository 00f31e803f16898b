package models

import "time"

type Subscription struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	CoachID     int64     `json:"coach_id"`
	PackageName string    `json:"package_name"`
	Status      string    `json:"status"`
	StartsAt    time.Time `json:"starts_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type Payment struct {
	ID             int64     `json:"id"`
	SubscriptionID int64     `json:"subscription_id"`
	ClientID       int64     `json:"client_id"`
	CoachID        int64     `json:"coach_id"`
	Amount         float64   `json:"amount"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
