package models

import "time"

// NotificationType is a closed numeric tag. The values are part of the wire
// contract with existing clients and must not be reordered.
type NotificationType int

const (
	NotificationMessage              NotificationType = 1
	NotificationNewClient            NotificationType = 2
	NotificationNewCoach             NotificationType = 3
	NotificationPlanAssigned         NotificationType = 4
	NotificationPaymentReceived      NotificationType = 5
	NotificationSubscriptionExpiring NotificationType = 6
	NotificationWorkoutCompleted     NotificationType = 7
	NotificationFeedbackReceived     NotificationType = 8
	NotificationSystemAlert          NotificationType = 9
	NotificationGeneral              NotificationType = 10
	NotificationDailyLogSubmitted    NotificationType = 11
	NotificationDailyLogReviewed     NotificationType = 12
)

type Notification struct {
	ID         int64            `json:"id"`
	ReceiverID int64            `json:"receiver_id"`
	Content    string           `json:"content"`
	Type       NotificationType `json:"type"`
	RefID      int64            `json:"ref_id"`
	IsRead     bool             `json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
}

// NotificationView is the client-facing shape: CreatedAt pre-formatted and a
// humanized TimeAgo computed at read time.
type NotificationView struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	RefID     int64  `json:"refId"`
	Type      int    `json:"type"`
	IsRead    bool   `json:"isRead"`
	TimeAgo   string `json:"timeAgo"`
}
