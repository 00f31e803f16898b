package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

type notificationCreator interface {
	Create(ctx context.Context, receiverID int64, content string, notificationType models.NotificationType, refID int64) (*models.Notification, error)
	GetUnreadCount(ctx context.Context, userID int64) (int, error)
}

type notificationPusher interface {
	PushNotification(userID int64, view models.NotificationView)
	PushUnreadCount(userID int64, count int)
}

// Notifier maps domain events to notifications. Every trigger persists first
// and then pushes to the receiver's live sessions; a failed push never fails
// the trigger, the record is durable and surfaces on the next poll.
type Notifier struct {
	notifications notificationCreator
	publisher     notificationPusher
}

func NewNotifier(notifications notificationCreator, publisher notificationPusher) *Notifier {
	return &Notifier{
		notifications: notifications,
		publisher:     publisher,
	}
}

func (n *Notifier) MessageReceived(ctx context.Context, receiverID int64, senderName string, messageID int64) error {
	return n.send(ctx, receiverID,
		fmt.Sprintf("New message from %s", senderName),
		models.NotificationMessage, messageID)
}

func (n *Notifier) NewClient(ctx context.Context, coachID int64, clientName string, clientID int64) error {
	return n.send(ctx, coachID,
		fmt.Sprintf("New client assigned: %s", clientName),
		models.NotificationNewClient, clientID)
}

func (n *Notifier) NewCoach(ctx context.Context, clientID int64, coachName string, coachID int64) error {
	return n.send(ctx, clientID,
		fmt.Sprintf("You have been assigned to coach %s", coachName),
		models.NotificationNewCoach, coachID)
}

func (n *Notifier) PlanAssigned(ctx context.Context, clientID int64, planType string, planID int64) error {
	return n.send(ctx, clientID,
		fmt.Sprintf("New %s plan assigned to you", planType),
		models.NotificationPlanAssigned, planID)
}

func (n *Notifier) PaymentReceived(ctx context.Context, userID int64, amount float64, paymentID int64) error {
	return n.send(ctx, userID,
		fmt.Sprintf("Payment of $%.2f received successfully", amount),
		models.NotificationPaymentReceived, paymentID)
}

func (n *Notifier) SubscriptionExpiring(ctx context.Context, userID int64, daysLeft int, subscriptionID int64) error {
	return n.send(ctx, userID,
		fmt.Sprintf("Your subscription expires in %d days", daysLeft),
		models.NotificationSubscriptionExpiring, subscriptionID)
}

func (n *Notifier) WorkoutCompleted(ctx context.Context, coachID int64, clientName string, workoutID int64) error {
	return n.send(ctx, coachID,
		fmt.Sprintf("%s completed a workout", clientName),
		models.NotificationWorkoutCompleted, workoutID)
}

func (n *Notifier) FeedbackReceived(ctx context.Context, userID int64, fromName string, feedbackID int64) error {
	return n.send(ctx, userID,
		fmt.Sprintf("New feedback from %s", fromName),
		models.NotificationFeedbackReceived, feedbackID)
}

func (n *Notifier) DailyLogSubmitted(ctx context.Context, coachID int64, clientName string, logID int64) error {
	return n.send(ctx, coachID,
		fmt.Sprintf("New Daily Log submitted by %s", clientName),
		models.NotificationDailyLogSubmitted, logID)
}

func (n *Notifier) DailyLogReviewed(ctx context.Context, clientID int64, coachName string, logID int64) error {
	return n.send(ctx, clientID,
		fmt.Sprintf("Your Daily Log has been reviewed by %s", coachName),
		models.NotificationDailyLogReviewed, logID)
}

func (n *Notifier) SystemAlert(ctx context.Context, userID int64, message string, refID int64) error {
	return n.send(ctx, userID, message, models.NotificationSystemAlert, refID)
}

func (n *Notifier) General(ctx context.Context, userID int64, message string, refID int64) error {
	return n.send(ctx, userID, message, models.NotificationGeneral, refID)
}

func (n *Notifier) send(
	ctx context.Context,
	receiverID int64,
	content string,
	notificationType models.NotificationType,
	refID int64,
) error {
	notification, err := n.notifications.Create(ctx, receiverID, content, notificationType, refID)
	if err != nil {
		return err
	}

	n.publisher.PushNotification(receiverID, NotificationViewOf(notification, time.Now().UTC()))

	count, err := n.notifications.GetUnreadCount(ctx, receiverID)
	if err != nil {
		log.Printf("unread count after notification %d: %v", notification.ID, err)
		return nil
	}
	n.publisher.PushUnreadCount(receiverID, count)

	return nil
}
