// Package realtime fans out domain events to a user's live sessions. Delivery
// is best effort: a user with no open session is a silent no-op, and no push
// failure ever reaches the caller.
package realtime

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

// Event names on the wire.
const (
	EventNotification      = "notification"
	EventNotificationCount = "notification_count"
	EventChatMessage       = "chat_message"
)

// SessionRegistry is the transport's user-to-connections map. PushToUser
// delivers the payload to every live session of the user and does nothing
// when there is none.
type SessionRegistry interface {
	PushToUser(userID string, payload []byte)
}

type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type Publisher struct {
	registry SessionRegistry
}

func NewPublisher(registry SessionRegistry) *Publisher {
	return &Publisher{registry: registry}
}

func (p *Publisher) PushNotification(userID int64, view models.NotificationView) {
	p.push(userID, EventNotification, view)
}

func (p *Publisher) PushUnreadCount(userID int64, count int) {
	p.push(userID, EventNotificationCount, count)
}

func (p *Publisher) PushChatMessage(userID int64, message *models.Message) {
	p.push(userID, EventChatMessage, message)
}

func (p *Publisher) push(userID int64, event string, data any) {
	if p == nil || p.registry == nil {
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("realtime: encode %s payload: %v", event, err)
		return
	}
	payload, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		log.Printf("realtime: encode %s envelope: %v", event, err)
		return
	}

	p.registry.PushToUser(strconv.FormatInt(userID, 10), payload)
}
