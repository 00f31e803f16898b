package models

import "time"

type Chat struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	CoachID   int64     `json:"coach_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OtherParticipant returns the participant that is not userID.
func (c *Chat) OtherParticipant(userID int64) int64 {
	if userID == c.ClientID {
		return c.CoachID
	}
	return c.ClientID
}

func (c *Chat) HasParticipant(userID int64) bool {
	return userID == c.ClientID || userID == c.CoachID
}

type Message struct {
	ID         int64     `json:"id"`
	ChatID     int64     `json:"chat_id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	SentAt     time.Time `json:"sent_at"`
}

type ChatSummary struct {
	Chat
	LastMessage *Message `json:"last_message,omitempty"`
	UnreadCount int      `json:"unread_count"`
}
