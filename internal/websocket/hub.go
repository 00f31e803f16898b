package chatws

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"

	websocket "github.com/gofiber/contrib/websocket"

	"github.com/fitverse-app/FitVerseBack/internal/realtime"
	"github.com/fitverse-app/FitVerseBack/internal/services"
)

// Hub tracks live websocket sessions per user and implements
// realtime.SessionRegistry. The run loop is the only goroutine touching the
// clients map.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	pushes     chan push
}

type push struct {
	userID  string
	payload []byte
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

type sender interface {
	SendMessage(ctx context.Context, chatID int64, senderID int64, content string) (*services.MessageDelivery, error)
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		pushes:     make(chan push, 256),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				client.closeSend()
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case p := <-h.pushes:
			h.deliver(p.userID, p.payload)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// PushToUser hands the payload to the run loop without blocking the calling
// request. When the hub is saturated the push is dropped; the user catches up
// from the durable store on the next poll.
func (h *Hub) PushToUser(userID string, payload []byte) {
	select {
	case h.pushes <- push{userID: userID, payload: payload}:
	default:
		log.Printf("hub: push queue full, dropping event for user %s", userID)
	}
}

func (h *Hub) deliver(userID string, payload []byte) {
	set, ok := h.clients[userID]
	if !ok {
		return
	}

	for client := range set {
		if !client.enqueue(payload) {
			delete(set, client)
			client.closeSend()
		}
	}
	if len(set) == 0 {
		delete(h.clients, userID)
	}
}

func (c *Client) ReadPump(service sender) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	senderID, err := strconv.ParseInt(c.userID, 10, 64)
	if err != nil {
		writeError(c, "invalid user")
		return
	}

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type    string `json:"type"`
			ChatID  int64  `json:"chat_id"`
			Content string `json:"content"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			writeError(c, "invalid message payload")
			continue
		}
		if incoming.Type != "message" {
			writeError(c, "unsupported message type")
			continue
		}

		delivery, err := service.SendMessage(context.Background(), incoming.ChatID, senderID, incoming.Content)
		if err != nil {
			writeError(c, "failed to send message")
			continue
		}

		// The receiver's sessions are reached through the publisher; echo to
		// the sender's own sessions so every open tab stays in sync.
		if echo, err := encodeChatMessage(delivery); err == nil {
			c.hub.PushToUser(c.userID, echo)
		}
	}
}

// enqueue offers a payload to the client's write buffer. Returns false when
// the buffer is full or the channel is already closed; it never blocks and
// never panics on a dead client.
func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// closeSend is the only place the send channel is closed. Safe to call more
// than once.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func encodeChatMessage(delivery *services.MessageDelivery) ([]byte, error) {
	raw, err := json.Marshal(delivery.Message)
	if err != nil {
		return nil, err
	}
	return json.Marshal(realtime.Envelope{Event: realtime.EventChatMessage, Data: raw})
}

func writeError(client *Client, message string) {
	raw, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		return
	}
	payload, err := json.Marshal(realtime.Envelope{Event: "error", Data: raw})
	if err != nil {
		return
	}
	if !client.enqueue(payload) {
		client.hub.Unregister(client)
	}
}
