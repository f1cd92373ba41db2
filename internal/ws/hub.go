package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kiwari-pos/digimenu/internal/events"
)

// StaffRoom receives every order event.
const StaffRoom = "staff"

// OrderRoom is the room for a single order's events.
func OrderRoom(id uuid.UUID) string {
	return "order:" + id.String()
}

// Message is a WebSocket frame sent to subscribers
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// roomMessage routes a message to one room
type roomMessage struct {
	Room    string
	Message Message
}

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	// Registered clients by room
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	broadcast chan *roomMessage

	// closed when Run returns
	done chan struct{}

	mu sync.RWMutex
}

var _ events.Publisher = (*Hub)(nil)

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *roomMessage, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop. It returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.room] == nil {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case rm := <-h.broadcast:
			message, err := json.Marshal(rm.Message)
			if err != nil {
				continue
			}

			h.mu.Lock()
			for client := range h.rooms[rm.Room] {
				select {
				case client.send <- message:
				default:
					// send buffer full, drop the client
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds client to its room. It reports false when the hub has
// stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes client from its room. It is a no-op once the hub has
// stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.rooms[client.room]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.room)
	}
}

// BroadcastToRoom queues a message for every client in room. It blocks only
// while the broadcast queue is full, and gives up when ctx is done.
func (h *Hub) BroadcastToRoom(ctx context.Context, room string, msg Message) error {
	select {
	case h.broadcast <- &roomMessage{Room: room, Message: msg}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish implements events.Publisher. The event goes to the staff room and
// to the room of the order it belongs to.
func (h *Hub) Publish(ctx context.Context, e events.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := Message{Type: e.Type, Payload: payload}

	if err := h.BroadcastToRoom(ctx, StaffRoom, msg); err != nil {
		return fmt.Errorf("broadcast to %s: %w", StaffRoom, err)
	}
	room := OrderRoom(e.OrderID)
	if err := h.BroadcastToRoom(ctx, room, msg); err != nil {
		return fmt.Errorf("broadcast to %s: %w", room, err)
	}
	return nil
}
