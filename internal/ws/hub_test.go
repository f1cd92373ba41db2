package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kiwari-pos/digimenu/internal/auth"
	"github.com/kiwari-pos/digimenu/internal/enum"
	"github.com/kiwari-pos/digimenu/internal/events"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub, room string) *Client {
	return &Client{
		hub:  hub,
		room: room,
		send: make(chan []byte, 256),
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub()
	go hub.Run(ctx)
	return hub
}

func TestHubRegistration(t *testing.T) {
	hub := startHub(t)
	client := mockClient(hub, StaffRoom)

	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if !hub.rooms[StaffRoom][client] {
		t.Fatal("client not registered in staff room")
	}
}

func TestHubCleanupEmptyRoom(t *testing.T) {
	hub := startHub(t)
	room := OrderRoom(uuid.New())
	client1 := mockClient(hub, room)
	client2 := mockClient(hub, room)

	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client1
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if len(hub.rooms[room]) != 1 {
		t.Fatalf("expected 1 client after first unregister, got %d", len(hub.rooms[room]))
	}
	hub.mu.RUnlock()

	hub.unregister <- client2
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if hub.rooms[room] != nil {
		t.Fatal("room should be deleted when last client unregisters")
	}
}

func TestPublishReachesStaffAndOrderRoom(t *testing.T) {
	hub := startHub(t)

	orderID := uuid.New()
	staff := mockClient(hub, StaffRoom)
	follower := mockClient(hub, OrderRoom(orderID))
	other := mockClient(hub, OrderRoom(uuid.New()))

	hub.register <- staff
	hub.register <- follower
	hub.register <- other
	time.Sleep(10 * time.Millisecond)

	e := events.Event{Type: enum.EventOrderStatusChanged, OrderID: orderID, Status: "confirmed", Version: 2}
	if err := hub.Publish(context.Background(), e); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for name, c := range map[string]*Client{"staff": staff, "follower": follower} {
		select {
		case raw := <-c.send:
			var msg Message
			if err := json.Unmarshal(raw, &msg); err != nil {
				t.Fatalf("%s: unmarshal: %v", name, err)
			}
			if msg.Type != enum.EventOrderStatusChanged {
				t.Errorf("%s: expected type %q, got %q", name, enum.EventOrderStatusChanged, msg.Type)
			}
			var got events.Event
			if err := json.Unmarshal(msg.Payload, &got); err != nil {
				t.Fatalf("%s: unmarshal payload: %v", name, err)
			}
			if got.OrderID != orderID || got.Version != 2 {
				t.Errorf("%s: unexpected payload %s", name, msg.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("%s did not receive message", name)
		}
	}

	select {
	case <-other.send:
		t.Fatal("client of another order should not receive message")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRegisterAfterShutdownDoesNotBlock(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	client := mockClient(hub, StaffRoom)
	done := make(chan bool, 1)
	go func() {
		ok := hub.Register(client)
		hub.Unregister(client)
		done <- ok
	}()

	select {
	case ok := <-done:
		if ok {
			t.Fatal("Register should report false on a stopped hub")
		}
	case <-time.After(time.Second):
		t.Fatal("Register/Unregister blocked after hub stopped")
	}
}

func TestBroadcastGivesUpOnCancelledContext(t *testing.T) {
	// hub not running and queue full
	hub := NewHub()
	for i := 0; i < cap(hub.broadcast); i++ {
		hub.broadcast <- &roomMessage{Room: StaffRoom}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := hub.BroadcastToRoom(ctx, StaffRoom, Message{Type: "x"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolveRoom(t *testing.T) {
	clientID := uuid.New()
	orderID := uuid.New()
	owner := func(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
		if id == orderID {
			return clientID, nil
		}
		return uuid.Nil, pgx.ErrNoRows
	}

	staff := &auth.Claims{UserID: uuid.New(), Role: enum.RoleStaff}
	manager := &auth.Claims{UserID: uuid.New(), Role: enum.RoleManager}
	client := &auth.Claims{UserID: clientID, Role: enum.RoleClient}
	stranger := &auth.Claims{UserID: uuid.New(), Role: enum.RoleClient}

	tests := []struct {
		name     string
		claims   *auth.Claims
		orderID  string
		wantRoom string
		wantCode int
	}{
		{"staff feed", staff, "", StaffRoom, http.StatusOK},
		{"manager feed", manager, "", StaffRoom, http.StatusOK},
		{"staff follows order", staff, orderID.String(), OrderRoom(orderID), http.StatusOK},
		{"client follows own order", client, orderID.String(), OrderRoom(orderID), http.StatusOK},
		{"client needs order id", client, "", "", http.StatusForbidden},
		{"client of another order", stranger, orderID.String(), "", http.StatusForbidden},
		{"unknown order", client, uuid.New().String(), "", http.StatusNotFound},
		{"bad order id", client, "nope", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, code, _ := resolveRoom(context.Background(), tt.claims, tt.orderID, owner)
			if code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, code)
			}
			if room != tt.wantRoom {
				t.Errorf("expected room %q, got %q", tt.wantRoom, room)
			}
		})
	}
}
