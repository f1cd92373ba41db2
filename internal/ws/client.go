package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/kiwari-pos/digimenu/internal/auth"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // access is checked via JWT
	},
}

// OrderOwnerFunc returns the client id that placed an order, or
// pgx.ErrNoRows when the order does not exist.
type OrderOwnerFunc func(ctx context.Context, orderID uuid.UUID) (uuid.UUID, error)

// Client represents a single WebSocket connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	room string
	send chan []byte
	log  logrus.FieldLogger
}

// ReadPump pumps messages from the WebSocket connection to the hub.
// Subscribers never send anything; this only detects disconnects.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("websocket read")
			}
			break
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWS handles WS /ws/orders?token=JWT[&order_id=UUID].
//
// Staff without order_id join the staff room. With order_id the caller joins
// that order's room; a CLIENT may only follow its own orders.
func ServeWS(hub *Hub, jwtSecret string, owner OrderOwnerFunc, logger logrus.FieldLogger, w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := auth.ValidateToken(jwtSecret, tokenStr)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	room, status, msg := resolveRoom(r.Context(), claims, r.URL.Query().Get("order_id"), owner)
	if status != http.StatusOK {
		if status == http.StatusInternalServerError {
			logger.WithField("user_id", claims.UserID).Error("websocket: " + msg)
			msg = "internal server error"
		}
		http.Error(w, msg, status)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Warn("websocket upgrade")
		return
	}

	client := &Client{
		hub:  hub,
		conn: conn,
		room: room,
		send: make(chan []byte, 256),
		log:  logger.WithField("room", room),
	}
	if !client.hub.Register(client) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// resolveRoom picks the room for claims and an optional order id. It returns
// http.StatusOK on success, otherwise the status and message to reply with.
func resolveRoom(ctx context.Context, claims *auth.Claims, orderIDStr string, owner OrderOwnerFunc) (string, int, string) {
	staff := claims.IsStaff()

	if orderIDStr == "" {
		if !staff {
			return "", http.StatusForbidden, "order_id is required"
		}
		return StaffRoom, http.StatusOK, ""
	}

	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		return "", http.StatusBadRequest, "invalid order_id"
	}
	if staff {
		return OrderRoom(orderID), http.StatusOK, ""
	}

	clientID, err := owner(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", http.StatusNotFound, "order not found"
		}
		return "", http.StatusInternalServerError, "lookup order owner: " + err.Error()
	}
	if clientID != claims.UserID {
		return "", http.StatusForbidden, "order access denied"
	}
	return OrderRoom(orderID), http.StatusOK, ""
}
