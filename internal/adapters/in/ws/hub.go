// Package ws pushes committed order state changes to connected kitchen
// displays and waitstaff terminals over WebSocket.
//
// Delivery is best-effort and at-most-once per connection: a slow client is
// dropped rather than allowed to stall the rest, and clients reconcile
// through the live-orders query after reconnecting.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"rms/internal/core/ports"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	// Displays run on the restaurant's internal network; the handshake
	// token is the access control, not the origin.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// Client is one connected display.
type Client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan ports.Event
	hub  *Hub
}

// Hub fans events out to all connected clients. It implements
// ports.Notifier; command handlers publish into it after commit.
type Hub struct {
	clients     map[*Client]bool
	broadcast   chan ports.Event
	register    chan *Client
	unregister  chan *Client
	done        chan struct{}
	mutex       sync.RWMutex
	accessToken string
	logger      *slog.Logger
}

// NewHub creates a hub. Connections must present accessToken in the
// access_token query parameter of the handshake request.
func NewHub(accessToken string, logger *slog.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		broadcast:   make(chan ports.Event, 256),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
		accessToken: accessToken,
		logger:      logger,
	}
}

// Run owns the client set. It must be running before the first connection
// and stops when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// done unblocks pump goroutines and in-flight handshakes that
			// would otherwise wait forever on the unserved channels
			close(h.done)
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
				_ = client.conn.Close()
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("display connected",
				slog.String("clientId", client.id.String()),
				slog.Int("clientCount", count),
			)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("display disconnected",
				slog.String("clientId", client.id.String()),
				slog.Int("clientCount", count),
			)

		case event := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- event:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues an event for broadcast. It never blocks; when the
// broadcast buffer is full the event is dropped and clients catch up via
// the live-orders query.
func (h *Hub) Publish(event ports.Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("broadcast buffer full, dropping event", slog.String("type", event.Type))
	}
}

// ClientCount returns the number of connected displays.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Handle upgrades an HTTP request to a WebSocket connection after checking
// the handshake token.
func (h *Hub) Handle(c echo.Context) error {
	if c.QueryParam("access_token") != h.accessToken {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan ports.Event, 256),
		hub:  h,
	}

	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return nil
	}

	go client.writePump()
	go client.readPump()

	return nil
}

// readPump drains inbound frames. Displays send nothing meaningful; the
// read loop exists to process control frames and detect closure.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("display read error",
					slog.String("clientId", c.id.String()),
					slog.String("error", err.Error()),
				)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
