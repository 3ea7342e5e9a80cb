package events

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"solana-launchpad/internal/domain"
)

// HubConfig configures WebSocket hub behavior.
type HubConfig struct {
	// WriteTimeout is the per-message write deadline.
	WriteTimeout time.Duration
	// SendBuffer is the per-client outbound queue size. Clients that fall
	// behind by more than this are disconnected.
	SendBuffer int
	// Subscribers, when set, tracks the live subscriber count.
	Subscribers prometheus.Gauge
}

// DefaultHubConfig returns default hub configuration.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		WriteTimeout: 10 * time.Second,
		SendBuffer:   64,
	}
}

// Hub broadcasts graduation events to WebSocket subscribers.
type Hub struct {
	config   HubConfig
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}

	logger *log.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a WebSocket event hub.
func NewHub(config HubConfig, logger *log.Logger) *Hub {
	return &Hub{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

// ServeWS upgrades an HTTP request to a WebSocket subscription.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("ws upgrade failed: %v", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, h.config.SendBuffer),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.gauge()
	h.mu.Unlock()

	go h.writeLoop(c)
	go h.readLoop(c)
}

// Publish broadcasts the event to all connected subscribers. Slow clients
// are dropped rather than blocking the finalizer.
func (h *Hub) Publish(_ context.Context, event *domain.GraduationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
	h.gauge()
	return nil
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all subscribers.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.gauge()
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.drop(c)
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}

func (h *Hub) readLoop(c *client) {
	// Subscribers never send application messages; the read loop only
	// detects disconnects.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.drop(c)
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.gauge()
}

// gauge reports the subscriber count; callers must hold h.mu.
func (h *Hub) gauge() {
	if h.config.Subscribers != nil {
		h.config.Subscribers.Set(float64(len(h.clients)))
	}
}

// Verify interface compliance at compile time.
var _ Sink = (*Hub)(nil)
