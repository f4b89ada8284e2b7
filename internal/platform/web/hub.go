package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

const (
	// MaxFeedClients caps concurrent websocket subscribers.
	MaxFeedClients = 256

	clientBuffer = 64
	writeWait    = 5 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
)

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
	ip   string
}

// Hub fans simulation events out to websocket clients. Broadcast never
// blocks: when the hub falls behind, events are dropped, and a client
// that cannot keep up is disconnected.
type Hub struct {
	mu      sync.RWMutex
	clients map[*feedClient]struct{}

	broadcast  chan []byte
	register   chan *feedClient
	unregister chan *feedClient
	done       chan struct{}

	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHub creates a hub. Call Run to start delivering.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[*feedClient]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The feed is read-only public data.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Run delivers broadcasts until ctx is done, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("feed client connected", "ip", c.ip, "clients", n)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("feed client disconnected", "ip", c.ip, "clients", n)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
					h.logger.Warn("dropping slow feed client", "ip", c.ip)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues e for every client. It has the signature of a
// simulation hook and returns immediately.
func (h *Hub) Broadcast(e core.Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
	}
}

// Attach forwards sim's events to the hub.
func (h *Hub) Attach(sim *core.Simulation) (detach func()) {
	return sim.Subscribe(h.Broadcast)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams events to it.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.ClientCount() >= MaxFeedClients {
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "err", err)
		return
	}

	c := &feedClient{conn: conn, send: make(chan []byte, clientBuffer), ip: ClientIP(r)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	case <-r.Context().Done():
		conn.Close()
		return
	}
	go h.writePump(c)
	go h.readPump(c)
}

// readPump discards client messages and notices disconnects.
func (h *Hub) readPump(c *feedClient) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *feedClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
