package services

import (
	"encoding/json"
	"sync"
	"time"

	"healthtracker/logging"
	"healthtracker/metrics"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// ActivityEvent is pushed to a user's open dashboards when an entry is created.
type ActivityEvent struct {
	Kind  string `json:"kind"` // workout.created | nutrition.created
	Date  string `json:"date"`
	Entry any    `json:"entry"`
}

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn

	writeMu sync.Mutex
}

// Write serializes writers; gorilla connections allow one concurrent writer.
func (c *WSClient) Write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(messageType, data)
}

type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
	metrics.RealtimeClients.Inc()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	set := h.clients[c.UserID]
	_, ok := set[c]
	if ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	if ok {
		metrics.RealtimeClients.Dec()
	}
	_ = c.Conn.Close()
}

// ClientCount returns the number of open connections for userID.
func (h *RealtimeHub) ClientCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Broadcast sends ev to every connection of userID. A nil hub is a no-op.
func (h *RealtimeHub) Broadcast(userID uint, ev ActivityEvent) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		logging.Error().Err(err).Str("kind", ev.Kind).Msg("encode realtime event")
		return
	}

	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Write(websocket.TextMessage, msg); err != nil {
			logging.Debug().Err(err).Uint("user_id", userID).Msg("drop realtime client")
			h.Unregister(c)
		}
	}
}
