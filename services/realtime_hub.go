package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 25 * time.Second
	wsSendBuffer = 16
)

// WSClient is one dashboard session. All writes to the connection go through
// writePump, the connection's single writer; broadcasts enqueue on send and
// never touch the conn directly.
type WSClient struct {
	UserID string
	Conn   *websocket.Conn
	send   chan []byte
}

func NewWSClient(userID string, conn *websocket.Conn) *WSClient {
	return &WSClient{
		UserID: userID,
		Conn:   conn,
		send:   make(chan []byte, wsSendBuffer),
	}
}

// writePump drains the send queue and keeps the connection alive with
// periodic pings. It exits when the send channel closes or a write fails,
// closing the connection either way.
func (c *WSClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// RealtimeHub fans saved-analysis events out to a user's connected dashboard
// sessions, so the nutrition view updates when the background capture client
// uploads a photo the user never opened the app for.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
}

// Unregister removes the session and closes its send queue, which stops the
// write pump. The channel is closed under the write lock so no broadcast can
// still be enqueueing; a second Unregister for the same client is a no-op.
func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[c.UserID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
	close(c.send)
}

// BroadcastAnalysisSaved enqueues the event for every session of the user.
// Delivery is best-effort: a session whose queue is full misses the event
// rather than blocking the save path.
func (h *RealtimeHub) BroadcastAnalysisSaved(userID string, analysis any) {
	msg, _ := json.Marshal(map[string]any{
		"kind":     "analysis.saved",
		"analysis": analysis,
	})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- msg:
		default:
		}
	}
}
