package main

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Hub struct {
	mu                sync.Mutex
	clients           map[*Client]struct{}
	broadcastHistory  chan historyPayload
	broadcastStatus   chan StatusResponse
	broadcastReset    chan resetPayload
	broadcastSettings chan settingsPayload
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:           make(map[*Client]struct{}),
		broadcastHistory:  make(chan historyPayload, 32),
		broadcastStatus:   make(chan StatusResponse, 32),
		broadcastReset:    make(chan resetPayload, 8),
		broadcastSettings: make(chan settingsPayload, 8),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastHistory:
			h.broadcast("history", mustMarshal(payload))
		case payload := <-h.broadcastStatus:
			h.broadcast("status", mustMarshal(payload))
		case payload := <-h.broadcastReset:
			h.broadcast("reset", mustMarshal(payload))
		case payload := <-h.broadcastSettings:
			h.broadcast("settings", mustMarshal(payload))
		}
	}
}

func (h *Hub) broadcast(msgType string, payload json.RawMessage) {
	h.mu.Lock()
	for client := range h.clients {
		client.sendJSON(wsMessage{Type: msgType, Payload: payload})
	}
	h.mu.Unlock()
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

const wsPingWriteTimeout = 5 * time.Second

func wsPingInterval() time.Duration {
	secs := GetConfig().WsPingIntervalSec
	if secs <= 0 {
		secs = 30
	}
	return time.Duration(secs) * time.Second
}

// writePump drains the client's send queue onto conn. Connections that stay
// quiet for a full ping interval get a ping control frame so proxies do not
// drop them between moves.
func (c *Client) writePump(conn *websocket.Conn) error {
	interval := wsPingInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	lastWrite := time.Now()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < interval {
				continue
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsPingWriteTimeout)); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
