package net

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Hub tracks the websocket viewers attached to the mirror and fans
// messages out to them. All writes go through the hub lock, so a
// connection never sees concurrent writers.
type Hub struct {
	conns map[*websocket.Conn]bool
	mu    sync.Mutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
	}
}

// Encoder produces the message to send. The hub calls it under its lock,
// so whatever it reads is ordered against every other send.
type Encoder func() ([]byte, error)

// Add sends conn the output of initial and registers it, both under the
// hub lock, so no broadcast can slip in between encoding and registering.
func (h *Hub) Add(conn *websocket.Conn, initial Encoder) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if initial != nil {
		data, err := initial()
		if err != nil {
			return err
		}
		if err := write(conn, data); err != nil {
			return err
		}
	}
	h.conns[conn] = true
	log.Printf("[MIRROR] viewer connected: %s", conn.RemoteAddr())
	return nil
}

// Remove forgets conn. It does not close it.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conn] {
		delete(h.conns, conn)
		log.Printf("[MIRROR] viewer disconnected: %s", conn.RemoteAddr())
	}
}

// Len returns the number of attached viewers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast encodes once under the hub lock and sends the result to every
// viewer. Viewers that fail are dropped.
func (h *Hub) Broadcast(encode Encoder) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.conns) == 0 {
		return nil
	}
	data, err := encode()
	if err != nil {
		return err
	}
	for conn := range h.conns {
		if err := write(conn, data); err != nil {
			log.Printf("[MIRROR] error sending to %s: %v", conn.RemoteAddr(), err)
			delete(h.conns, conn)
			conn.Close()
		}
	}
	return nil
}

// CloseAll disconnects every viewer.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(writeWait))
		conn.Close()
		delete(h.conns, conn)
	}
}

func write(conn *websocket.Conn, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
