package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Conn is the slice of *websocket.Conn the hub needs. Tests substitute their
// own implementation.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Hub owns the live connection map: one connection per user id, created at
// service start and torn down at shutdown. Delivery is best effort; a failed
// write removes the connection and is never surfaced to the caller.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*client
}

type client struct {
	userID string
	conn   Conn
	mu     sync.Mutex // serializes writes so per-user message order holds
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]*client)}
}

// Register attaches a connection for the user. A later connection under the
// same id silently replaces the earlier one, which is closed.
func (h *Hub) Register(userID string, conn Conn) {
	cl := &client{userID: userID, conn: conn}

	h.mu.Lock()
	old := h.conns[userID]
	h.conns[userID] = cl
	h.mu.Unlock()

	if old != nil {
		_ = old.conn.Close()
	}
}

// Unregister removes the connection, but only if it is still the one mapped
// to the user (a replacement connection must survive the old one's teardown).
func (h *Hub) Unregister(userID string, conn Conn) {
	h.mu.Lock()
	if cl, ok := h.conns[userID]; ok && cl.conn == conn {
		delete(h.conns, userID)
	}
	h.mu.Unlock()
}

func (h *Hub) SendToUser(userID string, event Event) {
	h.mu.RLock()
	cl := h.conns[userID]
	h.mu.RUnlock()

	if cl == nil {
		return
	}

	if err := cl.write(event); err != nil {
		log.Printf("websocket send to user %s failed, dropping connection: %v", userID, err)
		h.teardown(cl)
	}
}

// Broadcast fans an event out to every connected user. The connection map is
// snapshotted first; failed connections are removed only after the pass.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	snapshot := make([]*client, 0, len(h.conns))
	for _, cl := range h.conns {
		snapshot = append(snapshot, cl)
	}
	h.mu.RUnlock()

	var failed []*client
	for _, cl := range snapshot {
		if err := cl.write(event); err != nil {
			failed = append(failed, cl)
		}
	}

	for _, cl := range failed {
		log.Printf("websocket broadcast to user %s failed, dropping connection", cl.userID)
		h.teardown(cl)
	}
}

// Connected reports whether the user currently has a live connection.
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

// Shutdown closes every connection and empties the map.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[string]*client)
	h.mu.Unlock()

	for _, cl := range conns {
		_ = cl.conn.Close()
	}
}

func (h *Hub) teardown(cl *client) {
	h.mu.Lock()
	if cur, ok := h.conns[cl.userID]; ok && cur == cl {
		delete(h.conns, cl.userID)
	}
	h.mu.Unlock()

	_ = cl.conn.Close()
}

func (cl *client) write(event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return cl.conn.WriteMessage(websocket.TextMessage, payload)
}
