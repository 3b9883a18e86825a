package bridge

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// conn is one registered client connection. gorilla connections do not
// support concurrent writers, so every write holds the per-connection lock.
type conn struct {
	id      string
	ws      *websocket.Conn
	writeMu sync.Mutex
}

func (c *conn) writeMessage(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Hub holds the set of connected UI clients and fans updates out to them.
// The registry is the only shared mutable state in the companion core; all
// access goes through the hub's mutex.
type Hub struct {
	mu     sync.Mutex
	conns  map[string]*conn
	logger *zap.Logger
}

// NewHub creates an empty hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]*conn),
		logger: logger,
	}
}

// add registers a connection under the given id
func (h *Hub) add(id string, ws *websocket.Conn) *conn {
	c := &conn{id: id, ws: ws}
	h.mu.Lock()
	h.conns[id] = c
	total := len(h.conns)
	h.mu.Unlock()

	h.logger.Info("client connected", zap.String("id", id), zap.Int("total", total))
	return c
}

// remove drops a connection and closes its socket
func (h *Hub) remove(id string) {
	h.mu.Lock()
	c, ok := h.conns[id]
	if ok {
		delete(h.conns, id)
	}
	total := len(h.conns)
	h.mu.Unlock()

	if ok {
		c.ws.Close()
		h.logger.Info("client disconnected", zap.String("id", id), zap.Int("total", total))
	}
}

// Broadcast serializes the message once and writes it to every registered
// connection. A failed write drops only that connection.
func (h *Hub) Broadcast(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal broadcast", zap.Error(err))
		return
	}

	h.mu.Lock()
	conns := make([]*conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.writeMessage(data); err != nil {
			h.logger.Debug("write failed, dropping client",
				zap.String("id", c.id), zap.Error(err))
			h.remove(c.id)
		}
	}
}

// ConnectionCount returns the number of registered connections
func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Stop closes every connection and empties the registry
func (h *Hub) Stop() {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[string]*conn)
	h.mu.Unlock()

	for _, c := range conns {
		c.ws.Close()
	}
}
