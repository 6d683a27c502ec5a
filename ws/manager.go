package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var ErrNotConnected = errors.New("user not connected")

// client serializes writes; gorilla connections allow one writer at a time.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Manager keeps track of dashboard websocket connections per user. A user
// may have several open at once.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]map[*websocket.Conn]*client // userID -> conns
}

func NewManager() *Manager {
	return &Manager{connections: make(map[string]map[*websocket.Conn]*client)}
}

// Register adds a connection for userID.
func (m *Manager) Register(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns, ok := m.connections[userID]
	if !ok {
		conns = make(map[*websocket.Conn]*client)
		m.connections[userID] = conns
	}
	conns[conn] = &client{conn: conn}
}

// Unregister closes and removes one connection of userID.
func (m *Manager) Unregister(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns, ok := m.connections[userID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; ok {
		_ = conn.Close()
		delete(conns, conn)
	}
	if len(conns) == 0 {
		delete(m.connections, userID)
	}
}

// SendToUser writes payload to every connection of userID and returns the
// first write error.
func (m *Manager) SendToUser(userID string, payload []byte) error {
	m.mu.RLock()
	clients := make([]*client, 0, len(m.connections[userID]))
	for _, c := range m.connections[userID] {
		clients = append(clients, c)
	}
	m.mu.RUnlock()
	if len(clients) == 0 {
		return ErrNotConnected
	}

	var first error
	for _, c := range clients {
		if err := c.write(payload); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// IsConnected returns whether userID has an open connection.
func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections[userID]) > 0
}

// List returns the ids of connected users.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.connections))
	for id := range m.connections {
		ids = append(ids, id)
	}
	return ids
}
