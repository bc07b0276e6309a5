// Package sse fans realtime snapshots out to Server-Sent Events clients.
package sse

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// ClientBuffer is the number of undelivered messages kept per client.
const ClientBuffer = 100

// Message is one Server-Sent Event.
type Message struct {
	ID    int64
	Event string
	Data  any
}

// Manager tracks connected clients and broadcasts messages to them.
// It is safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]chan Message
	seq     atomic.Int64
	logger  *slog.Logger

	// onCount is called with the client count after every add or remove.
	onCount func(int)
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = logger }
}

// WithClientCountHook registers a callback for client count changes.
func WithClientCountHook(fn func(int)) ManagerOption {
	return func(m *Manager) { m.onCount = fn }
}

// NewManager creates an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		clients: make(map[string]chan Message),
		logger:  slog.Default(),
		onCount: func(int) {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddClient registers a client and returns its message channel.
// Registering an ID twice closes the previous channel.
func (m *Manager) AddClient(clientID string) <-chan Message {
	m.mu.Lock()
	if existing, ok := m.clients[clientID]; ok {
		close(existing)
	}
	ch := make(chan Message, ClientBuffer)
	m.clients[clientID] = ch
	n := len(m.clients)
	m.mu.Unlock()

	m.logger.Info("sse client connected", "client", clientID, "clients", n)
	m.onCount(n)
	return ch
}

// RemoveClient unregisters a client and closes its channel. Unknown IDs are ignored.
func (m *Manager) RemoveClient(clientID string) {
	m.mu.Lock()
	ch, ok := m.clients[clientID]
	if ok {
		close(ch)
		delete(m.clients, clientID)
	}
	n := len(m.clients)
	m.mu.Unlock()

	if ok {
		m.logger.Info("sse client disconnected", "client", clientID, "clients", n)
		m.onCount(n)
	}
}

// HasClients reports whether any client is connected.
func (m *Manager) HasClients() bool {
	return m.ClientCount() > 0
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// NextID returns the next message ID.
func (m *Manager) NextID() int64 {
	return m.seq.Add(1)
}

// Broadcast sends msg to every client. A client whose buffer is full misses the message.
func (m *Manager) Broadcast(msg Message) {
	if msg.ID == 0 {
		msg.ID = m.NextID()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for clientID, ch := range m.clients {
		select {
		case ch <- msg:
		default:
			m.logger.Warn("sse client buffer full, dropping message", "client", clientID, "id", msg.ID)
		}
	}
	if len(m.clients) > 0 {
		m.logger.Debug("sse broadcast", "event", msg.Event, "clients", len(m.clients))
	}
}
