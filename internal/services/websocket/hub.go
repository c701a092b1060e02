package websocket

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"bikedash/internal/logger"
)

// Session is one live dashboard connection. Its date range lives in the
// connection's own goroutine; sessions never share state.
type Session struct {
	ID   uuid.UUID
	Conn *websocket.Conn
}

// HubService keeps track of live dashboard sessions.
type HubService struct {
	sessions   map[uuid.UUID]*Session
	register   chan *Session
	unregister chan *Session
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *logger.Logger
}

func NewHubService(logger *logger.Logger) *HubService {
	return &HubService{
		sessions:   make(map[uuid.UUID]*Session),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations until ctx is done, then closes every session.
func (h *HubService) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case s := <-h.register:
			h.mutex.Lock()
			h.sessions[s.ID] = s
			total := len(h.sessions)
			h.mutex.Unlock()
			h.logger.Info("Session %s connected. Total: %d", s.ID, total)

		case s := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.sessions[s.ID]; ok {
				delete(h.sessions, s.ID)
				s.Conn.Close()
			}
			total := len(h.sessions)
			h.mutex.Unlock()
			h.logger.Info("Session %s disconnected. Total: %d", s.ID, total)

		case <-ctx.Done():
			h.mutex.Lock()
			for id, s := range h.sessions {
				s.Conn.Close()
				delete(h.sessions, id)
			}
			h.mutex.Unlock()
			return
		}
	}
}

// Register adds a connection as a new session.
func (h *HubService) Register(conn *websocket.Conn) *Session {
	s := &Session{ID: uuid.New(), Conn: conn}
	select {
	case h.register <- s:
	case <-h.done:
		conn.Close()
	}
	return s
}

// Unregister removes a session and closes its connection.
func (h *HubService) Unregister(s *Session) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}

// SessionCount returns the number of live sessions.
func (h *HubService) SessionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.sessions)
}
