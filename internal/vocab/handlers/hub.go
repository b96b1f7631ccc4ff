package handlers

import (
	"sync"
	"time"

	"github.com/architect/vocab-trainer/internal/vocab/session"
)

// Hub holds in-flight answer sessions in memory. Sessions are ephemeral:
// navigating away or letting the TTL lapse discards progress without
// persisting, matching the "progress is not saved" warning in the UI.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
}

type entry struct {
	session *session.Session
	userID  string
}

// NewHub creates a hub; sessions older than ttl are pruned lazily
func NewHub(ttl time.Duration) *Hub {
	return &Hub{
		sessions: make(map[string]*entry),
		ttl:      ttl,
	}
}

// Put registers a session for a user
func (h *Hub) Put(userID string, s *session.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.prune()
	h.sessions[s.ID] = &entry{session: s, userID: userID}
}

// Get returns the session if it exists and belongs to the user
func (h *Hub) Get(userID, sessionID string) (*session.Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.prune()
	e, ok := h.sessions[sessionID]
	if !ok || e.userID != userID {
		return nil, false
	}
	return e.session, true
}

// Delete drops a session without persisting anything
func (h *Hub) Delete(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.sessions, sessionID)
}

// prune removes expired sessions; callers hold the lock
func (h *Hub) prune() {
	if h.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-h.ttl)
	for id, e := range h.sessions {
		if e.session.CreatedAt.Before(cutoff) {
			delete(h.sessions, id)
		}
	}
}
