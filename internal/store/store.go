// internal/store/store.go
//
// In-memory registry of active game sessions, keyed by chat identity.
// At most one session exists per chat at any time; Create performs its
// existence check and insert under one lock so two concurrent start
// requests can never produce two sessions.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; durability is intentionally
//     out of scope for sessions.

package store

import (
	"sync"

	"github.com/wordseek/wordseek/internal/game"
)

// Registry maps chat IDs to their active sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

// NewRegistry constructs an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*game.Session)}
}

// Create inserts a fresh session for chatID built around secret.
// Returns game.ErrSessionActive if the chat already has one; the
// compare-and-insert is atomic.
func (r *Registry) Create(chatID, secret string, maxAttempts int) (*game.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[chatID]; ok {
		return nil, game.ErrSessionActive
	}
	s := game.NewSession(secret, maxAttempts)
	r.sessions[chatID] = s
	return s, nil
}

// Get returns the chat's active session, or nil if there is none.
func (r *Registry) Get(chatID string) *game.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[chatID]
}

// Remove deletes the chat's session. Idempotent if absent.
func (r *Registry) Remove(chatID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, chatID)
}

// Len reports the number of active sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
