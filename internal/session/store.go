// Package session provides the in-process conversation store.
package session

import (
	"sync"

	"github.com/SameerKamani/SL-IT-AI/internal/model"
)

// Store maps session identifiers to ordered conversation histories.
// It is constructed at service start and injected into the services;
// contents are volatile and lost on restart.
//
// The lock only guards map access. A chat request performs a
// read-modify-write spanning an LLM call, and two concurrent chats on
// the same session can interleave there: the later Replace wins and
// the earlier turns are dropped. Accepted for this layer.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]model.Turn
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string][]model.Turn)}
}

// History returns a copy of the session's turns. Unknown sessions
// yield an empty history, not an error.
func (s *Store) History(sessionID string) []model.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.sessions[sessionID]
	out := make([]model.Turn, len(turns))
	copy(out, turns)
	return out
}

// Replace overwrites the session's history with the given turns.
func (s *Store) Replace(sessionID string, turns []model.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]model.Turn, len(turns))
	copy(stored, turns)
	s.sessions[sessionID] = stored
}

// Clear removes the session if present. Clearing an unknown session
// is a no-op.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Count returns the number of turns stored for the session.
func (s *Store) Count(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[sessionID])
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
