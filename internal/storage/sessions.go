package storage

import (
	"sync"

	"github.com/studyhall-app/studyhall/internal/models"
)

// SessionStore holds chat sessions in memory. Chat history is ephemeral:
// it lives for the lifetime of the server process only.
//
// Get and Set exchange copies so handlers never share a session value with
// the store; history mutation goes through AppendMessages, which runs under
// the store's lock.
type SessionStore struct {
	sessions map[string]*models.ChatSession
	mu       sync.RWMutex
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.ChatSession),
	}
}

func (s *SessionStore) Get(sessionID string) (*models.ChatSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}
	return copySession(session), true
}

func (s *SessionStore) Set(sessionID string, session *models.ChatSession) {
	cp := copySession(session)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = cp
}

// AppendMessages appends to a session's history, dropping the oldest
// messages once the count exceeds maxMessages (0 means unbounded). It
// reports whether the session exists.
func (s *SessionStore) AppendMessages(sessionID string, maxMessages int, messages ...models.ChatMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, exists := s.sessions[sessionID]
	if !exists {
		return false
	}
	session.Messages = append(session.Messages, messages...)
	if maxMessages > 0 && len(session.Messages) > maxMessages {
		session.Messages = session.Messages[len(session.Messages)-maxMessages:]
	}
	return true
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func copySession(session *models.ChatSession) *models.ChatSession {
	cp := *session
	cp.Messages = append([]models.ChatMessage(nil), session.Messages...)
	return &cp
}
