package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/studyhall-app/studyhall/internal/models"
	"github.com/studyhall-app/studyhall/internal/providers"
	"github.com/studyhall-app/studyhall/internal/storage"
)

// maxHistoryTurns caps how many past exchanges are replayed into the prompt.
const maxHistoryTurns = 10

// contextBudget is the byte budget for note context included in the prompt.
const contextBudget = 24 * 1024

var (
	// ErrSessionNotFound is returned when a session ID has no live session.
	ErrSessionNotFound = errors.New("chat session not found")
	// ErrNoteNotReady is returned when the context note has not finished
	// processing (or failed).
	ErrNoteNotReady = errors.New("note is not ready")
)

// Service answers math questions using a note's processed text as context.
// The tutoring behavior itself lives in the prompt; this service only
// assembles context and forwards to the configured AI provider.
type Service struct {
	registry providers.Registry
	notes    storage.NoteStore
	sessions *storage.SessionStore
}

func NewService(registry providers.Registry, notes storage.NoteStore, sessions *storage.SessionStore) *Service {
	return &Service{
		registry: registry,
		notes:    notes,
		sessions: sessions,
	}
}

// Ask routes one user message through the tutor. An empty sessionID starts a
// new session; noteID, provider, and model are fixed at session creation.
func (s *Service) Ask(ctx context.Context, sessionID, noteID, message, providerName, model string) (*models.ChatSession, string, error) {
	session, err := s.getOrCreateSession(ctx, sessionID, noteID, providerName, model)
	if err != nil {
		return nil, "", err
	}

	provider, name, err := s.registry.Resolve(session.Provider)
	if err != nil {
		return nil, "", err
	}
	if session.Model == "" {
		session.Model = providers.DefaultModel(name)
	}

	noteContext := ""
	if session.NoteID != "" {
		note, err := s.notes.Get(ctx, session.NoteID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load context note: %w", err)
		}
		if note.Status != models.StatusReady {
			return nil, "", fmt.Errorf("note %s has status %s: %w", note.ID, note.Status, ErrNoteNotReady)
		}
		noteContext = truncateToRune(note.ProcessedText, contextBudget)
	}

	prompt := buildTutorPrompt(noteContext, session.Messages, message)

	slog.Info("Asking tutor", "session_id", session.ID, "provider", name, "model", session.Model, "history", len(session.Messages))
	reply, err := provider.Complete(ctx, providers.Config{
		Model:       session.Model,
		Temperature: 0.4,
		Prompt:      prompt,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get tutor reply: %w", err)
	}

	now := time.Now()
	exchange := []models.ChatMessage{
		{Role: "user", Content: message, CreatedAt: now},
		{Role: "assistant", Content: reply, CreatedAt: now},
	}
	// History grows through the store so concurrent asks on one session
	// can't clobber each other. The cap keeps long sessions bounded.
	if !s.sessions.AppendMessages(session.ID, 2*maxHistoryTurns, exchange...) {
		return nil, "", fmt.Errorf("session %s: %w", session.ID, ErrSessionNotFound)
	}

	session.Messages = append(session.Messages, exchange...)
	if len(session.Messages) > 2*maxHistoryTurns {
		session.Messages = session.Messages[len(session.Messages)-2*maxHistoryTurns:]
	}
	return session, reply, nil
}

func (s *Service) getOrCreateSession(ctx context.Context, sessionID, noteID, providerName, model string) (*models.ChatSession, error) {
	if sessionID != "" {
		session, exists := s.sessions.Get(sessionID)
		if !exists {
			return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
		}
		return session, nil
	}

	if noteID != "" {
		// Fail fast if the context note doesn't exist
		if _, err := s.notes.Get(ctx, noteID); err != nil {
			return nil, fmt.Errorf("failed to load context note: %w", err)
		}
	}

	session := &models.ChatSession{
		ID:        uuid.NewString(),
		NoteID:    noteID,
		Provider:  providerName,
		Model:     model,
		CreatedAt: time.Now(),
	}
	s.sessions.Set(session.ID, session)
	return session, nil
}

// Session returns a session transcript by ID.
func (s *Service) Session(sessionID string) (*models.ChatSession, bool) {
	return s.sessions.Get(sessionID)
}

// truncateToRune cuts s to at most n bytes without splitting a UTF-8 rune.
func truncateToRune(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
