package tutor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/studyhall-app/studyhall/internal/models"
	"github.com/studyhall-app/studyhall/internal/providers"
	"github.com/studyhall-app/studyhall/internal/storage"
)

type fakeProvider struct {
	reply string

	mu      sync.Mutex
	prompts []string
}

func (f *fakeProvider) Complete(ctx context.Context, config providers.Config) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, config.Prompt)
	f.mu.Unlock()
	return f.reply, nil
}

func newTestService(fake *fakeProvider) (*Service, storage.NoteStore) {
	notes := storage.NewMemoryStore()
	sessions := storage.NewSessionStore()
	registry := providers.Registry{"fake": fake}
	return NewService(registry, notes, sessions), notes
}

func readyNote(t *testing.T, notes storage.NoteStore, id, processed string) {
	t.Helper()
	err := notes.Create(context.Background(), &models.Note{
		ID:            id,
		Title:         "Calculus",
		Status:        models.StatusReady,
		ProcessedText: processed,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
}

func TestAskCreatesSession(t *testing.T) {
	fake := &fakeProvider{reply: "The derivative is $2x$."}
	svc, notes := newTestService(fake)
	readyNote(t, notes, "n1", "## Derivatives\n\nPower rule: $x^n$ becomes $nx^{n-1}$.")

	session, reply, err := svc.Ask(context.Background(), "", "n1", "What is the derivative of x^2?", "fake", "m")
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if session.ID == "" {
		t.Error("Expected a new session ID")
	}
	if reply != "The derivative is $2x$." {
		t.Errorf("reply = %q", reply)
	}
	if len(session.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(session.Messages))
	}
	if session.Messages[0].Role != "user" || session.Messages[1].Role != "assistant" {
		t.Errorf("Message roles = %q, %q", session.Messages[0].Role, session.Messages[1].Role)
	}

	prompt := fake.prompts[0]
	if !strings.Contains(prompt, "Power rule") {
		t.Error("Prompt should include the note context")
	}
	if !strings.Contains(prompt, "What is the derivative of x^2?") {
		t.Error("Prompt should include the question")
	}
}

func TestAskContinuesSession(t *testing.T) {
	fake := &fakeProvider{reply: "It follows from the power rule."}
	svc, notes := newTestService(fake)
	readyNote(t, notes, "n1", "notes")

	session, _, err := svc.Ask(context.Background(), "", "n1", "first question", "fake", "m")
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}

	session2, _, err := svc.Ask(context.Background(), session.ID, "", "why?", "", "")
	if err != nil {
		t.Fatalf("Ask() second call error: %v", err)
	}
	if session2.ID != session.ID {
		t.Error("Second ask should reuse the session")
	}
	if len(session2.Messages) != 4 {
		t.Errorf("Expected 4 messages, got %d", len(session2.Messages))
	}

	// Second prompt replays the first exchange
	if !strings.Contains(fake.prompts[1], "first question") {
		t.Error("History missing from follow-up prompt")
	}
	if !strings.Contains(fake.prompts[1], "CONVERSATION SO FAR") {
		t.Error("Follow-up prompt should include conversation history")
	}
}

func TestAskWithoutNote(t *testing.T) {
	fake := &fakeProvider{reply: "General math answer."}
	svc, _ := newTestService(fake)

	session, reply, err := svc.Ask(context.Background(), "", "", "what is a prime?", "fake", "m")
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if reply == "" || session.NoteID != "" {
		t.Errorf("Ask() session.NoteID = %q, reply = %q", session.NoteID, reply)
	}
	if strings.Contains(fake.prompts[0], "STUDENT'S NOTES") {
		t.Error("Prompt should not include a notes section without a context note")
	}
}

func TestAskErrors(t *testing.T) {
	fake := &fakeProvider{reply: "x"}
	svc, notes := newTestService(fake)

	t.Run("unknown session", func(t *testing.T) {
		_, _, err := svc.Ask(context.Background(), "missing", "", "q", "fake", "m")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Ask() error = %v, want ErrSessionNotFound", err)
		}
	})

	t.Run("unknown note", func(t *testing.T) {
		_, _, err := svc.Ask(context.Background(), "", "missing", "q", "fake", "m")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Ask() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, _, err := svc.Ask(context.Background(), "", "", "q", "nope", "m")
		if !errors.Is(err, providers.ErrUnknownProvider) {
			t.Errorf("Ask() error = %v, want ErrUnknownProvider", err)
		}
	})

	t.Run("note not ready", func(t *testing.T) {
		err := notes.Create(context.Background(), &models.Note{
			ID:        "pending",
			Status:    models.StatusProcessing,
			CreatedAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		if _, _, err := svc.Ask(context.Background(), "", "pending", "q", "fake", "m"); !errors.Is(err, ErrNoteNotReady) {
			t.Errorf("Ask() error = %v, want ErrNoteNotReady", err)
		}
	})
}

func TestAskConcurrentSameSession(t *testing.T) {
	fake := &fakeProvider{reply: "ok"}
	svc, _ := newTestService(fake)

	session, _, err := svc.Ask(context.Background(), "", "", "q0", "fake", "m")
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := svc.Ask(context.Background(), session.ID, "", "another", "", ""); err != nil {
				t.Errorf("Ask() error: %v", err)
			}
		}()
	}
	wg.Wait()

	got, exists := svc.Session(session.ID)
	if !exists {
		t.Fatal("Session disappeared")
	}
	// 1 initial exchange + 5 concurrent ones, none lost
	if len(got.Messages) != 12 {
		t.Errorf("Messages = %d after concurrent asks, want 12", len(got.Messages))
	}
}

func TestTruncateToRune(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{"shorter than budget", "abc", 10, "abc"},
		{"exact cut", "abcdef", 3, "abc"},
		{"multibyte at boundary", "abé", 3, "ab"},
		{"multibyte fits", "abé", 4, "abé"},
		{"all multibyte", "世界", 4, "世"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateToRune(tt.s, tt.n)
			if got != tt.want {
				t.Errorf("truncateToRune(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateToRune(%q, %d) produced invalid UTF-8", tt.s, tt.n)
			}
		})
	}
}

func TestAskCapsHistory(t *testing.T) {
	fake := &fakeProvider{reply: "ok"}
	svc, _ := newTestService(fake)

	session, _, err := svc.Ask(context.Background(), "", "", "q0", "fake", "m")
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	for i := 0; i < maxHistoryTurns+5; i++ {
		if _, _, err := svc.Ask(context.Background(), session.ID, "", "another", "", ""); err != nil {
			t.Fatalf("Ask() error: %v", err)
		}
	}

	got, _ := svc.Session(session.ID)
	if len(got.Messages) > 2*maxHistoryTurns {
		t.Errorf("History grew to %d messages, cap is %d", len(got.Messages), 2*maxHistoryTurns)
	}
}
