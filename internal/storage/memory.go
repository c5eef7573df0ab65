package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/studyhall-app/studyhall/internal/models"
)

// MemoryStore is a mutex-guarded in-memory NoteStore. It is the default
// when no DATABASE_URL is configured, and the store used in tests.
type MemoryStore struct {
	notes map[string]*models.Note
	mu    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notes: make(map[string]*models.Note),
	}
}

func (s *MemoryStore) Create(ctx context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *note
	s.notes[note.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, exists := s.notes[id]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *note
	return &cp, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Note, 0, len(s.notes))
	for _, note := range s.notes {
		cp := *note
		cp.ExtractedText = ""
		cp.ProcessedText = ""
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryStore) Update(ctx context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.notes[note.ID]; !exists {
		return ErrNotFound
	}
	cp := *note
	cp.UpdatedAt = time.Now()
	s.notes[note.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id, status, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, exists := s.notes[id]
	if !exists {
		return ErrNotFound
	}
	note.Status = status
	note.ErrorMessage = errMsg
	note.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.notes[id]; !exists {
		return ErrNotFound
	}
	delete(s.notes, id)
	return nil
}
