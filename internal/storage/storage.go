package storage

import (
	"context"
	"errors"

	"github.com/studyhall-app/studyhall/internal/models"
)

// ErrNotFound is returned when a note does not exist in the store.
var ErrNotFound = errors.New("note not found")

// NoteStore is the persistence interface for notes.
type NoteStore interface {
	Create(ctx context.Context, note *models.Note) error
	Get(ctx context.Context, id string) (*models.Note, error)
	// List returns all notes, newest first, without the extracted/processed
	// text bodies (list views only need metadata).
	List(ctx context.Context) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	UpdateStatus(ctx context.Context, id, status, errMsg string) error
	Delete(ctx context.Context, id string) error
}
