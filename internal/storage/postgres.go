package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studyhall-app/studyhall/internal/models"
)

// PostgresStore implements NoteStore on top of a pgx connection pool.
type PostgresStore struct {
	DB *pgxpool.Pool
}

// NewPostgresStore connects to Postgres and ensures the notes schema exists.
func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	ps := &PostgresStore{DB: db}
	if err := ps.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return ps, nil
}

// EnsureSchema creates the notes table if it does not exist.
func (ps *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := ps.DB.Exec(ctx, `
                CREATE TABLE IF NOT EXISTS notes (
                        id             TEXT PRIMARY KEY,
                        title          TEXT NOT NULL,
                        filename       TEXT NOT NULL,
                        content_type   TEXT NOT NULL DEFAULT '',
                        file_size      BIGINT NOT NULL DEFAULT 0,
                        status         TEXT NOT NULL,
                        extracted_text TEXT NOT NULL DEFAULT '',
                        processed_text TEXT NOT NULL DEFAULT '',
                        summary        TEXT NOT NULL DEFAULT '',
                        error_message  TEXT NOT NULL DEFAULT '',
                        created_at     TIMESTAMPTZ NOT NULL,
                        updated_at     TIMESTAMPTZ NOT NULL
                );
        `)
	if err != nil {
		return fmt.Errorf("failed to create notes table: %w", err)
	}
	return nil
}

func (ps *PostgresStore) Create(ctx context.Context, note *models.Note) error {
	_, err := ps.DB.Exec(ctx, `
                INSERT INTO notes (id, title, filename, content_type, file_size, status,
                        extracted_text, processed_text, summary, error_message, created_at, updated_at)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
        `, note.ID, note.Title, note.Filename, note.ContentType, note.FileSize, note.Status,
		note.ExtractedText, note.ProcessedText, note.Summary, note.ErrorMessage,
		note.CreatedAt, note.UpdatedAt)
	return err
}

func (ps *PostgresStore) Get(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note
	err := ps.DB.QueryRow(ctx, `
                SELECT id, title, filename, content_type, file_size, status,
                       extracted_text, processed_text, summary, error_message, created_at, updated_at
                FROM notes WHERE id = $1;
        `, id).Scan(&note.ID, &note.Title, &note.Filename, &note.ContentType, &note.FileSize,
		&note.Status, &note.ExtractedText, &note.ProcessedText, &note.Summary,
		&note.ErrorMessage, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (ps *PostgresStore) List(ctx context.Context) ([]*models.Note, error) {
	rows, err := ps.DB.Query(ctx, `
                SELECT id, title, filename, content_type, file_size, status,
                       summary, error_message, created_at, updated_at
                FROM notes ORDER BY created_at DESC;
        `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Filename, &note.ContentType,
			&note.FileSize, &note.Status, &note.Summary, &note.ErrorMessage,
			&note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, &note)
	}
	return notes, rows.Err()
}

func (ps *PostgresStore) Update(ctx context.Context, note *models.Note) error {
	tag, err := ps.DB.Exec(ctx, `
                UPDATE notes
                SET title = $2, status = $3, extracted_text = $4, processed_text = $5,
                    summary = $6, error_message = $7, updated_at = $8
                WHERE id = $1;
        `, note.ID, note.Title, note.Status, note.ExtractedText, note.ProcessedText,
		note.Summary, note.ErrorMessage, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (ps *PostgresStore) UpdateStatus(ctx context.Context, id, status, errMsg string) error {
	tag, err := ps.DB.Exec(ctx, `
                UPDATE notes SET status = $2, error_message = $3, updated_at = $4 WHERE id = $1;
        `, id, status, errMsg, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (ps *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := ps.DB.Exec(ctx, `DELETE FROM notes WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the underlying connection pool.
func (ps *PostgresStore) Close() {
	if ps != nil && ps.DB != nil {
		ps.DB.Close()
	}
}
