// Package export dumps the note table to files for offline analysis.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/studyhall-app/studyhall/internal/models"
)

// Record is the flat export row schema shared by the Parquet and JSONL
// writers.
type Record struct {
	ID            string `parquet:"id" json:"id"`
	Title         string `parquet:"title" json:"title"`
	Filename      string `parquet:"filename" json:"filename"`
	ContentType   string `parquet:"content_type" json:"content_type"`
	FileSize      int64  `parquet:"file_size" json:"file_size"`
	Status        string `parquet:"status" json:"status"`
	Summary       string `parquet:"summary" json:"summary"`
	ExtractedText string `parquet:"extracted_text" json:"extracted_text"`
	ProcessedText string `parquet:"processed_text" json:"processed_text"`
	ErrorMessage  string `parquet:"error_message" json:"error_message"`
	CreatedAt     string `parquet:"created_at" json:"created_at"`
	UpdatedAt     string `parquet:"updated_at" json:"updated_at"`
}

func toRecord(note *models.Note) Record {
	return Record{
		ID:            note.ID,
		Title:         note.Title,
		Filename:      note.Filename,
		ContentType:   note.ContentType,
		FileSize:      note.FileSize,
		Status:        note.Status,
		Summary:       note.Summary,
		ExtractedText: note.ExtractedText,
		ProcessedText: note.ProcessedText,
		ErrorMessage:  note.ErrorMessage,
		CreatedAt:     note.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     note.UpdatedAt.Format(time.RFC3339),
	}
}

// WriteFile writes notes to path; the format is chosen from the extension
// (.parquet or .jsonl).
func WriteFile(path string, notes []*models.Note) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return WriteParquet(f, notes)
	case ".jsonl", ".json":
		return WriteJSONL(f, notes)
	default:
		return fmt.Errorf("unsupported export format: %s (supported: .parquet, .jsonl)", ext)
	}
}

// WriteParquet writes notes as a Parquet file.
func WriteParquet(w io.Writer, notes []*models.Note) error {
	records := make([]Record, 0, len(notes))
	for _, note := range notes {
		records = append(records, toRecord(note))
	}

	pw := parquet.NewGenericWriter[Record](w)
	if _, err := pw.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WriteJSONL writes notes as one JSON object per line.
func WriteJSONL(w io.Writer, notes []*models.Note) error {
	enc := json.NewEncoder(w)
	for _, note := range notes {
		if err := enc.Encode(toRecord(note)); err != nil {
			return fmt.Errorf("failed to encode note %s: %w", note.ID, err)
		}
	}
	return nil
}
