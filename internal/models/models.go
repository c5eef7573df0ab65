package models

import "time"

// Status values a note moves through while its document is processed.
// Transitions are uploading -> processing -> ready | error.
const (
	StatusUploading  = "uploading"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusError      = "error"
)

// Note represents an uploaded lecture document and its extracted text
type Note struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Filename      string    `json:"filename"`
	ContentType   string    `json:"content_type"`
	FileSize      int64     `json:"file_size"`
	Status        string    `json:"status"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	ProcessedText string    `json:"processed_text,omitempty"`
	Summary       string    `json:"summary,omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ChatMessage is a single exchange turn in a tutoring session
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatSession represents a tutoring conversation, optionally grounded
// in one note's processed text
type ChatSession struct {
	ID        string        `json:"id"`
	NoteID    string        `json:"note_id,omitempty"`
	Messages  []ChatMessage `json:"messages"`
	Provider  string        `json:"provider,omitempty"`
	Model     string        `json:"model,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
