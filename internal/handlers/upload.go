package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall-app/studyhall/internal/extract"
	"github.com/studyhall-app/studyhall/internal/models"
	"github.com/studyhall-app/studyhall/internal/utils"
)

// processingTimeout bounds one document's extract+structure pipeline.
const processingTimeout = 10 * time.Minute

func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("files")
	if err != nil {
		file, header, err = r.FormFile("file")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	title := r.FormValue("title")
	provider := r.FormValue("provider")
	model := r.FormValue("model")

	fileData, err := io.ReadAll(io.LimitReader(file, extract.MaxFileSize+1))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(fileData) > extract.MaxFileSize {
		h.writeError(w, "File too large (max 20MB)", http.StatusBadRequest)
		return
	}
	if len(fileData) == 0 {
		h.writeError(w, "Empty file", http.StatusBadRequest)
		return
	}

	if !extract.Supported(header.Filename) {
		h.writeError(w, "Unsupported file type (supported: pdf, docx, pptx, txt, md)", http.StatusBadRequest)
		return
	}

	if err := h.ensureUploadsDir(); err != nil {
		h.writeError(w, "Failed to create uploads directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if title == "" {
		title = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}

	now := time.Now()
	note := &models.Note{
		ID:          uuid.NewString(),
		Title:       title,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		FileSize:    int64(len(fileData)),
		Status:      models.StatusUploading,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.notes.Create(r.Context(), note); err != nil {
		h.writeError(w, "Failed to create note: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := h.saveUploadedFile(note.ID, header.Filename, fileData); err != nil {
		_ = h.notes.UpdateStatus(r.Context(), note.ID, models.StatusError, "failed to save file: "+err.Error())
		h.writeError(w, "Failed to save file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.notes.UpdateStatus(r.Context(), note.ID, models.StatusProcessing, ""); err != nil {
		h.writeError(w, "Failed to update note status: "+err.Error(), http.StatusInternalServerError)
		return
	}
	note.Status = models.StatusProcessing

	slog.Info("Note uploaded", "note_id", note.ID, "filename", note.Filename, "size", note.FileSize)

	go h.processNote(note.ID, header.Filename, fileData, provider, model)

	h.writeJSON(w, note)
}

// saveUploadedFile stores the original bytes under uploads/, keyed by the
// note ID so deletes can remove the right file.
func (h *Handler) saveUploadedFile(noteID, filename string, data []byte) (string, error) {
	hash := utils.CalculateDataMD5(data)
	storedName := noteID + "_" + hash + filepath.Ext(filename)
	path := filepath.Join(h.uploadsDir, storedName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// processNote runs the extraction and AI structuring pipeline for one
// uploaded document and moves the note to ready or error. Runs in its own
// goroutine, detached from the upload request.
func (h *Handler) processNote(noteID, filename string, data []byte, provider, model string) {
	ctx, cancel := context.WithTimeout(context.Background(), processingTimeout)
	defer cancel()

	text, err := extract.Text(data, filename)
	if err != nil {
		slog.Error("Text extraction failed", "note_id", noteID, "error", err)
		_ = h.notes.UpdateStatus(ctx, noteID, models.StatusError, "text extraction failed: "+err.Error())
		return
	}
	slog.Info("Text extracted", "note_id", noteID, "chars", len(text))

	note, err := h.notes.Get(ctx, noteID)
	if err != nil {
		// Note was deleted mid-processing; nothing left to update
		slog.Warn("Note disappeared during processing", "note_id", noteID, "error", err)
		return
	}
	note.ExtractedText = text
	if err := h.notes.Update(ctx, note); err != nil {
		slog.Error("Failed to store extracted text", "note_id", noteID, "error", err)
		_ = h.notes.UpdateStatus(ctx, noteID, models.StatusError, "failed to store extracted text")
		return
	}

	result, err := h.structurer.Structure(ctx, text, provider, model)
	if err != nil {
		slog.Error("AI structuring failed", "note_id", noteID, "error", err)
		_ = h.notes.UpdateStatus(ctx, noteID, models.StatusError, "AI structuring failed: "+err.Error())
		return
	}

	note, err = h.notes.Get(ctx, noteID)
	if err != nil {
		slog.Warn("Note disappeared during processing", "note_id", noteID, "error", err)
		return
	}
	note.ProcessedText = result.ProcessedText
	note.Summary = result.Summary
	note.Status = models.StatusReady
	note.ErrorMessage = ""
	if err := h.notes.Update(ctx, note); err != nil {
		slog.Error("Failed to store processed text", "note_id", noteID, "error", err)
		_ = h.notes.UpdateStatus(ctx, noteID, models.StatusError, "failed to store processed text")
		return
	}

	slog.Info("Note processed", "note_id", noteID, "processed_chars", len(result.ProcessedText))
}
