package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyhall-app/studyhall/internal/gemini"
	"github.com/studyhall-app/studyhall/internal/handlers"
	"github.com/studyhall-app/studyhall/internal/ollama"
	"github.com/studyhall-app/studyhall/internal/openai"
	"github.com/studyhall-app/studyhall/internal/providers"
	"github.com/studyhall-app/studyhall/internal/storage"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the study-assistant API server",
		Long: `Starts the Studyhall API on the specified port.

The API accepts lecture-note uploads (PDF, DOCX, PPTX, plain text),
extracts and AI-structures their text, and answers math questions in a
chat grounded in the processed notes. Set DATABASE_URL to persist notes
in Postgres; otherwise notes are held in memory.`,
		Example: `  # Start server on default port 8888
  studyhall serve

  # Start server on custom port
  studyhall serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, closeStore, err := openNoteStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			registry := providers.Registry{
				"openai": openai.New(),
				"ollama": ollama.New(),
				"gemini": gemini.New(),
			}
			handler := handlers.New(notes, registry)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/notes", handler.HandleNotes)
			mux.HandleFunc("/api/notes/", handler.HandleNoteDetail)
			mux.HandleFunc("/api/notes/upload", handler.HandleUpload)
			mux.HandleFunc("/api/chat", handler.HandleChat)
			mux.HandleFunc("/api/chat/", handler.HandleChatDetail)
			mux.HandleFunc("/api/calc", handler.HandleCalculate)
			mux.HandleFunc("/api/convert", handler.HandleConvert)
			mux.HandleFunc("/api/units", handler.HandleUnits)
			mux.HandleFunc("/api/render", handler.HandleRender)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Studyhall API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}

// openNoteStore picks Postgres when DATABASE_URL is set, otherwise an
// in-memory store.
func openNoteStore(ctx context.Context) (storage.NoteStore, func(), error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		slog.Info("DATABASE_URL not set, using in-memory note store")
		return storage.NewMemoryStore(), func() {}, nil
	}

	ps, err := storage.NewPostgresStore(ctx, connStr)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Connected to Postgres note store")
	return ps, ps.Close, nil
}
