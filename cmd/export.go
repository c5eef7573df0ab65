package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/studyhall-app/studyhall/internal/export"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the note table to a Parquet or JSONL file",
		Long: `Exports all notes from the Postgres store to a file for offline
analysis. The output format is chosen from the file extension
(.parquet or .jsonl). Requires DATABASE_URL.`,
		Example: `  studyhall export --output notes.parquet
  studyhall export --output notes.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openNoteStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			notes, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}

			// List omits text bodies; re-fetch each note in full
			for i, note := range notes {
				full, err := store.Get(cmd.Context(), note.ID)
				if err != nil {
					return fmt.Errorf("failed to load note %s: %w", note.ID, err)
				}
				notes[i] = full
			}

			if err := export.WriteFile(output, notes); err != nil {
				return err
			}
			slog.Info("Exported notes", "count", len(notes), "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "notes.parquet", "Output file (.parquet or .jsonl)")

	return cmd
}
