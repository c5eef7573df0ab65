package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studyhall",
		Short: "Study assistant backend with LLM-powered note processing",
		Long: `Studyhall is the backend for a study-assistant application.

Users upload lecture-note documents (PDF, DOCX, PPTX, plain text), the
server extracts and AI-structures their text, and a chat endpoint answers
math questions grounded in the extracted note context.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
