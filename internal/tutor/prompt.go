package tutor

import (
	"strings"

	"github.com/studyhall-app/studyhall/internal/models"
)

func buildTutorPrompt(noteContext string, history []models.ChatMessage, question string) string {
	var sb strings.Builder

	sb.WriteString(`You are a patient, encouraging math tutor helping a student understand their lecture notes.

INSTRUCTIONS:
1. Answer the student's question step by step, showing your working.
2. Write all mathematical expressions in LaTeX delimited by $...$ for inline math and $$...$$ for displayed equations.
3. When the student's notes contain relevant material, ground your answer in it and say so ("In your notes, ...").
4. If the question cannot be answered from the notes, answer from general math knowledge, but point out that it goes beyond the notes.
5. Keep answers focused. Do not pad with encouragement paragraphs.
`)

	if noteContext != "" {
		sb.WriteString("\nSTUDENT'S NOTES:\n---\n")
		sb.WriteString(noteContext)
		sb.WriteString("\n---\n")
	}

	if len(history) > 0 {
		sb.WriteString("\nCONVERSATION SO FAR:\n")
		start := 0
		if len(history) > 2*maxHistoryTurns {
			start = len(history) - 2*maxHistoryTurns
		}
		for _, msg := range history[start:] {
			switch msg.Role {
			case "user":
				sb.WriteString("Student: ")
			case "assistant":
				sb.WriteString("Tutor: ")
			}
			sb.WriteString(msg.Content)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nStudent: ")
	sb.WriteString(question)
	sb.WriteString("\nTutor:")

	return sb.String()
}
