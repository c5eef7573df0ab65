package structurer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/studyhall-app/studyhall/internal/providers"
)

// chunkSize is the rough byte budget per structuring request. Long lecture
// documents are split on paragraph boundaries and structured chunk by chunk.
const chunkSize = 8 * 1024

// Service turns raw extracted document text into cleaned, markdown-structured
// note text plus a short summary, using an LLM provider.
type Service struct {
	registry providers.Registry
}

func NewService(registry providers.Registry) *Service {
	return &Service{registry: registry}
}

// Result is the structured output for one document.
type Result struct {
	ProcessedText string
	Summary       string
}

type structuredChunk struct {
	Markdown string `json:"markdown"`
	Summary  string `json:"summary"`
}

// Structure processes the full document text. The first chunk's summary is
// kept as the note summary; for multi-chunk documents a final summary pass
// condenses the per-chunk summaries.
func (s *Service) Structure(ctx context.Context, text, providerName, model string) (Result, error) {
	provider, name, err := s.registry.Resolve(providerName)
	if err != nil {
		return Result{}, err
	}
	if model == "" {
		model = providers.DefaultModel(name)
	}

	chunks := splitChunks(text, chunkSize)
	slog.Info("Structuring document text", "provider", name, "model", model, "chunks", len(chunks))

	var processed []string
	var summaries []string
	for i, chunk := range chunks {
		out, err := provider.Complete(ctx, providers.Config{
			Model:       model,
			Temperature: 0.2, // low temperature for faithful restructuring
			Prompt:      buildStructurePrompt(chunk, i+1, len(chunks)),
		})
		if err != nil {
			return Result{}, fmt.Errorf("failed to structure chunk %d/%d: %w", i+1, len(chunks), err)
		}

		var parsed structuredChunk
		if err := parseJSONResponse(out, &parsed); err != nil {
			return Result{}, fmt.Errorf("failed to parse structuring response for chunk %d: %w", i+1, err)
		}
		if strings.TrimSpace(parsed.Markdown) == "" {
			return Result{}, fmt.Errorf("structuring response for chunk %d had no markdown", i+1)
		}
		processed = append(processed, strings.TrimSpace(parsed.Markdown))
		if strings.TrimSpace(parsed.Summary) != "" {
			summaries = append(summaries, strings.TrimSpace(parsed.Summary))
		}
	}

	result := Result{
		ProcessedText: strings.Join(processed, "\n\n"),
	}

	switch len(summaries) {
	case 0:
		// Leave the summary empty rather than inventing one
	case 1:
		result.Summary = summaries[0]
	default:
		combined, err := provider.Complete(ctx, providers.Config{
			Model:       model,
			Temperature: 0.2,
			Prompt:      buildCombineSummariesPrompt(summaries),
		})
		if err != nil {
			slog.Warn("Failed to combine chunk summaries, keeping first", "error", err)
			result.Summary = summaries[0]
		} else {
			result.Summary = strings.TrimSpace(combined)
		}
	}

	return result, nil
}

// splitChunks splits text into pieces of roughly maxBytes, breaking on
// blank-line paragraph boundaries. A single oversized paragraph becomes its
// own chunk rather than being split mid-sentence.
func splitChunks(text string, maxBytes int) []string {
	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var cur strings.Builder
	for _, p := range paragraphs {
		if cur.Len() > 0 && cur.Len()+len(p)+2 > maxBytes {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(p)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	if len(chunks) == 0 {
		chunks = []string{text}
	}
	return chunks
}
