package structurer

import (
	"context"
	"strings"
	"testing"

	"github.com/studyhall-app/studyhall/internal/providers"
)

// fakeProvider returns canned responses in order and records prompts.
type fakeProvider struct {
	responses []string
	prompts   []string
}

func (f *fakeProvider) Complete(ctx context.Context, config providers.Config) (string, error) {
	f.prompts = append(f.prompts, config.Prompt)
	if len(f.responses) == 0 {
		return "", context.DeadlineExceeded
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func TestStructureSingleChunk(t *testing.T) {
	fake := &fakeProvider{responses: []string{
		`{"markdown": "## Limits\n\nA limit describes $f(x)$ near a point.", "summary": "Introduction to limits."}`,
	}}
	svc := NewService(providers.Registry{"fake": fake})

	result, err := svc.Structure(context.Background(), "raw lecture text", "fake", "test-model")
	if err != nil {
		t.Fatalf("Structure() error: %v", err)
	}
	if !strings.Contains(result.ProcessedText, "## Limits") {
		t.Errorf("ProcessedText = %q", result.ProcessedText)
	}
	if result.Summary != "Introduction to limits." {
		t.Errorf("Summary = %q", result.Summary)
	}
	if len(fake.prompts) != 1 {
		t.Fatalf("Expected 1 completion call, got %d", len(fake.prompts))
	}
	if !strings.Contains(fake.prompts[0], "raw lecture text") {
		t.Error("Prompt should include the source text")
	}
}

func TestStructureFencedResponse(t *testing.T) {
	fake := &fakeProvider{responses: []string{
		"```json\n{\"markdown\": \"## Topic\", \"summary\": \"s\"}\n```",
	}}
	svc := NewService(providers.Registry{"fake": fake})

	result, err := svc.Structure(context.Background(), "text", "fake", "m")
	if err != nil {
		t.Fatalf("Structure() error: %v", err)
	}
	if result.ProcessedText != "## Topic" {
		t.Errorf("ProcessedText = %q", result.ProcessedText)
	}
}

func TestStructureMultiChunk(t *testing.T) {
	// Two paragraphs that cannot share a chunk, plus one combine call
	long := strings.Repeat("a", chunkSize) + "\n\n" + strings.Repeat("b", 100)
	fake := &fakeProvider{responses: []string{
		`{"markdown": "part one", "summary": "first half"}`,
		`{"markdown": "part two", "summary": "second half"}`,
		"whole document summary",
	}}
	svc := NewService(providers.Registry{"fake": fake})

	result, err := svc.Structure(context.Background(), long, "fake", "m")
	if err != nil {
		t.Fatalf("Structure() error: %v", err)
	}
	if result.ProcessedText != "part one\n\npart two" {
		t.Errorf("ProcessedText = %q", result.ProcessedText)
	}
	if result.Summary != "whole document summary" {
		t.Errorf("Summary = %q", result.Summary)
	}
	if len(fake.prompts) != 3 {
		t.Errorf("Expected 3 completion calls, got %d", len(fake.prompts))
	}
}

func TestStructureBadResponse(t *testing.T) {
	fake := &fakeProvider{responses: []string{"not json at all"}}
	svc := NewService(providers.Registry{"fake": fake})

	if _, err := svc.Structure(context.Background(), "text", "fake", "m"); err == nil {
		t.Error("Expected error for unparseable response")
	}
}

func TestStructureUnknownProvider(t *testing.T) {
	svc := NewService(providers.Registry{})
	if _, err := svc.Structure(context.Background(), "text", "nope", "m"); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxBytes int
		want     int
	}{
		{name: "short text single chunk", text: "hello\n\nworld", maxBytes: 100, want: 1},
		{name: "split on paragraphs", text: "aaaa\n\nbbbb\n\ncccc", maxBytes: 6, want: 3},
		{name: "oversized paragraph kept whole", text: strings.Repeat("x", 50), maxBytes: 10, want: 1},
		{name: "empty text", text: "", maxBytes: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := splitChunks(tt.text, tt.maxBytes)
			if len(chunks) != tt.want {
				t.Errorf("splitChunks() produced %d chunks, want %d: %q", len(chunks), tt.want, chunks)
			}
			if strings.Join(chunks, "\n\n") != tt.text && tt.text != "" {
				t.Errorf("Chunks do not reassemble to input: %q", chunks)
			}
		})
	}
}
