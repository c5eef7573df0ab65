package extract

import (
	"errors"
	"strings"
	"testing"
)

func TestTextPlain(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		filename string
		want     string
	}{
		{
			name:     "plain text passthrough",
			content:  "Limits and continuity.\nEpsilon-delta definitions.",
			filename: "notes.txt",
			want:     "Limits and continuity.\nEpsilon-delta definitions.",
		},
		{
			name:     "markdown treated as plain text",
			content:  "# Integrals\n\nThe fundamental theorem.",
			filename: "notes.md",
			want:     "# Integrals\n\nThe fundamental theorem.",
		},
		{
			name:     "blank line runs collapsed",
			content:  "one\n\n\n\ntwo",
			filename: "notes.txt",
			want:     "one\n\ntwo",
		},
		{
			name:     "windows line endings normalized",
			content:  "alpha\r\nbeta",
			filename: "notes.txt",
			want:     "alpha\nbeta",
		},
		{
			name:     "unknown extension falls back to plain text",
			content:  "some content",
			filename: "notes.unknown",
			want:     "some content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text([]byte(tt.content), tt.filename)
			if err != nil {
				t.Fatalf("Text() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextErrors(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		if _, err := Text(nil, "notes.txt"); err == nil {
			t.Error("Expected error for empty document")
		}
	})

	t.Run("too large", func(t *testing.T) {
		big := make([]byte, MaxFileSize+1)
		if _, err := Text(big, "notes.txt"); err == nil {
			t.Error("Expected error for oversized document")
		}
	})

	t.Run("whitespace only is empty", func(t *testing.T) {
		_, err := Text([]byte("   \n\n  \n"), "notes.txt")
		if !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("Expected ErrEmptyDocument, got %v", err)
		}
	})

	t.Run("invalid utf8", func(t *testing.T) {
		if _, err := Text([]byte{0xff, 0xfe, 0x00}, "notes.txt"); err == nil {
			t.Error("Expected error for invalid UTF-8")
		}
	})

	t.Run("malformed pdf", func(t *testing.T) {
		_, err := Text([]byte("%PDF-1.4 garbage"), "broken.pdf")
		if err == nil {
			t.Error("Expected error for malformed pdf")
		}
	})
}

func TestSupported(t *testing.T) {
	for _, name := range []string{"a.pdf", "b.docx", "c.pptx", "d.txt", "e.md", "F.PDF"} {
		if !Supported(name) {
			t.Errorf("Supported(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"a.exe", "b.png", "noext"} {
		if Supported(name) {
			t.Errorf("Supported(%q) = true, want false", name)
		}
	}
}

func TestNormalizeBlankLines(t *testing.T) {
	got := normalizeBlankLines("a  \n\n\nb\t\n")
	want := "a\n\nb"
	if got != want {
		t.Errorf("normalizeBlankLines() = %q, want %q", got, want)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Error("Blank line run survived normalization")
	}
}
