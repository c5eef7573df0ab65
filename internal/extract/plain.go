package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func extractPlain(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	return normalizeBlankLines(text), nil
}

// normalizeBlankLines trims trailing whitespace per line and collapses runs
// of blank lines down to one.
func normalizeBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
