// Package mathrender renders note markdown to HTML. Math spans written as
// $...$ (inline) and $$...$$ (display) are lifted out before the markdown
// pass and re-inserted as MathML, so the markdown renderer never sees
// LaTeX control characters.
package mathrender

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		goldmarkhtml.WithHardWraps(),
	),
)

// Render converts markdown with $...$ / $$...$$ math spans to HTML.
func Render(source string) (string, error) {
	text, spans := liftMathSpans(source)

	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	html := buf.String()
	for i, span := range spans {
		html = strings.Replace(html, placeholder(i), span.html(), 1)
	}
	return html, nil
}

type mathSpan struct {
	latex   string
	display bool
}

func (s mathSpan) html() string {
	mathml := LatexToMathML(s.latex, s.display)
	if s.display {
		return `<div class="math-display">` + mathml + `</div>`
	}
	return `<span class="math-inline">` + mathml + `</span>`
}

func placeholder(i int) string {
	return fmt.Sprintf("MATHSPAN%dNAPSHTAM", i)
}

// liftMathSpans replaces math spans with placeholders. $$...$$ is matched
// before $...$ so display math is never split into two inline spans. A $
// with no closing delimiter is left as literal text. Fenced code blocks and
// inline code spans pass through untouched, so a $ in a shell snippet never
// becomes math.
func liftMathSpans(source string) (string, []mathSpan) {
	var spans []mathSpan
	var sb strings.Builder
	for _, seg := range splitCodeRegions(source) {
		if seg.code {
			sb.WriteString(seg.text)
			continue
		}
		liftInto(&sb, seg.text, &spans)
	}
	return sb.String(), spans
}

func liftInto(sb *strings.Builder, text string, spans *[]mathSpan) {
	i := 0
	for i < len(text) {
		c := text[i]
		if c != '$' {
			sb.WriteByte(c)
			i++
			continue
		}

		if strings.HasPrefix(text[i:], "$$") {
			end := strings.Index(text[i+2:], "$$")
			if end == -1 {
				sb.WriteString(text[i:])
				break
			}
			*spans = append(*spans, mathSpan{latex: text[i+2 : i+2+end], display: true})
			sb.WriteString(placeholder(len(*spans) - 1))
			i += 2 + end + 2
			continue
		}

		end := strings.IndexByte(text[i+1:], '$')
		if end == -1 {
			sb.WriteString(text[i:])
			break
		}
		*spans = append(*spans, mathSpan{latex: text[i+1 : i+1+end], display: false})
		sb.WriteString(placeholder(len(*spans) - 1))
		i += 1 + end + 1
	}
}

type segment struct {
	text string
	code bool
}

// splitCodeRegions splits markdown into code and non-code segments. Code
// segments cover fenced blocks (through their closing fence line) and
// inline backtick spans, including their delimiters.
func splitCodeRegions(source string) []segment {
	var segs []segment
	start := 0
	i := 0
	atLineStart := true
	for i < len(source) {
		if atLineStart {
			if marker := fenceMarker(source[i:]); marker != "" {
				end := i + fencedBlockLen(source[i:], marker)
				if i > start {
					segs = append(segs, segment{text: source[start:i]})
				}
				segs = append(segs, segment{text: source[i:end], code: true})
				start, i = end, end
				continue
			}
		}
		if source[i] == '`' {
			if n := inlineCodeLen(source[i:]); n > 0 {
				if i > start {
					segs = append(segs, segment{text: source[start:i]})
				}
				segs = append(segs, segment{text: source[i : i+n], code: true})
				start, i = i+n, i+n
				atLineStart = false
				continue
			}
		}
		atLineStart = source[i] == '\n'
		i++
	}
	if start < len(source) {
		segs = append(segs, segment{text: source[start:]})
	}
	return segs
}

// fenceMarker reports the fence introducer at the start of a line
// (``` or ~~~, indented at most three spaces), or "".
func fenceMarker(s string) string {
	trimmed := strings.TrimLeft(s, " ")
	if len(s)-len(trimmed) > 3 {
		return ""
	}
	for _, m := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, m) {
			return m
		}
	}
	return ""
}

// fencedBlockLen returns the length of the fenced block starting at s,
// through its closing fence line, or the rest of the input when unclosed.
func fencedBlockLen(s, marker string) int {
	nl := strings.IndexByte(s, '\n')
	if nl == -1 {
		return len(s)
	}
	i := nl + 1
	for i < len(s) {
		lineEnd := strings.IndexByte(s[i:], '\n')
		line := s[i:]
		if lineEnd != -1 {
			line = s[i : i+lineEnd]
		}
		if strings.HasPrefix(strings.TrimLeft(line, " "), marker) {
			if lineEnd == -1 {
				return len(s)
			}
			return i + lineEnd + 1
		}
		if lineEnd == -1 {
			break
		}
		i += lineEnd + 1
	}
	return len(s)
}

// inlineCodeLen returns the length of the inline code span at s, both
// backtick runs included, or 0 when a closing run of the same length never
// appears.
func inlineCodeLen(s string) int {
	run := 0
	for run < len(s) && s[run] == '`' {
		run++
	}
	rest := s[run:]
	off := 0
	for {
		j := strings.Index(rest[off:], s[:run])
		if j == -1 {
			return 0
		}
		end := off + j
		k := end
		for k < len(rest) && rest[k] == '`' {
			k++
		}
		if k-end == run {
			return run + k
		}
		off = k
	}
}
