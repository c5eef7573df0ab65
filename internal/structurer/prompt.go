package structurer

import (
	"fmt"
	"strings"
)

func buildStructurePrompt(chunk string, index, total int) string {
	position := ""
	if total > 1 {
		position = fmt.Sprintf("\nThis is part %d of %d of the document. Do not add an introduction or conclusion; structure only the text given.\n", index, total)
	}

	return fmt.Sprintf(`You are an experienced teaching assistant preparing study notes from raw lecture material.

The text below was mechanically extracted from a lecture document. It may have broken line wrapping, merged words, page headers/footers, or out-of-order fragments.
%s
INSTRUCTIONS:
1. Reconstruct the text as clean, well-organized Markdown study notes:
   - Use ## and ### headings for topics and subtopics found in the text
   - Use bullet lists for enumerations
   - Keep definitions, theorems, and examples intact
2. Write every mathematical expression in LaTeX delimited by $...$ for inline math and $$...$$ for displayed equations.
3. Do NOT invent content that is not in the source text. Do not editorialize.
4. Remove page numbers, repeated headers/footers, and OCR noise.
5. Also write a 1-2 sentence summary of what this text covers.

OUTPUT FORMAT:
Respond with ONLY a JSON object, no markdown code fences, in the following format:

{
  "markdown": "## Topic\n\nCleaned note text with $x^2$ math...",
  "summary": "One or two sentences describing the content."
}

SOURCE TEXT:
%s`, position, chunk)
}

func buildCombineSummariesPrompt(summaries []string) string {
	return fmt.Sprintf(`The following are summaries of consecutive parts of one lecture document.
Combine them into a single 1-2 sentence summary of the whole document.
Respond with ONLY the summary text, no preamble.

%s`, strings.Join(summaries, "\n"))
}
