package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DOCX and PPTX are both OOXML: zip archives holding XML parts. Text lives
// in <w:t>/<a:t> elements; paragraph boundaries are the closing <w:p>/<a:p>.

func extractDOCX(content []byte) (string, error) {
	part, err := readZipPart(content, "word/document.xml")
	if err != nil {
		return "", fmt.Errorf("failed to read docx: %w", err)
	}
	text, err := walkOOXML(part, "t", "p")
	if err != nil {
		return "", fmt.Errorf("failed to parse docx xml: %w", err)
	}
	return text, nil
}

func extractPPTX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to read pptx: %w", err)
	}

	// Slides are ppt/slides/slide1.xml, slide2.xml, ... Keep slide order.
	var slides []*zip.File
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slides = append(slides, f)
		}
	}
	if len(slides) == 0 {
		return "", fmt.Errorf("no slides found in pptx")
	}
	sort.Slice(slides, func(i, j int) bool {
		return slideNumber(slides[i].Name) < slideNumber(slides[j].Name)
	})

	var sb strings.Builder
	for _, f := range slides {
		data, err := readAll(f)
		if err != nil {
			return "", fmt.Errorf("failed to read slide %s: %w", f.Name, err)
		}
		text, err := walkOOXML(data, "t", "p")
		if err != nil {
			return "", fmt.Errorf("failed to parse slide %s: %w", f.Name, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// walkOOXML tokenizes an OOXML part, collecting character data inside
// textLocal elements and emitting newlines when paraLocal elements close.
func walkOOXML(data []byte, textLocal, paraLocal string) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var sb strings.Builder
	inText := 0
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == textLocal {
				inText++
			}
		case xml.EndElement:
			switch t.Name.Local {
			case textLocal:
				if inText > 0 {
					inText--
				}
			case paraLocal:
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText > 0 {
				sb.Write(t)
			}
		}
	}
	return normalizeBlankLines(sb.String()), nil
}

func readZipPart(content []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if f.Name == name {
			return readAll(f)
		}
	}
	return nil, fmt.Errorf("archive part %s not found", name)
}

func readAll(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func slideNumber(name string) int {
	// "ppt/slides/slide12.xml" -> 12
	name = strings.TrimPrefix(name, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	n := 0
	for _, r := range name {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
