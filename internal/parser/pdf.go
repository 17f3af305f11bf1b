package parser

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if available.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Text(r io.Reader, filename string) (string, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "heatsheet-pdf-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if (err != nil || strings.TrimSpace(text) == "") && p.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return text, nil
}

func extractPDFText(path string) (text string, err error) {
	// The reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		buf.WriteString(pageLines(page.Content().Text))
	}
	return buf.String(), nil
}

// pdfLine is a run of glyphs sharing a baseline.
type pdfLine struct {
	y      float64
	glyphs []pdflib.Text
}

// pageLines rebuilds the text lines of a page from positioned glyphs. Glyphs
// whose baselines lie within half a font size of each other form one line;
// lines are emitted top to bottom and glyphs left to right. A horizontal gap
// wider than a third of the font size becomes a space.
func pageLines(glyphs []pdflib.Text) string {
	var lines []*pdfLine
	for _, g := range glyphs {
		var line *pdfLine
		for _, l := range lines {
			if math.Abs(l.y-g.Y) <= lineTolerance(g) {
				line = l
				break
			}
		}
		if line == nil {
			line = &pdfLine{y: g.Y}
			lines = append(lines, line)
		}
		line.glyphs = append(line.glyphs, g)
	}

	// PDF y grows upwards.
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	var buf strings.Builder
	for _, l := range lines {
		sort.SliceStable(l.glyphs, func(i, j int) bool { return l.glyphs[i].X < l.glyphs[j].X })
		var line strings.Builder
		for i, g := range l.glyphs {
			if i > 0 {
				prev := l.glyphs[i-1]
				gap := g.X - (prev.X + prev.W)
				if gap > g.FontSize*0.3 && prev.S != " " && g.S != " " {
					line.WriteString(" ")
				}
			}
			line.WriteString(g.S)
		}
		if text := strings.TrimRight(line.String(), " "); text != "" {
			buf.WriteString(text)
			buf.WriteString("\n")
		}
	}
	return buf.String()
}

func lineTolerance(g pdflib.Text) float64 {
	if g.FontSize <= 0 {
		return 1
	}
	return g.FontSize * 0.5
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
