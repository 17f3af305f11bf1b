package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrUnsupported is returned for file types no parser handles.
	ErrUnsupported = errors.New("unsupported file type")
	// ErrSourceUnavailable is returned when no text could be obtained from
	// the document. It is terminal for a conversion.
	ErrSourceUnavailable = errors.New("source unavailable")
)

// Parser extracts the running text of a document as one blob.
type Parser interface {
	Text(r io.Reader, filename string) (string, error)
}

// Options tune parser selection.
type Options struct {
	// FallbackPdftotext retries PDFs with poppler's pdftotext when the
	// pure-Go reader fails.
	FallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Extract picks a parser for filename, reads r and returns the normalized
// text. Any failure to produce text is reported as ErrSourceUnavailable.
func Extract(r io.Reader, filename string, opts Options) (string, error) {
	p, err := ForFile(filename, opts)
	if err != nil {
		return "", err
	}
	text, err := p.Text(r, filename)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, filename, err)
	}
	return Normalize(text), nil
}

// Normalize composes Unicode (so "ü" typed two ways compares equal) and
// turns no-break spaces into plain spaces, which \s does not match.
func Normalize(text string) string {
	text = norm.NFC.String(text)
	return strings.ReplaceAll(text, "\u00a0", " ")
}
