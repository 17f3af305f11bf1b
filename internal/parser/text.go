package parser

import (
	"io"
	"strings"
)

// TextParser handles plain text files, e.g. saved pdftotext output.
type TextParser struct{}

func (p *TextParser) Text(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	// Unify line endings so \r never leaks into captured fields.
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
