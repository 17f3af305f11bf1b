package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles spreadsheet exports of a meet program. Each record
// becomes one line with its non-empty cells joined by spaces, so the
// exported "Bahn | 4 | Name | ..." columns read like the printed sheet.
type CSVParser struct {
	// Comma overrides delimiter detection when non-zero.
	Comma rune
}

func (p *CSVParser) Text(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comma = p.Comma
	if reader.Comma == 0 {
		reader.Comma = sniffDelimiter(string(data))
	}

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}

	var text strings.Builder
	for _, row := range records {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if c := strings.TrimSpace(cell); c != "" {
				cells = append(cells, c)
			}
		}
		if len(cells) == 0 {
			continue
		}
		text.WriteString(strings.Join(cells, " "))
		text.WriteString("\n")
	}
	return text.String(), nil
}

// sniffDelimiter picks ';' when the first line has more semicolons than
// commas. German exports use ';' because ',' is the decimal separator.
func sniffDelimiter(data string) rune {
	line, _, _ := strings.Cut(data, "\n")
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
