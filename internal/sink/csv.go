// Package sink serializes rows and checks what was written.
package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/heatsheet/internal/meet"
)

// Delimiter separates columns in the output.
const Delimiter = ';'

// AnnotationColumns is the number of empty "ZZ" columns appended to every
// row for split times recorded by hand later.
const AnnotationColumns = 8

// Header is the fixed column header.
var Header = []string{"WK", "Uhrzeit", "Lauf", "Bahn", "Name", "Jahrgang", "Verein", "Zeit"}

// ErrCountMismatch is returned by Check when the written record count does
// not match the number of accepted lane results.
var ErrCountMismatch = errors.New("record count mismatch")

// WriteCSV writes the header and one line per row. Every line ends with the
// annotation columns and a trailing delimiter. Values holding the delimiter,
// a double quote or a line break are quoted with inner quotes doubled.
func WriteCSV(w io.Writer, rows []meet.Row) error {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter

	if err := cw.Write(headerRecord()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes rows to path, replacing any existing file.
func WriteCSVFile(path string, rows []meet.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CountRecords returns the number of data records in a CSV stream written
// by WriteCSV, excluding the header.
func CountRecords(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1

	n := 0
	for {
		_, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read csv: %w", err)
		}
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return n - 1, nil
}

// Check compares the records in r with the expected number of starts.
func Check(r io.Reader, starts int) error {
	n, err := CountRecords(r)
	if err != nil {
		return err
	}
	if n != starts {
		return fmt.Errorf("%w: %d records written, %d starts found", ErrCountMismatch, n, starts)
	}
	return nil
}

// CheckFile runs Check against the CSV file at path.
func CheckFile(path string, starts int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Check(f, starts)
}

func headerRecord() []string {
	rec := make([]string, 0, len(Header)+AnnotationColumns+1)
	rec = append(rec, Header...)
	for range AnnotationColumns {
		rec = append(rec, "ZZ")
	}
	return append(rec, "")
}

func record(r meet.Row) []string {
	rec := make([]string, len(Header)+AnnotationColumns+1)
	copy(rec, []string{r.Competition, r.HeatTime, r.Heat, r.Lane, r.Name, r.Year, r.Club, r.Time})
	return rec
}
