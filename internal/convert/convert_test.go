package convert

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/heatsheet/internal/parser"
	"github.com/dgallion1/heatsheet/internal/sink"
)

const program = `Stadtmeisterschaften 2026 - Meldeergebnis
Bahn 1 Vorab, Verirrt 2010 SV Musterstadt 0:50,00
Wettkampf 1 - 50 m Freistil weiblich
Lauf 1/2 (ca. 09:00 Uhr)
Bahn 3 Mustermann, Erika 2012 SV Musterstadt 0:38,10
Bahn 4 Beispiel, Anna 2011 SC Beispielstadt 0:36,95
Lauf 2/2 (ca. 09:05 Uhr)
Bahn 4 Probe, Lena 2012 SV Musterstadt 0:35,40
Wettkampf 2 - 100 m Brust weiblich
Lauf 1/1 (ca. 09:20 Uhr)
Bahn 2 Mustermann, Erika 2012 SV Musterstadt 1:42,00
Bahn 5 Test, Tina 2010 SC Beispielstadt 1:30,00
`

func TestText_AllClubs(t *testing.T) {
	c := New(nil, parser.Options{}, nil)
	res, err := c.Text(program, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The lane before the first heat is scanned and kept but never assigned.
	if res.Scanned != 6 || res.Starts != 6 {
		t.Errorf("expected scanned=6 starts=6, got %d/%d", res.Scanned, res.Starts)
	}
	if len(res.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(res.Rows))
	}

	var names []string
	for _, r := range res.Rows {
		names = append(names, r.Name)
	}
	want := "Mustermann, Erika|Beispiel, Anna|Probe, Lena|Mustermann, Erika|Test, Tina"
	if got := strings.Join(names, "|"); got != want {
		t.Errorf("expected order %q, got %q", want, got)
	}

	last := res.Rows[4]
	if last.Competition != "100 m Brust" || last.Heat != "1" || last.HeatTime != "09:20" || last.Lane != "5" {
		t.Errorf("unexpected last row %+v", last)
	}
	if len(res.Roster) != 4 {
		t.Errorf("expected 4 distinct swimmers, got %d", len(res.Roster))
	}
}

func TestText_ClubFilter(t *testing.T) {
	c := New(nil, parser.Options{}, nil)
	res, err := c.Text(program, "SC Beispielstadt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 2 || res.Starts != 2 {
		t.Fatalf("expected 2 rows and starts, got %d/%d", len(res.Rows), res.Starts)
	}
	for _, r := range res.Rows {
		if r.Club != "SC Beispielstadt" {
			t.Errorf("unexpected club %q", r.Club)
		}
	}
	// Heat 2/2 of competition 1 only held SV Musterstadt and must be pruned.
	if len(res.Competitions) != 2 || len(res.Competitions[0].Heats) != 1 {
		t.Errorf("expected pruned tree, got %+v", res.Competitions)
	}
}

func TestText_UnknownClubYieldsHeaderOnly(t *testing.T) {
	c := New(nil, parser.Options{}, nil)
	res, err := c.Text(program, "TSV Nirgendwo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 0 || len(res.Competitions) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}

	var buf bytes.Buffer
	if err := sink.WriteCSV(&buf, res.Rows); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected header-only output, got %q", buf.String())
	}
}

func TestText_ValidationHook(t *testing.T) {
	c := New(nil, parser.Options{}, nil)

	res, err := c.Text(program, "SC Beispielstadt")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := sink.WriteCSV(&buf, res.Rows); err != nil {
		t.Fatal(err)
	}
	if err := sink.Check(&buf, res.Starts); err != nil {
		t.Errorf("expected check to pass, got %v", err)
	}

	// The stray lane before the first heat is a start that never becomes a row.
	res, err = c.Text(program, "SV Musterstadt")
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := sink.WriteCSV(&buf, res.Rows); err != nil {
		t.Fatal(err)
	}
	if err := sink.Check(&buf, res.Starts); !errors.Is(err, sink.ErrCountMismatch) {
		t.Errorf("expected ErrCountMismatch, got %v", err)
	}
}

func TestDocument_PlainText(t *testing.T) {
	c := New(nil, parser.Options{}, nil)
	res, text, err := c.Document(strings.NewReader(program), "program.txt", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != program {
		t.Errorf("expected extracted text to equal input")
	}
	if len(res.Rows) != 5 {
		t.Errorf("expected 5 rows, got %d", len(res.Rows))
	}
	if d := res.Dump(); len(d.Competitions) != 2 || len(d.Roster) != 4 {
		t.Errorf("unexpected dump %+v", d)
	}
}

func TestDocument_SourceUnavailable(t *testing.T) {
	c := New(nil, parser.Options{}, nil)
	res, _, err := c.Document(strings.NewReader("%PDF-garbage"), "program.pdf", "")
	if !errors.Is(err, parser.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	if res != nil {
		t.Error("expected no partial result")
	}
}

func TestDocument_Unsupported(t *testing.T) {
	c := New(nil, parser.Options{}, nil)
	if _, _, err := c.Document(strings.NewReader(""), "program.xls", ""); !errors.Is(err, parser.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
