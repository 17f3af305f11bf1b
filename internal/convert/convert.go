// Package convert runs one document through extraction, assembly and
// flattening.
package convert

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/heatsheet/internal/assemble"
	"github.com/dgallion1/heatsheet/internal/extract"
	"github.com/dgallion1/heatsheet/internal/flatten"
	"github.com/dgallion1/heatsheet/internal/meet"
	"github.com/dgallion1/heatsheet/internal/parser"
	"github.com/dgallion1/heatsheet/internal/rules"
	"github.com/dgallion1/heatsheet/internal/sink"
)

// Result is the outcome of converting one document.
type Result struct {
	Competitions []meet.Competition
	Rows         []meet.Row
	Roster       flatten.Roster

	// Starts is the number of lane results that passed the club filter.
	Starts int
	// Scanned is the number of lane lines found before filtering.
	Scanned int
}

// Dump returns the debug view of the result.
func (r *Result) Dump() sink.Dump {
	return sink.Dump{Competitions: r.Competitions, Roster: r.Roster}
}

// Converter turns meet program text into rows. It holds no per-document
// state and may be shared.
type Converter struct {
	rules   *rules.Compiled
	parsing parser.Options
	log     *slog.Logger
}

// New creates a Converter. A nil rule set selects the built-in rules.
func New(rs *rules.Compiled, parsing parser.Options, log *slog.Logger) *Converter {
	if rs == nil {
		rs = rules.MustCompileDefault()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{rules: rs, parsing: parsing, log: log}
}

// Document extracts the text of a document and converts it. The extracted
// text is returned alongside the result for debug dumps.
func (c *Converter) Document(r io.Reader, filename, club string) (*Result, string, error) {
	text, err := c.Extract(r, filename)
	if err != nil {
		return nil, "", err
	}
	res, err := c.Text(text, club)
	if err != nil {
		return nil, text, fmt.Errorf("convert %s: %w", filename, err)
	}
	return res, text, nil
}

// Extract returns the normalized text of a document.
func (c *Converter) Extract(r io.Reader, filename string) (string, error) {
	text, err := parser.Extract(r, filename, c.parsing)
	if err != nil {
		return "", err
	}
	c.log.Debug("extracted text", "file", filename, "bytes", len(text))
	return text, nil
}

// Text converts already extracted text.
func (c *Converter) Text(text, club string) (*Result, error) {
	lists := extract.Extract(text, c.rules, club)
	c.log.Debug("scanned text",
		"competitions", len(lists.Competitions),
		"heats", len(lists.Heats),
		"lanes", lists.Scanned,
		"kept", lists.Kept(),
		"club", club,
	)

	tree, err := assemble.Tree(lists.Competitions, lists.Heats, lists.Lanes)
	if err != nil {
		return nil, err
	}
	rows := flatten.Rows(tree)
	if len(rows) == 0 {
		c.log.Warn("no rows produced", "club", club)
	}

	return &Result{
		Competitions: tree,
		Rows:         rows,
		Roster:       flatten.NewRoster(rows),
		Starts:       lists.Kept(),
		Scanned:      lists.Scanned,
	}, nil
}
