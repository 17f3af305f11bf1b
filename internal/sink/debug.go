package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/heatsheet/internal/meet"
)

// Dump is the debug view of one conversion.
type Dump struct {
	Competitions []meet.Competition         `json:"competitions"`
	Roster       map[string]meet.Participant `json:"roster"`
}

// DumpText writes the extracted document text to path.
func DumpText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DumpJSON writes d as indented JSON.
func DumpJSON(w io.Writer, d Dump) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
