// Package flatten turns an assembled meet tree into flat rows and derives
// the participant roster from them.
package flatten

import (
	"sort"

	"github.com/dgallion1/heatsheet/internal/meet"
)

// Rows walks competitions, heats and lanes in tree order and emits one row
// per lane result.
func Rows(comps []meet.Competition) []meet.Row {
	var rows []meet.Row
	for _, c := range comps {
		for _, h := range c.Heats {
			for _, l := range h.Lanes {
				rows = append(rows, meet.Row{
					Competition: c.Label,
					HeatTime:    h.Time,
					Heat:        h.Number,
					Lane:        l.Lane,
					Name:        l.Participant.Name,
					Year:        l.Participant.Year,
					Club:        l.Participant.Club,
					Time:        l.Time,
				})
			}
		}
	}
	return rows
}

// Roster maps participant names to the participant seen under that name.
type Roster map[string]meet.Participant

// NewRoster builds a roster from rows. When two rows share a name the later
// one wins, regardless of year or club.
func NewRoster(rows []meet.Row) Roster {
	r := make(Roster, len(rows))
	for _, row := range rows {
		r[row.Name] = row.Participant()
	}
	return r
}

// Names returns the roster's names in sorted order.
func (r Roster) Names() []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
