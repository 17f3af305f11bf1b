// Package meet holds the entities recognized in a meet program and the
// flat record emitted per lane result.
package meet

// Participant is a swimmer as printed on a lane line.
type Participant struct {
	Name string `json:"name"` // Full name, right-trimmed
	Year string `json:"year"` // Birth year, may carry an age-class suffix ("2012/AK 12")
	Club string `json:"club"` // Affiliation
}

// LaneResult is one participant's entry in a heat.
type LaneResult struct {
	Lane        string      `json:"lane"`
	Participant Participant `json:"participant"`
	Time        string      `json:"time"`   // Entry or result time, e.g. "1:05,32"
	Offset      int         `json:"offset"` // Byte offset of the matched span in the source text
}

// Heat is a scheduled run within a competition.
type Heat struct {
	Number string       `json:"number"`
	Time   string       `json:"time"` // Scheduled start, e.g. "09:42"
	Offset int          `json:"offset"`
	Lanes  []LaneResult `json:"lanes"`
}

// Competition is a top-level event grouping.
type Competition struct {
	Label  string `json:"label"` // e.g. "100 m Freistil"
	Offset int    `json:"offset"`
	Heats  []Heat `json:"heats"`
}

// Row is the flat record produced for each lane result.
type Row struct {
	Competition string `json:"competition"`
	HeatTime    string `json:"heat_time"`
	Heat        string `json:"heat"`
	Lane        string `json:"lane"`
	Name        string `json:"name"`
	Year        string `json:"year"`
	Club        string `json:"club"`
	Time        string `json:"time"`
}

// Participant returns the participant fields of the row.
func (r Row) Participant() Participant {
	return Participant{Name: r.Name, Year: r.Year, Club: r.Club}
}
