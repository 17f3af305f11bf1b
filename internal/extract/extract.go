// Package extract scans document text with a compiled rule set and turns
// every match into a headless entity tagged with its source offset.
package extract

import (
	"regexp"
	"strings"

	"github.com/dgallion1/heatsheet/internal/meet"
	"github.com/dgallion1/heatsheet/internal/rules"
)

// Lists holds the three flat, offset-ascending entity lists of one document.
type Lists struct {
	Competitions []meet.Competition
	Heats        []meet.Heat
	Lanes        []meet.LaneResult

	// Scanned is the number of lane lines found before the club filter.
	Scanned int
}

// Kept returns the number of lane results accepted by the club filter.
func (l Lists) Kept() int {
	return len(l.Lanes)
}

// Extract runs one left-to-right scan per entity kind over text. When club
// is non-empty only lane results whose club equals it exactly are kept.
func Extract(text string, rs *rules.Compiled, club string) Lists {
	lanes, scanned := Lanes(text, rs.Lane, club)
	return Lists{
		Competitions: Competitions(text, rs.Competition),
		Heats:        Heats(text, rs.Heat),
		Lanes:        lanes,
		Scanned:      scanned,
	}
}

// Competitions returns every competition header in text.
func Competitions(text string, re *regexp.Regexp) []meet.Competition {
	var out []meet.Competition
	label := re.SubexpIndex("label")
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, meet.Competition{
			Label:  group(text, m, label),
			Offset: m[0],
		})
	}
	return out
}

// Heats returns every heat header in text.
func Heats(text string, re *regexp.Regexp) []meet.Heat {
	var out []meet.Heat
	num, at := re.SubexpIndex("heat"), re.SubexpIndex("time")
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, meet.Heat{
			Number: group(text, m, num),
			Time:   group(text, m, at),
			Offset: m[0],
		})
	}
	return out
}

// Lanes returns the lane lines in text that pass the club filter, along
// with the number of lane lines seen in total.
func Lanes(text string, re *regexp.Regexp, club string) ([]meet.LaneResult, int) {
	var (
		out     []meet.LaneResult
		scanned int
	)
	lane := re.SubexpIndex("lane")
	name := re.SubexpIndex("name")
	year := re.SubexpIndex("year")
	clubIdx := re.SubexpIndex("club")
	at := re.SubexpIndex("time")

	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		scanned++
		lr := meet.LaneResult{
			Lane: group(text, m, lane),
			Participant: meet.Participant{
				Name: strings.TrimRight(group(text, m, name), " \t\r\n"),
				Year: group(text, m, year),
				Club: strings.TrimRight(group(text, m, clubIdx), " \t\r\n"),
			},
			Time:   group(text, m, at),
			Offset: m[0],
		}
		if !Accept(lr, club) {
			continue
		}
		out = append(out, lr)
	}
	return out, scanned
}

// Accept reports whether a lane result passes the club filter. An empty
// club accepts everything; otherwise the match is exact and case-sensitive.
func Accept(lr meet.LaneResult, club string) bool {
	return club == "" || lr.Participant.Club == club
}

// group returns submatch i of m, or "" when the group did not participate.
func group(text string, m []int, i int) string {
	if i < 0 || 2*i+1 >= len(m) || m[2*i] < 0 {
		return ""
	}
	return text[m[2*i]:m[2*i+1]]
}
