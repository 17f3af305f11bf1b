// Package rules defines the recognition rules used to find competitions,
// heats and lane lines in extracted document text.
package rules

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRules is returned when a rule set cannot be used for extraction.
var ErrInvalidRules = errors.New("invalid rules")

// Default patterns match the German heat sheet layout produced by common
// meet management software:
//
//	Wettkampf 3 - 100 m Freistil weiblich
//	Lauf 2/4 (ca. 09:42 Uhr)
//	Bahn 4 Mustermann, Erika 2012 SV Musterstadt 1:05,32
const (
	DefaultCompetition = `(?P<number>Wettkampf\s\d+)\s-\s(?P<label>\d+\s*m\s+\S+)\s(?P<rest>\S.+)`
	DefaultHeat        = `Lauf\s+(?P<heat>\d+)/(?P<of>\d+)\s\(ca\.\s(?P<time>\d+:\d+)\sUhr\)`
	DefaultLane        = `(?:\s*Bahn\s+\d+\s*)*Bahn\s+(?P<lane>\d+)\s+(?P<name>\D+)\s+(?P<year>\d+(?:/AK\s\d+)?)\s+(?P<club>.+)\s+(?P<time>\d+:\d+,\d+)`
)

// Named capture groups each pattern must provide.
var (
	CompetitionGroups = []string{"label"}
	HeatGroups        = []string{"heat", "time"}
	LaneGroups        = []string{"lane", "name", "year", "club", "time"}
)

// Set is the textual form of the rules, as stored in YAML.
type Set struct {
	Competition string `yaml:"competition"`
	Heat        string `yaml:"heat"`
	Lane        string `yaml:"lane"`
}

// Compiled holds ready-to-scan expressions for each entity kind.
type Compiled struct {
	Competition *regexp.Regexp
	Heat        *regexp.Regexp
	Lane        *regexp.Regexp
}

// Default returns the built-in rule set.
func Default() Set {
	return Set{
		Competition: DefaultCompetition,
		Heat:        DefaultHeat,
		Lane:        DefaultLane,
	}
}

// Parse decodes a YAML rule set. Kinds left empty fall back to the defaults.
func Parse(data []byte) (Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Set{}, fmt.Errorf("%w: decode yaml: %w", ErrInvalidRules, err)
	}
	def := Default()
	if s.Competition == "" {
		s.Competition = def.Competition
	}
	if s.Heat == "" {
		s.Heat = def.Heat
	}
	if s.Lane == "" {
		s.Lane = def.Lane
	}
	return s, nil
}

// Load reads a YAML rule set from path. An empty path yields the defaults.
func Load(path string) (Set, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read rules: %w", err)
	}
	return Parse(data)
}

// YAML encodes the rule set.
func (s Set) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// Compile compiles every pattern and checks its named groups.
func (s Set) Compile() (*Compiled, error) {
	comp, err := compile("competition", s.Competition, CompetitionGroups)
	if err != nil {
		return nil, err
	}
	heat, err := compile("heat", s.Heat, HeatGroups)
	if err != nil {
		return nil, err
	}
	lane, err := compile("lane", s.Lane, LaneGroups)
	if err != nil {
		return nil, err
	}
	return &Compiled{Competition: comp, Heat: heat, Lane: lane}, nil
}

// MustCompileDefault compiles the built-in rules and panics on failure.
func MustCompileDefault() *Compiled {
	c, err := Default().Compile()
	if err != nil {
		panic(err)
	}
	return c
}

func compile(kind, pattern string, groups []string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: %s pattern is empty", ErrInvalidRules, kind)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s pattern: %w", ErrInvalidRules, kind, err)
	}
	for _, g := range groups {
		if re.SubexpIndex(g) < 0 {
			return nil, fmt.Errorf("%w: %s pattern lacks group %q", ErrInvalidRules, kind, g)
		}
	}
	return re, nil
}
