// Package assemble rebuilds the Competition → Heat → LaneResult tree from
// flat entity lists using nothing but their source offsets.
//
// Each level is a fold over the containers from last to first: a container
// claims every remaining candidate that starts after it, and the pool
// shrinks to the candidates that start before it. A candidate therefore
// lands in the nearest preceding container of the right kind. Candidates
// that precede every container are dropped.
package assemble

import (
	"errors"
	"fmt"

	"github.com/dgallion1/heatsheet/internal/meet"
)

// ErrInvariant is returned when the input lists cannot be assembled safely.
var ErrInvariant = errors.New("assembly invariant violated")

// Partition splits pool at boundary. claimed holds the items whose offset is
// greater than boundary, rest those whose offset is smaller; both keep pool
// order. Items sitting exactly on the boundary end up in neither.
func Partition[T any](pool []T, offset func(T) int, boundary int) (claimed, rest []T) {
	for _, item := range pool {
		switch o := offset(item); {
		case o > boundary:
			claimed = append(claimed, item)
		case o < boundary:
			rest = append(rest, item)
		}
	}
	return claimed, rest
}

// Tree assembles lanes into heats and heats into competitions, pruning
// empty containers after each pass.
func Tree(comps []meet.Competition, heats []meet.Heat, lanes []meet.LaneResult) ([]meet.Competition, error) {
	filled, err := Heats(heats, lanes)
	if err != nil {
		return nil, err
	}
	out, err := Competitions(comps, PruneHeats(filled))
	if err != nil {
		return nil, err
	}
	return PruneCompetitions(out), nil
}

// Heats returns a copy of heats with every lane result attached to its
// nearest preceding heat.
func Heats(heats []meet.Heat, lanes []meet.LaneResult) ([]meet.Heat, error) {
	if err := checkOrder("heat", heats, heatOffset); err != nil {
		return nil, err
	}
	if err := checkOrder("lane", lanes, laneOffset); err != nil {
		return nil, err
	}
	for _, h := range heats {
		if len(h.Lanes) > 0 {
			return nil, fmt.Errorf("%w: heat %s at offset %d already has lanes", ErrInvariant, h.Number, h.Offset)
		}
	}
	return fold(heats, lanes, heatOffset, laneOffset, func(h meet.Heat, ls []meet.LaneResult) meet.Heat {
		h.Lanes = ls
		return h
	}), nil
}

// Competitions returns a copy of comps with every heat attached to its
// nearest preceding competition.
func Competitions(comps []meet.Competition, heats []meet.Heat) ([]meet.Competition, error) {
	if err := checkOrder("competition", comps, compOffset); err != nil {
		return nil, err
	}
	if err := checkOrder("heat", heats, heatOffset); err != nil {
		return nil, err
	}
	for _, c := range comps {
		if len(c.Heats) > 0 {
			return nil, fmt.Errorf("%w: competition %q at offset %d already has heats", ErrInvariant, c.Label, c.Offset)
		}
	}
	return fold(comps, heats, compOffset, heatOffset, func(c meet.Competition, hs []meet.Heat) meet.Competition {
		c.Heats = hs
		return c
	}), nil
}

// fold walks containers from the last one backwards, letting each claim the
// candidates that follow it.
func fold[C, T any](containers []C, pool []T, cOff func(C) int, tOff func(T) int, attach func(C, []T) C) []C {
	out := make([]C, len(containers))
	for i := len(containers) - 1; i >= 0; i-- {
		var claimed []T
		claimed, pool = Partition(pool, tOff, cOff(containers[i]))
		out[i] = attach(containers[i], claimed)
	}
	return out
}

func checkOrder[T any](kind string, items []T, offset func(T) int) error {
	prev := -1
	for i, item := range items {
		o := offset(item)
		if o < 0 {
			return fmt.Errorf("%w: %s %d has negative offset %d", ErrInvariant, kind, i, o)
		}
		if o <= prev {
			return fmt.Errorf("%w: %s offsets not ascending at index %d (%d after %d)", ErrInvariant, kind, i, o, prev)
		}
		prev = o
	}
	return nil
}

func compOffset(c meet.Competition) int { return c.Offset }
func heatOffset(h meet.Heat) int        { return h.Offset }
func laneOffset(l meet.LaneResult) int  { return l.Offset }
