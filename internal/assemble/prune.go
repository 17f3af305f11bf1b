package assemble

import "github.com/dgallion1/heatsheet/internal/meet"

// PruneHeats drops heats without lanes, keeping order.
func PruneHeats(heats []meet.Heat) []meet.Heat {
	return prune(heats, func(h meet.Heat) bool { return len(h.Lanes) == 0 })
}

// PruneCompetitions drops competitions without heats, keeping order.
func PruneCompetitions(comps []meet.Competition) []meet.Competition {
	return prune(comps, func(c meet.Competition) bool { return len(c.Heats) == 0 })
}

func prune[C any](items []C, empty func(C) bool) []C {
	out := make([]C, 0, len(items))
	for _, item := range items {
		if !empty(item) {
			out = append(out, item)
		}
	}
	return out
}
