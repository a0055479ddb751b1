// Package science rebalances experiment data values after generation so that
// bodies harder to reach from home pay out more.
package science

import (
	"planet-randomizer/internal/body"
	"planet-randomizer/internal/generator"
	"planet-randomizer/internal/orbital"
	"planet-randomizer/internal/shared/errors"
)

// Kept marks a body whose stock values are left alone.
const Kept = -1

// highGravity is the surface gravity, in m/s², above which a body counts as one hop farther.
const highGravity = 2.2

// Values are the data value multipliers for each experiment situation.
type Values struct {
	Landed     float64 `json:"landed"`
	Splashed   float64 `json:"splashed"`
	FlyingLow  float64 `json:"flying_low"`
	FlyingHigh float64 `json:"flying_high"`
	SpaceLow   float64 `json:"space_low"`
	SpaceHigh  float64 `json:"space_high"`
}

var table = []Values{
	{Landed: 5, Splashed: 5, FlyingLow: 4, FlyingHigh: 4, SpaceLow: 3, SpaceHigh: 2.25},
	{Landed: 7, Splashed: 7, FlyingLow: 6, FlyingHigh: 6, SpaceLow: 5, SpaceHigh: 3},
	{Landed: 9, Splashed: 9, FlyingLow: 8, FlyingHigh: 8, SpaceLow: 7, SpaceHigh: 5},
	{Landed: 12, Splashed: 12, FlyingLow: 10, FlyingHigh: 10, SpaceLow: 9, SpaceHigh: 8},
	{Landed: 14, Splashed: 14, FlyingLow: 12, FlyingHigh: 12, SpaceLow: 10, SpaceHigh: 9},
}

// ValuesFor returns the values for a science index. Indices past the table
// share its last row; negative ones get the first.
func ValuesFor(index int) Values {
	switch {
	case index < 0:
		return table[0]
	case index >= len(table):
		return table[len(table)-1]
	default:
		return table[index]
	}
}

// Index derives the science index of a body hops jumps away from home.
func Index(b body.Body, hops int, orbitsStar bool) int {
	index := hops - 1
	if orbital.SurfaceGravity(b.Mass, b.Radius) > highGravity {
		index++
	} else if !b.Atmosphere && (orbitsStar || index > 2) {
		index++
	}
	return index
}

// Balance fills ScienceIndex on every body of sys. Hop distance is counted
// through the reference tree in both directions, the star included.
func Balance(sys *generator.System) error {
	if _, ok := sys.Find(sys.Home); !ok {
		return errors.NotFoundf("home body %q is not in the system", sys.Home)
	}

	hops := distances(sys)
	sys.Star.ScienceIndex = Kept

	for i := range sys.Bodies {
		b := &sys.Bodies[i]
		if b.Name == sys.Home {
			b.ScienceIndex = Kept
			continue
		}
		h, ok := hops[b.Name]
		if !ok {
			return errors.Validationf("body %q is not connected to home %q", b.Name, sys.Home)
		}
		b.ScienceIndex = Index(*b, h, b.ReferenceBody == sys.Star.Name)
	}
	return nil
}

// distances runs a breadth-first search from home over parent and child links.
func distances(sys *generator.System) map[string]int {
	neighbours := make(map[string][]string, len(sys.Bodies)+1)
	for _, b := range sys.Bodies {
		if b.ReferenceBody == "" {
			continue
		}
		neighbours[b.Name] = append(neighbours[b.Name], b.ReferenceBody)
		neighbours[b.ReferenceBody] = append(neighbours[b.ReferenceBody], b.Name)
	}

	hops := map[string]int{sys.Home: 0}
	queue := []string{sys.Home}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range neighbours[current] {
			if _, seen := hops[next]; seen {
				continue
			}
			hops[next] = hops[current] + 1
			queue = append(queue, next)
		}
	}
	return hops
}

// Entry is the science assignment of one body.
type Entry struct {
	Body   string  `json:"body"`
	Index  int     `json:"index"`
	Kept   bool    `json:"kept"`
	Values *Values `json:"values,omitempty"`
}

// Report lists the assignment for every body of a balanced system, in rank order.
func Report(sys *generator.System) []Entry {
	entries := make([]Entry, 0, len(sys.Bodies))
	for _, b := range sys.Bodies {
		entry := Entry{Body: b.Name, Index: b.ScienceIndex}
		if b.ScienceIndex == Kept {
			entry.Kept = true
		} else {
			values := ValuesFor(b.ScienceIndex)
			entry.Values = &values
		}
		entries = append(entries, entry)
	}
	return entries
}
