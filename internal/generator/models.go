package generator

import (
	"planet-randomizer/internal/body"
)

// Placement describes how one body was committed.
type Placement struct {
	Body          string `json:"body"`
	Reference     string `json:"reference"`
	Rank          int    `json:"rank"`
	Attempts      int    `json:"attempts"`       // reference candidates tried, including the successful one
	OrbitAttempts int    `json:"orbit_attempts"` // axis draws around the committed reference
	Forced        bool   `json:"forced"`
}

// System is the result of one generation run. Bodies are in rank order.
type System struct {
	Seed       int64       `json:"seed"`
	Baseline   string      `json:"baseline"`
	Home       string      `json:"home"`
	Star       body.Body   `json:"star"`
	Bodies     []body.Body `json:"bodies"`
	Placements []Placement `json:"placements"`
}

// Find returns the record with the given name, the star included.
func (s *System) Find(name string) (*body.Body, bool) {
	if s.Star.Name == name {
		return &s.Star, true
	}
	for i := range s.Bodies {
		if s.Bodies[i].Name == name {
			return &s.Bodies[i], true
		}
	}
	return nil, false
}

// Children returns the bodies directly orbiting name, in rank order.
func (s *System) Children(name string) []*body.Body {
	var children []*body.Body
	for i := range s.Bodies {
		if s.Bodies[i].ReferenceBody == name {
			children = append(children, &s.Bodies[i])
		}
	}
	return children
}

func (s *System) ForcedCount() int {
	count := 0
	for _, p := range s.Placements {
		if p.Forced {
			count++
		}
	}
	return count
}

// Validate checks the generated records against their invariants.
func (s *System) Validate(cfg Config) []body.Violation {
	return body.Validate(s.Star, s.Bodies, cfg.Limits())
}
