package system

import (
	"encoding/json"
	"fmt"
	"time"

	"planet-randomizer/internal/body"
	"planet-randomizer/internal/generator"
)

// Record is a stored generation run. System is nil in listings.
type Record struct {
	ID          string            `json:"id"`
	Seed        int64             `json:"seed"`
	Baseline    string            `json:"baseline"`
	Home        string            `json:"home"`
	BodyCount   int               `json:"body_count"`
	ForcedCount int               `json:"forced_count"`
	CreatedAt   time.Time         `json:"created_at"`
	System      *generator.System `json:"system,omitempty"`
}

type systemRow struct {
	ID             string    `db:"id"`
	Seed           int64     `db:"seed"`
	Baseline       string    `db:"baseline"`
	Home           string    `db:"home"`
	StarJSON       string    `db:"star_json"`
	PlacementsJSON string    `db:"placements_json"`
	BodyCount      int       `db:"body_count"`
	ForcedCount    int       `db:"forced_count"`
	CreatedAt      time.Time `db:"created_at"`
}

type bodyRow struct {
	SystemID               string  `db:"system_id"`
	Name                   string  `db:"name"`
	Rank                   int     `db:"body_rank"`
	ReferenceBody          string  `db:"reference_body"`
	Mass                   float64 `db:"mass"`
	Radius                 float64 `db:"radius"`
	SemiMajorAxis          float64 `db:"semi_major_axis"`
	Eccentricity           float64 `db:"eccentricity"`
	Inclination            float64 `db:"inclination"`
	MeanAnomalyAtEpoch     float64 `db:"mean_anomaly_at_epoch"`
	LongitudeAscendingNode float64 `db:"longitude_ascending_node"`
	ArgumentOfPeriapsis    float64 `db:"argument_of_periapsis"`
	SphereOfInfluence      float64 `db:"sphere_of_influence"`
	RotationPeriod         float64 `db:"rotation_period"`
	Forced                 bool    `db:"forced"`
	Atmosphere             bool    `db:"atmosphere"`
	ScienceIndex           int     `db:"science_index"`
}

func newSystemRow(id string, sys *generator.System, createdAt time.Time) (systemRow, error) {
	star, err := json.Marshal(sys.Star)
	if err != nil {
		return systemRow{}, fmt.Errorf("failed to encode star: %w", err)
	}
	placements, err := json.Marshal(sys.Placements)
	if err != nil {
		return systemRow{}, fmt.Errorf("failed to encode placements: %w", err)
	}

	return systemRow{
		ID:             id,
		Seed:           sys.Seed,
		Baseline:       sys.Baseline,
		Home:           sys.Home,
		StarJSON:       string(star),
		PlacementsJSON: string(placements),
		BodyCount:      len(sys.Bodies),
		ForcedCount:    sys.ForcedCount(),
		CreatedAt:      createdAt,
	}, nil
}

func (r systemRow) record() Record {
	return Record{
		ID:          r.ID,
		Seed:        r.Seed,
		Baseline:    r.Baseline,
		Home:        r.Home,
		BodyCount:   r.BodyCount,
		ForcedCount: r.ForcedCount,
		CreatedAt:   r.CreatedAt,
	}
}

// system rebuilds the generated system from the stored row and its bodies in rank order.
func (r systemRow) system(bodies []bodyRow) (*generator.System, error) {
	sys := &generator.System{
		Seed:     r.Seed,
		Baseline: r.Baseline,
		Home:     r.Home,
		Bodies:   make([]body.Body, 0, len(bodies)),
	}
	if err := json.Unmarshal([]byte(r.StarJSON), &sys.Star); err != nil {
		return nil, fmt.Errorf("failed to decode star: %w", err)
	}
	if err := json.Unmarshal([]byte(r.PlacementsJSON), &sys.Placements); err != nil {
		return nil, fmt.Errorf("failed to decode placements: %w", err)
	}
	for _, b := range bodies {
		sys.Bodies = append(sys.Bodies, b.body())
	}
	return sys, nil
}

func newBodyRow(systemID string, b body.Body) bodyRow {
	return bodyRow{
		SystemID:               systemID,
		Name:                   b.Name,
		Rank:                   b.Rank,
		ReferenceBody:          b.ReferenceBody,
		Mass:                   b.Mass,
		Radius:                 b.Radius,
		SemiMajorAxis:          b.SemiMajorAxis,
		Eccentricity:           b.Eccentricity,
		Inclination:            b.Inclination,
		MeanAnomalyAtEpoch:     b.MeanAnomalyAtEpoch,
		LongitudeAscendingNode: b.LongitudeAscendingNode,
		ArgumentOfPeriapsis:    b.ArgumentOfPeriapsis,
		SphereOfInfluence:      b.SphereOfInfluence,
		RotationPeriod:         b.RotationPeriod,
		Forced:                 b.Forced,
		Atmosphere:             b.Atmosphere,
		ScienceIndex:           b.ScienceIndex,
	}
}

func (r bodyRow) body() body.Body {
	return body.Body{
		Name:                   r.Name,
		Mass:                   r.Mass,
		Radius:                 r.Radius,
		SemiMajorAxis:          r.SemiMajorAxis,
		Eccentricity:           r.Eccentricity,
		Inclination:            r.Inclination,
		MeanAnomalyAtEpoch:     r.MeanAnomalyAtEpoch,
		LongitudeAscendingNode: r.LongitudeAscendingNode,
		ArgumentOfPeriapsis:    r.ArgumentOfPeriapsis,
		SphereOfInfluence:      r.SphereOfInfluence,
		ReferenceBody:          r.ReferenceBody,
		Rank:                   r.Rank,
		RotationPeriod:         r.RotationPeriod,
		Forced:                 r.Forced,
		Atmosphere:             r.Atmosphere,
		ScienceIndex:           r.ScienceIndex,
	}
}
