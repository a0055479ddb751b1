package baseline

import (
	"fmt"
	"math"

	"planet-randomizer/internal/orbital"
	"planet-randomizer/internal/shared/errors"
)

// Body is the default state of one body before randomization.
type Body struct {
	Name           string  `yaml:"name" json:"name"`
	Parent         string  `yaml:"parent,omitempty" json:"parent,omitempty"`
	Mass           float64 `yaml:"mass" json:"mass"`
	Radius         float64 `yaml:"radius" json:"radius"`
	RotationPeriod float64 `yaml:"rotation_period" json:"rotation_period"`
	Atmosphere     bool    `yaml:"atmosphere,omitempty" json:"atmosphere,omitempty"`

	SemiMajorAxis          float64 `yaml:"semi_major_axis,omitempty" json:"semi_major_axis,omitempty"`
	Eccentricity           float64 `yaml:"eccentricity,omitempty" json:"eccentricity,omitempty"`
	Inclination            float64 `yaml:"inclination,omitempty" json:"inclination,omitempty"`
	MeanAnomalyAtEpoch     float64 `yaml:"mean_anomaly_at_epoch,omitempty" json:"mean_anomaly_at_epoch,omitempty"`
	LongitudeAscendingNode float64 `yaml:"longitude_ascending_node,omitempty" json:"longitude_ascending_node,omitempty"`
	ArgumentOfPeriapsis    float64 `yaml:"argument_of_periapsis,omitempty" json:"argument_of_periapsis,omitempty"`
	SphereOfInfluence      float64 `yaml:"sphere_of_influence,omitempty" json:"sphere_of_influence,omitempty"`
}

// Baseline is a complete default system: a star, the bodies orbiting it in
// iteration order, and the designated home body.
type Baseline struct {
	Name   string `yaml:"name" json:"name"`
	Home   string `yaml:"home" json:"home"`
	Star   Body   `yaml:"star" json:"star"`
	Bodies []Body `yaml:"bodies" json:"bodies"`
}

// Find returns the body with the given name, the star included.
func (b *Baseline) Find(name string) (Body, bool) {
	if b.Star.Name == name {
		return b.Star, true
	}
	for _, body := range b.Bodies {
		if body.Name == name {
			return body, true
		}
	}
	return Body{}, false
}

// StarInfluence is the apoapsis of the farthest baseline orbit, used as the
// star's sphere of influence during generation.
func (b *Baseline) StarInfluence() float64 {
	influence := 0.0
	for _, body := range b.Bodies {
		influence = math.Max(influence, orbital.Apoapsis(body.SemiMajorAxis, body.Eccentricity))
	}
	return influence
}

// Validate checks the baseline is usable as generator input.
func (b *Baseline) Validate() error {
	if b.Star.Name == "" {
		return errors.Validation("baseline star has no name")
	}
	if len(b.Bodies) == 0 {
		return errors.Validation("baseline has no orbiting bodies")
	}

	names := map[string]bool{b.Star.Name: true}
	for _, body := range b.Bodies {
		if body.Name == "" {
			return errors.Validation("baseline body has no name")
		}
		if names[body.Name] {
			return errors.Validationf("duplicate body name %q", body.Name)
		}
		names[body.Name] = true
	}

	if !names[b.Home] || b.Home == b.Star.Name {
		return errors.Validationf("home body %q is not an orbiting body", b.Home)
	}

	for _, body := range append([]Body{b.Star}, b.Bodies...) {
		if err := body.validate(); err != nil {
			return err
		}
	}

	for _, body := range b.Bodies {
		if body.Parent == "" {
			return errors.Validationf("body %q has no parent", body.Name)
		}
		if !names[body.Parent] {
			return errors.Validationf("body %q orbits unknown parent %q", body.Name, body.Parent)
		}
	}

	return nil
}

func (body Body) validate() error {
	if !(body.Mass > 0) || math.IsInf(body.Mass, 0) {
		return errors.Validationf("body %q has invalid mass %v", body.Name, body.Mass)
	}
	if !(body.Radius > 0) || math.IsInf(body.Radius, 0) {
		return errors.Validationf("body %q has invalid radius %v", body.Name, body.Radius)
	}
	if body.Eccentricity < 0 || body.Eccentricity >= 1 {
		return errors.Validationf("body %q has eccentricity %v outside [0,1)", body.Name, body.Eccentricity)
	}
	return nil
}

func (body Body) String() string {
	return fmt.Sprintf("%s (parent %s, mass %.4g kg, radius %.4g m)", body.Name, body.Parent, body.Mass, body.Radius)
}
