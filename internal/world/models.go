package world

import (
	"fmt"

	"planet-randomizer/internal/science"
)

// Atmosphere shell radii relative to the body radius and the outer shell.
const (
	atmosphereOuterScale = 1.025
	atmosphereInnerScale = 0.975
)

// Orbit is the live orbit of a body around its parent.
type Orbit struct {
	SemiMajorAxis          float64 `json:"semi_major_axis"`
	Eccentricity           float64 `json:"eccentricity"`
	Inclination            float64 `json:"inclination"`
	MeanAnomalyAtEpoch     float64 `json:"mean_anomaly_at_epoch"`
	LongitudeAscendingNode float64 `json:"longitude_ascending_node"`
	ArgumentOfPeriapsis    float64 `json:"argument_of_periapsis"`
	Period                 float64 `json:"period"`
}

// Body is the live state of one body as the running world sees it.
type Body struct {
	Name     string   `json:"name"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children"`

	Radius         float64 `json:"radius"`
	Mass           float64 `json:"mass"`
	GeeASL         float64 `json:"gee_asl"`
	GravParameter  float64 `json:"grav_parameter"`
	RotationPeriod float64 `json:"rotation_period"`
	TidallyLocked  bool    `json:"tidally_locked"`

	// Scale is the scaled-space model size relative to the stock model.
	Scale float64 `json:"scale"`

	Atmosphere            bool    `json:"atmosphere"`
	AtmosphereOuterRadius float64 `json:"atmosphere_outer_radius,omitempty"`
	AtmosphereInnerRadius float64 `json:"atmosphere_inner_radius,omitempty"`

	Orbit             *Orbit          `json:"orbit,omitempty"`
	SphereOfInfluence float64         `json:"sphere_of_influence"`
	HillSphere        float64         `json:"hill_sphere"`
	Science           *science.Values `json:"science,omitempty"` // nil keeps stock values
}

func (b *Body) clone() Body {
	c := *b
	c.Children = append([]string(nil), b.Children...)
	if b.Orbit != nil {
		o := *b.Orbit
		c.Orbit = &o
	}
	if b.Science != nil {
		s := *b.Science
		c.Science = &s
	}
	return c
}

// LookupError reports a record whose body or reference is not in the world.
type LookupError struct {
	Body      string
	Reference string
}

func (e *LookupError) Error() string {
	if e.Reference != "" {
		return fmt.Sprintf("no such reference body %q for %q", e.Reference, e.Body)
	}
	return fmt.Sprintf("no such body %q", e.Body)
}

// ApplyReport summarizes one Apply call.
type ApplyReport struct {
	Applied      int            `json:"applied"`
	LookupErrors []*LookupError `json:"-"`
}

// Missing lists the lookup failures as text.
func (r ApplyReport) Missing() []string {
	missing := make([]string, 0, len(r.LookupErrors))
	for _, err := range r.LookupErrors {
		missing = append(missing, err.Error())
	}
	return missing
}
