package body

// Body is the generation record for one celestial body. The star is the
// record with an empty ReferenceBody.
type Body struct {
	Name   string  `json:"name" yaml:"name"`
	Mass   float64 `json:"mass" yaml:"mass"`
	Radius float64 `json:"radius" yaml:"radius"`

	SemiMajorAxis          float64 `json:"semi_major_axis" yaml:"semi_major_axis"`
	Eccentricity           float64 `json:"eccentricity" yaml:"eccentricity"`
	Inclination            float64 `json:"inclination" yaml:"inclination"`                     // degrees
	MeanAnomalyAtEpoch     float64 `json:"mean_anomaly_at_epoch" yaml:"mean_anomaly_at_epoch"` // radians
	LongitudeAscendingNode float64 `json:"longitude_ascending_node" yaml:"longitude_ascending_node"`
	ArgumentOfPeriapsis    float64 `json:"argument_of_periapsis" yaml:"argument_of_periapsis"`

	SphereOfInfluence float64 `json:"sphere_of_influence" yaml:"sphere_of_influence"`
	ReferenceBody     string  `json:"reference_body" yaml:"reference_body"`
	Rank              int     `json:"rank" yaml:"rank"`
	RotationPeriod    float64 `json:"rotation_period" yaml:"rotation_period"`

	Forced       bool `json:"forced,omitempty" yaml:"forced,omitempty"`
	Atmosphere   bool `json:"atmosphere" yaml:"atmosphere"`
	ScienceIndex int  `json:"science_index" yaml:"science_index"`
}

func (b *Body) IsStar() bool {
	return b.ReferenceBody == ""
}

// Rule names a record invariant.
type Rule string

const (
	RuleUnknownParent Rule = "unknown_parent"
	RuleCycle         Rule = "cycle"
	RuleDuplicateName Rule = "duplicate_name"
	RuleMassRatio     Rule = "mass_ratio"
	RuleSeparation    Rule = "separation"
	RuleRotation      Rule = "rotation"
)

// Violation is one broken invariant found by a check.
type Violation struct {
	Body   string `json:"body"`
	Rule   Rule   `json:"rule"`
	Detail string `json:"detail"`
}

func (v Violation) String() string {
	return v.Body + ": " + string(v.Rule) + ": " + v.Detail
}
