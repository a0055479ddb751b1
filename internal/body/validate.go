package body

import (
	"fmt"

	"planet-randomizer/internal/orbital"
)

// Limits carries the generator tunables the invariants depend on.
type Limits struct {
	MaxMassRatio        float64
	SOISeparationFactor float64
}

// OrbitsClear reports whether the band [periapsis, apoapsis] stays at least
// margin away from [otherPeriapsis, otherApoapsis].
func OrbitsClear(periapsis, apoapsis, otherPeriapsis, otherApoapsis, margin float64) bool {
	return apoapsis <= otherPeriapsis-margin || periapsis >= otherApoapsis+margin
}

// SeparationMargin is the clearance two siblings must keep, in combined SOI units.
func SeparationMargin(soi, otherSOI, factor float64) float64 {
	return (otherSOI + soi) * factor
}

// Validate runs every invariant check over a generated set.
func Validate(star Body, bodies []Body, limits Limits) []Violation {
	var violations []Violation
	violations = append(violations, CheckTree(star, bodies)...)
	violations = append(violations, CheckMassRatios(star, bodies, limits.MaxMassRatio)...)
	violations = append(violations, CheckSeparation(bodies, limits.SOISeparationFactor)...)
	violations = append(violations, CheckRotation(star, bodies)...)
	return violations
}

// CheckTree verifies names are unique and that every body reaches the star
// through its reference chain without revisiting a body.
func CheckTree(star Body, bodies []Body) []Violation {
	var violations []Violation

	parents := make(map[string]string, len(bodies)+1)
	parents[star.Name] = ""
	for _, b := range bodies {
		if _, exists := parents[b.Name]; exists {
			violations = append(violations, Violation{Body: b.Name, Rule: RuleDuplicateName, Detail: "name appears more than once"})
			continue
		}
		parents[b.Name] = b.ReferenceBody
	}

	for _, b := range bodies {
		if b.ReferenceBody == "" {
			violations = append(violations, Violation{Body: b.Name, Rule: RuleUnknownParent, Detail: "no reference body"})
			continue
		}

		seen := map[string]bool{b.Name: true}
		current := b.ReferenceBody
		for current != star.Name {
			next, ok := parents[current]
			if !ok {
				violations = append(violations, Violation{Body: b.Name, Rule: RuleUnknownParent, Detail: fmt.Sprintf("reference %q does not exist", current)})
				break
			}
			if seen[current] {
				violations = append(violations, Violation{Body: b.Name, Rule: RuleCycle, Detail: fmt.Sprintf("reference chain revisits %q", current)})
				break
			}
			seen[current] = true
			current = next
		}
	}

	return violations
}

// CheckMassRatios verifies every satellite is light enough to stay bound.
func CheckMassRatios(star Body, bodies []Body, maxMassRatio float64) []Violation {
	masses := make(map[string]float64, len(bodies)+1)
	masses[star.Name] = star.Mass
	for _, b := range bodies {
		masses[b.Name] = b.Mass
	}

	var violations []Violation
	for _, b := range bodies {
		parentMass, ok := masses[b.ReferenceBody]
		if !ok {
			continue
		}
		if b.Mass > parentMass*maxMassRatio {
			violations = append(violations, Violation{
				Body:   b.Name,
				Rule:   RuleMassRatio,
				Detail: fmt.Sprintf("mass %.4g exceeds %.4g of %s", b.Mass, parentMass*maxMassRatio, b.ReferenceBody),
			})
		}
	}
	return violations
}

// CheckSeparation verifies siblings keep their influence zones apart. Pairs
// involving a forced placement are exempt.
func CheckSeparation(bodies []Body, factor float64) []Violation {
	var violations []Violation
	for i := range bodies {
		a := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if a.ReferenceBody != b.ReferenceBody || a.Forced || b.Forced {
				continue
			}
			margin := SeparationMargin(a.SphereOfInfluence, b.SphereOfInfluence, factor)
			if !OrbitsClear(
				orbital.Periapsis(a.SemiMajorAxis, a.Eccentricity), orbital.Apoapsis(a.SemiMajorAxis, a.Eccentricity),
				orbital.Periapsis(b.SemiMajorAxis, b.Eccentricity), orbital.Apoapsis(b.SemiMajorAxis, b.Eccentricity),
				margin,
			) {
				violations = append(violations, Violation{
					Body:   a.Name,
					Rule:   RuleSeparation,
					Detail: fmt.Sprintf("orbit within %.4g m of sibling %s", margin, b.Name),
				})
			}
		}
	}
	return violations
}

// CheckRotation verifies every rotation period is positive.
func CheckRotation(star Body, bodies []Body) []Violation {
	var violations []Violation
	for _, b := range append([]Body{star}, bodies...) {
		if !(b.RotationPeriod > 0) {
			violations = append(violations, Violation{Body: b.Name, Rule: RuleRotation, Detail: fmt.Sprintf("rotation period %v", b.RotationPeriod)})
		}
	}
	return violations
}
