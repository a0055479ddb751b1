package generator

import (
	"math"

	"planet-randomizer/internal/body"
	"planet-randomizer/internal/orbital"
)

type orbitOutcome string

const (
	outcomePlaced    orbitOutcome = "placed"
	outcomeForced    orbitOutcome = "forced"
	outcomeMassRatio orbitOutcome = "mass_ratio"
	outcomeEmptyBand orbitOutcome = "empty_band"
	outcomeCollision orbitOutcome = "collision"
)

type orbitResult struct {
	outcome       orbitOutcome
	orbitAttempts int
}

func (r orbitResult) placed() bool {
	return r.outcome == outcomePlaced || r.outcome == outcomeForced
}

// constructOrbit searches for an orbit of moon around reference and commits
// it on success. With force set, the last drawn orbit is kept even when it
// crowds a sibling; the mass ratio is enforced regardless.
func (r *run) constructOrbit(moon, reference *body.Body, force bool) (orbitResult, error) {
	if moon.Mass > reference.Mass*r.cfg.MaxMassRatio {
		return orbitResult{outcome: outcomeMassRatio}, nil
	}

	minOrbit := math.Max(orbital.RocheLimit(moon.Radius, moon.Mass, reference.Mass), reference.Radius*r.cfg.SmaMinRadius)
	maxOrbit := reference.SphereOfInfluence * r.cfg.SmaMaxSOI
	if !finite(minOrbit) || !finite(maxOrbit) {
		return orbitResult{}, r.arithmeticError(moon, reference, minOrbit, maxOrbit)
	}
	if minOrbit > maxOrbit {
		return orbitResult{outcome: outcomeEmptyBand}, nil
	}

	stability := r.stability(moon.Rank)

	var axis, eccentricity float64
	fits := false
	attempts := 0
	for attempts < r.cfg.MaxOrbitAttempts {
		attempts++
		axis = r.rng.Float64()*(maxOrbit-minOrbit) + minOrbit
		eccentricity = r.cfg.EccMax * r.rng.Float64() * stability
		if !finite(axis) {
			return orbitResult{}, r.arithmeticError(moon, reference, minOrbit, maxOrbit)
		}
		if r.clearOfSiblings(moon, reference, axis, eccentricity) {
			fits = true
			break
		}
	}

	if !fits && !force {
		return orbitResult{outcome: outcomeCollision, orbitAttempts: attempts}, nil
	}

	moon.ReferenceBody = reference.Name
	moon.SemiMajorAxis = axis
	moon.SphereOfInfluence = orbital.SphereOfInfluence(axis, moon.Mass, reference.Mass)
	moon.Eccentricity = eccentricity
	moon.Inclination = r.cfg.IncMax * r.rng.Float64() * stability
	moon.MeanAnomalyAtEpoch = 2 * math.Pi * r.rng.Float64()
	moon.LongitudeAscendingNode = 360 * r.rng.Float64()
	moon.ArgumentOfPeriapsis = 360 * r.rng.Float64()
	moon.Forced = !fits

	r.rotate(moon, reference)

	if !fits {
		return orbitResult{outcome: outcomeForced, orbitAttempts: attempts}, nil
	}
	return orbitResult{outcome: outcomePlaced, orbitAttempts: attempts}, nil
}

// clearOfSiblings reports whether an orbit keeps its influence zone apart
// from every body already orbiting the same reference.
func (r *run) clearOfSiblings(moon, reference *body.Body, axis, eccentricity float64) bool {
	moonSOI := orbital.SphereOfInfluence(axis, moon.Mass, reference.Mass)
	apoapsis := orbital.Apoapsis(axis, eccentricity)
	periapsis := orbital.Periapsis(axis, eccentricity)

	for _, sibling := range r.bodies {
		if sibling == moon || sibling.ReferenceBody != reference.Name {
			continue
		}
		margin := body.SeparationMargin(moonSOI, sibling.SphereOfInfluence, r.cfg.SOISeparationFactor)
		if !body.OrbitsClear(
			periapsis, apoapsis,
			orbital.Periapsis(sibling.SemiMajorAxis, sibling.Eccentricity),
			orbital.Apoapsis(sibling.SemiMajorAxis, sibling.Eccentricity),
			margin,
		) {
			return false
		}
	}
	return true
}

// rotate derives the rotation period. Close satellites are tidally locked to
// their primary; massive, very close ones lock the primary as well.
func (r *run) rotate(moon, reference *body.Body) {
	lockingRadius := reference.Radius * r.cfg.MaxTidalLockingRadius

	if moon.SemiMajorAxis <= lockingRadius {
		period := orbital.OrbitalPeriod(moon.SemiMajorAxis, moon.Mass, reference.Mass)
		moon.RotationPeriod = period

		if moon.Mass >= reference.Mass*r.cfg.MinTidalLockingMassRatio && moon.SemiMajorAxis <= lockingRadius/3 {
			reference.RotationPeriod = period
		}
		return
	}

	// Inversely distributed between MaxRotationRate and MaxRotationRate*MinRotationFactor.
	fastest := orbital.BaseRotationPeriod(moon.Radius, moon.Mass) / r.cfg.MaxRotationRate
	moon.RotationPeriod = fastest / (r.cfg.MinRotationFactor + (1-r.cfg.MinRotationFactor)*r.rng.Float64())
}

func (r *run) arithmeticError(moon, reference *body.Body, minOrbit, maxOrbit float64) error {
	return &ArithmeticError{
		Body:            moon.Name,
		Reference:       reference.Name,
		MinOrbit:        minOrbit,
		MaxOrbit:        maxOrbit,
		ReferenceRadius: reference.Radius,
		ReferenceSOI:    reference.SphereOfInfluence,
	}
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
