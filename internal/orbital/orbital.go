package orbital

import "math"

const (
	// G is the gravitational constant used throughout generation and application.
	G = 6.674e-11

	// StandardGravity converts surface gravity to multiples of g.
	StandardGravity = 9.81

	// soiExponent shapes the sphere of influence. It is not the Hill-sphere 1/3.
	soiExponent = 0.4

	rocheCoefficient = 1.26
)

// Apoapsis returns the farthest distance of an orbit from its reference body.
func Apoapsis(semiMajorAxis, eccentricity float64) float64 {
	return semiMajorAxis * (1 + eccentricity)
}

// Periapsis returns the nearest distance of an orbit from its reference body.
func Periapsis(semiMajorAxis, eccentricity float64) float64 {
	return semiMajorAxis * (1 - eccentricity)
}

// SphereOfInfluence returns the radius beyond which a body of mass m orbiting
// a reference of mass referenceMass no longer dominates. Satellites placed
// outside it would escape.
func SphereOfInfluence(semiMajorAxis, mass, referenceMass float64) float64 {
	return semiMajorAxis * math.Pow(mass/(referenceMass+mass), soiExponent)
}

// HillSphere returns the classical Hill radius.
func HillSphere(semiMajorAxis, mass, referenceMass float64) float64 {
	return semiMajorAxis * math.Cbrt(mass/(3*referenceMass))
}

// RocheLimit returns the distance inside which a body of the given radius and
// mass would be torn apart by a reference of mass referenceMass.
func RocheLimit(radius, mass, referenceMass float64) float64 {
	return rocheCoefficient * radius * math.Cbrt(referenceMass/mass)
}

// OrbitalPeriod applies Kepler's third law to a two-body system.
func OrbitalPeriod(semiMajorAxis, mass, referenceMass float64) float64 {
	return 2 * math.Pi * math.Sqrt(math.Pow(semiMajorAxis, 3)/(G*(mass+referenceMass)))
}

// BaseRotationPeriod is the period of a circular orbit skimming the surface.
func BaseRotationPeriod(radius, mass float64) float64 {
	return 2 * math.Pi * math.Sqrt(math.Pow(radius, 3)/(G*mass))
}

// SurfaceGravity returns the gravitational acceleration at the surface in m/s².
func SurfaceGravity(mass, radius float64) float64 {
	return G * mass / (radius * radius)
}
