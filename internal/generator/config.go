package generator

import (
	"planet-randomizer/internal/body"
	"planet-randomizer/internal/shared/errors"
)

// Config holds the generator tunables.
type Config struct {
	EccMax                   float64 `json:"ecc_max" yaml:"ecc_max"`                                       // maximum eccentricity
	IncMax                   float64 `json:"inc_max" yaml:"inc_max"`                                       // maximum inclination, degrees
	SmaMinRadius             float64 `json:"sma_min_radius" yaml:"sma_min_radius"`                         // minimum semi-major axis in reference radii
	SmaMaxSOI                float64 `json:"sma_max_soi" yaml:"sma_max_soi"`                               // maximum semi-major axis in reference SOI radii
	MaxMassRatio             float64 `json:"max_mass_ratio" yaml:"max_mass_ratio"`                         // satellite mass limit relative to its primary
	MinTidalLockingMassRatio float64 `json:"min_tidal_locking_mass_ratio" yaml:"min_tidal_locking_mass_ratio"` // satellite mass at which the primary locks too
	MaxTidalLockingRadius    float64 `json:"max_tidal_locking_radius" yaml:"max_tidal_locking_radius"`     // locking distance in reference radii
	MaxRotationRate          float64 `json:"max_rotation_rate" yaml:"max_rotation_rate"`                   // fastest spin as a fraction of surface orbital speed
	MinRotationFactor        float64 `json:"min_rotation_factor" yaml:"min_rotation_factor"`               // slowest spin as a fraction of the fastest
	EccIncExponent           float64 `json:"ecc_inc_exponent" yaml:"ecc_inc_exponent"`
	SOISeparationFactor      float64 `json:"soi_separation_factor" yaml:"soi_separation_factor"`
	ProbabilityOfSunOrbit    float64 `json:"probability_of_sun_orbit" yaml:"probability_of_sun_orbit"`

	MaxReferenceAttempts int `json:"max_reference_attempts" yaml:"max_reference_attempts"`
	MaxOrbitAttempts     int `json:"max_orbit_attempts" yaml:"max_orbit_attempts"`
}

func DefaultConfig() Config {
	return Config{
		EccMax:                   0.4,
		IncMax:                   20,
		SmaMinRadius:             10.0,
		SmaMaxSOI:                0.4,
		MaxMassRatio:             0.1,
		MinTidalLockingMassRatio: 0.02,
		MaxTidalLockingRadius:    80,
		MaxRotationRate:          0.2,
		MinRotationFactor:        0.01,
		EccIncExponent:           2.0,
		SOISeparationFactor:      2.0,
		ProbabilityOfSunOrbit:    0.2,
		MaxReferenceAttempts:     150,
		MaxOrbitAttempts:         150,
	}
}

func (c Config) Validate() error {
	if c.EccMax < 0 || c.EccMax >= 1 {
		return errors.Validationf("ecc_max %v must be in [0,1)", c.EccMax)
	}
	if c.IncMax < 0 {
		return errors.Validationf("inc_max %v must not be negative", c.IncMax)
	}
	if c.SmaMinRadius <= 0 || c.SmaMaxSOI <= 0 {
		return errors.Validation("semi-major axis bounds must be positive")
	}
	if c.MaxMassRatio <= 0 {
		return errors.Validationf("max_mass_ratio %v must be positive", c.MaxMassRatio)
	}
	if c.MaxTidalLockingRadius < 0 || c.MinTidalLockingMassRatio < 0 {
		return errors.Validation("tidal locking thresholds must not be negative")
	}
	if c.MaxRotationRate <= 0 {
		return errors.Validationf("max_rotation_rate %v must be positive", c.MaxRotationRate)
	}
	if c.MinRotationFactor <= 0 || c.MinRotationFactor > 1 {
		return errors.Validationf("min_rotation_factor %v must be in (0,1]", c.MinRotationFactor)
	}
	if c.SOISeparationFactor < 0 {
		return errors.Validationf("soi_separation_factor %v must not be negative", c.SOISeparationFactor)
	}
	if c.ProbabilityOfSunOrbit < 0 || c.ProbabilityOfSunOrbit > 1 {
		return errors.Validationf("probability_of_sun_orbit %v must be in [0,1]", c.ProbabilityOfSunOrbit)
	}
	if c.MaxReferenceAttempts < 1 || c.MaxOrbitAttempts < 1 {
		return errors.Validation("attempt limits must be at least 1")
	}
	return nil
}

// Limits returns the tunables the generated invariants are checked against.
func (c Config) Limits() body.Limits {
	return body.Limits{
		MaxMassRatio:        c.MaxMassRatio,
		SOISeparationFactor: c.SOISeparationFactor,
	}
}
