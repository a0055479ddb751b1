package generator

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"planet-randomizer/internal/body"
	"planet-randomizer/internal/orbital"
)

// orbitFixture builds a run holding a single primary and the given satellites.
func orbitFixture(cfg Config, primary *body.Body, moons ...*body.Body) *run {
	r := newRun(cfg, 11, discardLogger())
	r.star = primary
	for i, m := range moons {
		if m.Rank == 0 {
			m.Rank = i + 1
		}
		r.bodies = append(r.bodies, m)
	}
	return r
}

func TestConstructOrbitRotation(t *testing.T) {
	tests := []struct {
		name           string
		moonMass       float64
		moonRadius     float64
		minRadius      float64 // in primary radii
		soi            float64
		wantLocked     bool
		wantReciprocal bool
	}{
		{
			name: "inside locking radius", moonMass: 1e18, moonRadius: 1e3,
			minRadius: 50, soi: 60e6, wantLocked: true,
		},
		{
			name: "outside locking radius", moonMass: 1e18, moonRadius: 1e3,
			minRadius: 100, soi: 200e6,
		},
		{
			name: "massive and close", moonMass: 5e22, moonRadius: 1e5,
			minRadius: 10, soi: 20e6, wantLocked: true, wantReciprocal: true,
		},
		{
			name: "massive but beyond a third of the locking radius", moonMass: 5e22, moonRadius: 1e5,
			minRadius: 30, soi: 60e6, wantLocked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.SmaMinRadius = tt.minRadius
			cfg.SmaMaxSOI = 1

			primary := &body.Body{Name: "Primary", Mass: 1e24, Radius: 1e6, SphereOfInfluence: tt.soi, RotationPeriod: 1000}
			moon := &body.Body{Name: "Moon", Mass: tt.moonMass, Radius: tt.moonRadius}
			r := orbitFixture(cfg, primary, moon)

			result, err := r.constructOrbit(moon, primary, false)
			if err != nil {
				t.Fatalf("constructOrbit() error = %v", err)
			}
			if result.outcome != outcomePlaced {
				t.Fatalf("outcome = %s, want placed", result.outcome)
			}

			period := orbital.OrbitalPeriod(moon.SemiMajorAxis, moon.Mass, primary.Mass)
			if locked := moon.RotationPeriod == period; locked != tt.wantLocked {
				t.Errorf("locked = %v, want %v (axis %v)", locked, tt.wantLocked, moon.SemiMajorAxis)
			}
			if reciprocal := primary.RotationPeriod == period; reciprocal != tt.wantReciprocal {
				t.Errorf("primary locked = %v, want %v", reciprocal, tt.wantReciprocal)
			}

			if !tt.wantLocked {
				fastest := orbital.BaseRotationPeriod(moon.Radius, moon.Mass) / cfg.MaxRotationRate
				if moon.RotationPeriod < fastest || moon.RotationPeriod > fastest/cfg.MinRotationFactor {
					t.Errorf("rotation %v outside [%v, %v]", moon.RotationPeriod, fastest, fastest/cfg.MinRotationFactor)
				}
			}
		})
	}
}

func TestRotateLockingThresholds(t *testing.T) {
	cfg := DefaultConfig()
	const primaryMass, primaryRadius = 1e24, 1e6
	lockingRadius := primaryRadius * cfg.MaxTidalLockingRadius
	massThreshold := primaryMass * cfg.MinTidalLockingMassRatio

	tests := []struct {
		name           string
		axis           float64
		mass           float64
		wantLocked     bool
		wantReciprocal bool
	}{
		{"at locking radius", lockingRadius, 1e18, true, false},
		{"just below locking radius", math.Nextafter(lockingRadius, 0), 1e18, true, false},
		{"just above locking radius", math.Nextafter(lockingRadius, math.Inf(1)), 1e18, false, false},
		{"massive at a third", lockingRadius / 3, massThreshold, true, true},
		{"massive just above a third", math.Nextafter(lockingRadius/3, math.Inf(1)), massThreshold, true, false},
		{"just too light at a third", lockingRadius / 3, math.Nextafter(massThreshold, 0), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &body.Body{Name: "Primary", Mass: primaryMass, Radius: primaryRadius, RotationPeriod: 1000}
			moon := &body.Body{Name: "Moon", Mass: tt.mass, Radius: 1e3, SemiMajorAxis: tt.axis}
			r := orbitFixture(cfg, primary, moon)

			r.rotate(moon, primary)

			period := orbital.OrbitalPeriod(tt.axis, tt.mass, primaryMass)
			if locked := moon.RotationPeriod == period; locked != tt.wantLocked {
				t.Errorf("locked = %v, want %v (rotation %v, period %v)", locked, tt.wantLocked, moon.RotationPeriod, period)
			}
			if reciprocal := primary.RotationPeriod == period; reciprocal != tt.wantReciprocal {
				t.Errorf("primary locked = %v, want %v", reciprocal, tt.wantReciprocal)
			}
			if !tt.wantReciprocal && primary.RotationPeriod != 1000 {
				t.Errorf("primary rotation = %v, want unchanged", primary.RotationPeriod)
			}
		})
	}
}

func TestConstructOrbitCommitsElements(t *testing.T) {
	cfg := DefaultConfig()
	primary := &body.Body{Name: "Primary", Mass: 1e24, Radius: 1e6, SphereOfInfluence: 1e9}
	moon := &body.Body{Name: "Moon", Mass: 1e18, Radius: 1e3, Rank: 1}
	r := orbitFixture(cfg, primary, moon)

	if _, err := r.constructOrbit(moon, primary, false); err != nil {
		t.Fatalf("constructOrbit() error = %v", err)
	}

	if moon.ReferenceBody != "Primary" {
		t.Errorf("ReferenceBody = %q, want Primary", moon.ReferenceBody)
	}
	if want := orbital.SphereOfInfluence(moon.SemiMajorAxis, moon.Mass, primary.Mass); moon.SphereOfInfluence != want {
		t.Errorf("SphereOfInfluence = %v, want %v", moon.SphereOfInfluence, want)
	}
	// A sole body ranks last, so its stability factor is one.
	if moon.Eccentricity >= cfg.EccMax || moon.Inclination >= cfg.IncMax {
		t.Errorf("eccentricity %v / inclination %v out of range", moon.Eccentricity, moon.Inclination)
	}
	if moon.Forced {
		t.Error("Forced = true on a clear orbit")
	}
}

func TestConstructOrbitRejections(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("mass ratio", func(t *testing.T) {
		primary := &body.Body{Name: "Primary", Mass: 1e24, Radius: 1e6, SphereOfInfluence: 1e9}
		moon := &body.Body{Name: "Moon", Mass: 2e23, Radius: 1e5}
		r := orbitFixture(cfg, primary, moon)

		result, err := r.constructOrbit(moon, primary, true)
		if err != nil {
			t.Fatalf("constructOrbit() error = %v", err)
		}
		if result.outcome != outcomeMassRatio || result.placed() {
			t.Errorf("outcome = %s, want mass_ratio", result.outcome)
		}
		if moon.ReferenceBody != "" {
			t.Error("rejected body was committed")
		}
		assertNoDraws(t, r)
	})

	t.Run("empty band", func(t *testing.T) {
		primary := &body.Body{Name: "Primary", Mass: 1e24, Radius: 1e6, SphereOfInfluence: 1e6}
		moon := &body.Body{Name: "Moon", Mass: 1e18, Radius: 1e3}
		r := orbitFixture(cfg, primary, moon)

		result, err := r.constructOrbit(moon, primary, true)
		if err != nil {
			t.Fatalf("constructOrbit() error = %v", err)
		}
		if result.outcome != outcomeEmptyBand {
			t.Errorf("outcome = %s, want empty_band", result.outcome)
		}
		assertNoDraws(t, r)
	})

	t.Run("infinite bracket", func(t *testing.T) {
		primary := &body.Body{Name: "Primary", Mass: 1e24, Radius: 1e6, SphereOfInfluence: math.Inf(1)}
		moon := &body.Body{Name: "Moon", Mass: 1e18, Radius: 1e3}
		r := orbitFixture(cfg, primary, moon)

		_, err := r.constructOrbit(moon, primary, false)
		var arithErr *ArithmeticError
		if !errors.As(err, &arithErr) {
			t.Fatalf("constructOrbit() error = %v, want ArithmeticError", err)
		}
		if arithErr.Body != "Moon" || arithErr.Reference != "Primary" {
			t.Errorf("ArithmeticError = %+v", arithErr)
		}
	})

	t.Run("massless body", func(t *testing.T) {
		primary := &body.Body{Name: "Primary", Mass: 1e24, Radius: 1e6, SphereOfInfluence: 1e9}
		moon := &body.Body{Name: "Moon", Mass: 0, Radius: 1e3}
		r := orbitFixture(cfg, primary, moon)

		_, err := r.constructOrbit(moon, primary, false)
		var arithErr *ArithmeticError
		if !errors.As(err, &arithErr) {
			t.Fatalf("constructOrbit() error = %v, want ArithmeticError", err)
		}
	})
}

func TestConstructOrbitCollision(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SmaMaxSOI = 1

	newFixture := func() (*run, *body.Body, *body.Body) {
		primary := &body.Body{Name: "Primary", Mass: 1e24, Radius: 1e6, SphereOfInfluence: 2e7}
		// The sibling's influence zone covers the whole [1e7, 2e7] band.
		sibling := &body.Body{
			Name: "Sibling", Mass: 1e20, Radius: 1e4, ReferenceBody: "Primary",
			SemiMajorAxis: 1.5e7, SphereOfInfluence: 1e8, Rank: 1,
		}
		moon := &body.Body{Name: "Moon", Mass: 1e18, Radius: 1e3, Rank: 2}
		return orbitFixture(cfg, primary, sibling, moon), primary, moon
	}

	r, primary, moon := newFixture()
	result, err := r.constructOrbit(moon, primary, false)
	if err != nil {
		t.Fatalf("constructOrbit() error = %v", err)
	}
	if result.outcome != outcomeCollision {
		t.Fatalf("outcome = %s, want collision", result.outcome)
	}
	if result.orbitAttempts != cfg.MaxOrbitAttempts {
		t.Errorf("orbitAttempts = %d, want %d", result.orbitAttempts, cfg.MaxOrbitAttempts)
	}
	if moon.ReferenceBody != "" {
		t.Error("colliding body was committed")
	}

	r, primary, moon = newFixture()
	result, err = r.constructOrbit(moon, primary, true)
	if err != nil {
		t.Fatalf("forced constructOrbit() error = %v", err)
	}
	if result.outcome != outcomeForced || !result.placed() {
		t.Fatalf("outcome = %s, want forced", result.outcome)
	}
	if !moon.Forced || moon.ReferenceBody != "Primary" {
		t.Errorf("forced body = %+v", moon)
	}
	if moon.SemiMajorAxis < 1e7 || moon.SemiMajorAxis > 2e7 {
		t.Errorf("forced axis %v outside band", moon.SemiMajorAxis)
	}
}

func TestClearOfSiblingsIgnoresOtherPrimaries(t *testing.T) {
	cfg := DefaultConfig()
	primary := &body.Body{Name: "Primary", Mass: 1e24, Radius: 1e6, SphereOfInfluence: 2e7}
	stranger := &body.Body{
		Name: "Stranger", Mass: 1e20, ReferenceBody: "Elsewhere",
		SemiMajorAxis: 1.5e7, SphereOfInfluence: 1e8,
	}
	moon := &body.Body{Name: "Moon", Mass: 1e18, Radius: 1e3}
	r := orbitFixture(cfg, primary, stranger, moon)

	if !r.clearOfSiblings(moon, primary, 1.5e7, 0) {
		t.Error("body orbiting another primary blocked the orbit")
	}
}

// assertNoDraws fails if the run's random stream has advanced.
func assertNoDraws(t *testing.T, r *run) {
	t.Helper()
	fresh := rand.New(rand.NewSource(11))
	if got, want := r.rng.Float64(), fresh.Float64(); got != want {
		t.Error("rejection consumed random draws")
	}
}
