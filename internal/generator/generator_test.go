package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"testing"

	"planet-randomizer/internal/baseline"
	"planet-randomizer/internal/body"
	"planet-randomizer/internal/orbital"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func generate(t *testing.T, seed int64) *System {
	t.Helper()
	sys, err := New(DefaultConfig(), seed, WithLogger(discardLogger())).Generate(baseline.Kerbol())
	if err != nil {
		t.Fatalf("Generate(seed %d) error = %v", seed, err)
	}
	return sys
}

func TestGenerateDeterministic(t *testing.T) {
	g := New(DefaultConfig(), 42, WithLogger(discardLogger()))

	first, err := g.Generate(baseline.Kerbol())
	if err != nil {
		t.Fatalf("first Generate() error = %v", err)
	}
	second, err := g.Generate(baseline.Kerbol())
	if err != nil {
		t.Fatalf("second Generate() error = %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Error("same seed produced different systems")
	}

	other := generate(t, 43)
	c, _ := json.Marshal(other)
	if bytes.Equal(a, c) {
		t.Error("different seeds produced identical systems")
	}
}

func TestGenerateInvariants(t *testing.T) {
	cfg := DefaultConfig()
	b := baseline.Kerbol()

	for seed := int64(0); seed < 25; seed++ {
		sys := generate(t, seed)

		if violations := sys.Validate(cfg); len(violations) > 0 {
			for _, v := range violations {
				t.Errorf("seed %d: %s", seed, v)
			}
		}

		if len(sys.Bodies) != len(b.Bodies) {
			t.Fatalf("seed %d: %d bodies, want %d", seed, len(sys.Bodies), len(b.Bodies))
		}
		if len(sys.Placements) != len(sys.Bodies) {
			t.Errorf("seed %d: %d placements for %d bodies", seed, len(sys.Placements), len(sys.Bodies))
		}
		if sys.Star.SphereOfInfluence != b.StarInfluence() {
			t.Errorf("seed %d: star SOI = %v, want %v", seed, sys.Star.SphereOfInfluence, b.StarInfluence())
		}

		for i, rec := range sys.Bodies {
			if rec.Rank != i+1 {
				t.Errorf("seed %d: %s rank = %d, want %d", seed, rec.Name, rec.Rank, i+1)
			}
			if i > 0 && rec.Mass > sys.Bodies[i-1].Mass {
				t.Errorf("seed %d: %s heavier than %s ranked above it", seed, rec.Name, sys.Bodies[i-1].Name)
			}
			if sys.Placements[i].Body != rec.Name || sys.Placements[i].Forced != rec.Forced {
				t.Errorf("seed %d: placement %+v does not match %s", seed, sys.Placements[i], rec.Name)
			}

			if rec.Eccentricity < 0 || rec.Eccentricity >= cfg.EccMax {
				t.Errorf("seed %d: %s eccentricity %v out of range", seed, rec.Name, rec.Eccentricity)
			}
			if rec.Inclination < 0 || rec.Inclination > cfg.IncMax {
				t.Errorf("seed %d: %s inclination %v out of range", seed, rec.Name, rec.Inclination)
			}
			if rec.MeanAnomalyAtEpoch < 0 || rec.MeanAnomalyAtEpoch >= 2*math.Pi {
				t.Errorf("seed %d: %s mean anomaly %v out of range", seed, rec.Name, rec.MeanAnomalyAtEpoch)
			}
			if rec.LongitudeAscendingNode < 0 || rec.LongitudeAscendingNode >= 360 ||
				rec.ArgumentOfPeriapsis < 0 || rec.ArgumentOfPeriapsis >= 360 {
				t.Errorf("seed %d: %s angles out of range", seed, rec.Name)
			}

			ref, ok := sys.Find(rec.ReferenceBody)
			if !ok {
				t.Fatalf("seed %d: %s orbits unknown %q", seed, rec.Name, rec.ReferenceBody)
			}
			if !ref.IsStar() && ref.Rank >= rec.Rank {
				t.Errorf("seed %d: %s (rank %d) orbits %s of rank %d", seed, rec.Name, rec.Rank, ref.Name, ref.Rank)
			}
			if rec.SemiMajorAxis < ref.Radius*cfg.SmaMinRadius || rec.SemiMajorAxis > ref.SphereOfInfluence*cfg.SmaMaxSOI {
				t.Errorf("seed %d: %s axis %v outside band around %s", seed, rec.Name, rec.SemiMajorAxis, ref.Name)
			}
			if want := orbital.SphereOfInfluence(rec.SemiMajorAxis, rec.Mass, ref.Mass); rec.SphereOfInfluence != want {
				t.Errorf("seed %d: %s SOI = %v, want %v", seed, rec.Name, rec.SphereOfInfluence, want)
			}
		}
	}
}

func TestGenerateKeepsHomeBody(t *testing.T) {
	b := baseline.Kerbol()
	kerbin, _ := b.Find("Kerbin")

	for seed := int64(1); seed <= 5; seed++ {
		sys := generate(t, seed)
		home, ok := sys.Find("Kerbin")
		if !ok {
			t.Fatal("Kerbin missing from generated system")
		}
		if home.Mass != kerbin.Mass || home.Radius != kerbin.Radius {
			t.Errorf("seed %d: Kerbin mass/radius = %v/%v, want %v/%v", seed, home.Mass, home.Radius, kerbin.Mass, kerbin.Radius)
		}
	}
}

func TestGenerateObserver(t *testing.T) {
	var seen []Placement
	g := New(DefaultConfig(), 7,
		WithLogger(discardLogger()),
		WithObserver(func(p Placement) { seen = append(seen, p) }),
	)

	sys, err := g.Generate(baseline.Kerbol())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(seen) != len(sys.Placements) {
		t.Fatalf("observer saw %d placements, want %d", len(seen), len(sys.Placements))
	}
	for i := range seen {
		if seen[i] != sys.Placements[i] {
			t.Errorf("placement %d = %+v, want %+v", i, seen[i], sys.Placements[i])
		}
	}
}

func TestPerturb(t *testing.T) {
	b := baseline.Kerbol()
	// A body heavier than a tenth of the star is resampled around that fraction.
	b.Bodies = append(b.Bodies, baseline.Body{
		Name: "Brown", Parent: "Sun", Mass: b.Star.Mass * 0.5, Radius: 7e7,
		SemiMajorAxis: 1e11, RotationPeriod: 1,
	})

	for seed := int64(0); seed < 10; seed++ {
		r := newRun(DefaultConfig(), seed, discardLogger())
		r.perturb(b)

		if r.star.Mass != b.Star.Mass || r.star.SphereOfInfluence != b.StarInfluence() {
			t.Errorf("seed %d: star changed: %+v", seed, r.star)
		}

		for i, rec := range r.bodies {
			base := b.Bodies[i]
			if rec.Name != base.Name {
				t.Fatalf("seed %d: body %d = %s, want baseline order %s", seed, i, rec.Name, base.Name)
			}
			if base.Name == b.Home {
				continue
			}
			if rec.Radius < base.Radius*0.5 || rec.Radius >= base.Radius*2 {
				t.Errorf("seed %d: %s radius %v outside [0.5, 2) of %v", seed, rec.Name, rec.Radius, base.Radius)
			}
			if base.Name == "Brown" {
				if rec.Mass < b.Star.Mass*0.05 || rec.Mass >= b.Star.Mass*0.2 {
					t.Errorf("seed %d: giant mass %v not resampled near a tenth of the star", seed, rec.Mass)
				}
				continue
			}
			density := rec.Mass / math.Pow(rec.Radius, 3)
			baseDensity := base.Mass / math.Pow(base.Radius, 3)
			if ratio := density / baseDensity; ratio < 0.5-1e-9 || ratio >= 2+1e-9 {
				t.Errorf("seed %d: %s density ratio %v outside [0.5, 2)", seed, rec.Name, ratio)
			}
		}
	}
}

func TestRankStable(t *testing.T) {
	r := newRun(DefaultConfig(), 1, discardLogger())
	r.bodies = []*body.Body{
		{Name: "a", Mass: 1},
		{Name: "b", Mass: 3},
		{Name: "c", Mass: 1},
		{Name: "d", Mass: 2},
	}
	r.rank()

	var got []string
	for _, rec := range r.bodies {
		got = append(got, rec.Name)
	}
	want := []string{"b", "d", "a", "c"}
	for i := range want {
		if got[i] != want[i] || r.bodies[i].Rank != i+1 {
			t.Fatalf("rank order = %v, want %v", got, want)
		}
	}
	if !sort.SliceIsSorted(r.bodies, func(i, j int) bool { return r.bodies[i].Mass > r.bodies[j].Mass }) {
		t.Error("bodies not sorted by descending mass")
	}
}

func TestChooseReference(t *testing.T) {
	cfg := DefaultConfig()
	r := newRun(cfg, 3, discardLogger())
	r.star = &body.Body{Name: "Sun"}
	for i := 0; i < 5; i++ {
		r.bodies = append(r.bodies, &body.Body{Name: string(rune('a' + i)), Rank: i + 1})
	}

	for rank := 1; rank <= 5; rank++ {
		for i := 0; i < 200; i++ {
			ref := r.chooseReference(rank)
			if ref != r.star && ref.Rank >= rank {
				t.Fatalf("rank %d drew reference of rank %d", rank, ref.Rank)
			}
		}
	}

	// Without the sun draw the index alone must still reach the star, and
	// the heaviest body has no other choice.
	cfg.ProbabilityOfSunOrbit = 0
	r = newRun(cfg, 5, discardLogger())
	r.star = &body.Body{Name: "Sun"}
	for i := 0; i < 8; i++ {
		r.bodies = append(r.bodies, &body.Body{Name: string(rune('a' + i)), Rank: i + 1})
	}
	for i := 0; i < 100; i++ {
		if ref := r.chooseReference(1); ref != r.star {
			t.Fatalf("rank 1 drew %s, want the star", ref.Name)
		}
	}
	stars := 0
	for i := 0; i < 1000; i++ {
		ref := r.chooseReference(8)
		if ref == r.star {
			stars++
			continue
		}
		if ref.Rank >= 8 {
			t.Fatalf("rank 8 drew reference of rank %d", ref.Rank)
		}
	}
	if stars == 0 {
		t.Error("rank 8 never drew the star from the index draw")
	}

	cfg.ProbabilityOfSunOrbit = 1
	r = newRun(cfg, 3, discardLogger())
	r.star = &body.Body{Name: "Sun"}
	r.bodies = []*body.Body{{Name: "a", Rank: 1}, {Name: "b", Rank: 2}}
	for i := 0; i < 50; i++ {
		if ref := r.chooseReference(2); ref != r.star {
			t.Fatalf("sun probability 1 drew %s", ref.Name)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"eccentricity too high", func(c *Config) { c.EccMax = 1 }},
		{"negative inclination", func(c *Config) { c.IncMax = -1 }},
		{"zero min radius", func(c *Config) { c.SmaMinRadius = 0 }},
		{"zero mass ratio", func(c *Config) { c.MaxMassRatio = 0 }},
		{"zero rotation rate", func(c *Config) { c.MaxRotationRate = 0 }},
		{"rotation factor above one", func(c *Config) { c.MinRotationFactor = 1.5 }},
		{"sun probability above one", func(c *Config) { c.ProbabilityOfSunOrbit = 1.1 }},
		{"no reference attempts", func(c *Config) { c.MaxReferenceAttempts = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestGenerateUnplaceableGiant(t *testing.T) {
	b := baseline.Kerbol()
	// Heavier than the star allows even after resampling, so no reference can hold it.
	cfg := DefaultConfig()
	cfg.MaxMassRatio = 0.01

	_, err := New(cfg, 1, WithLogger(discardLogger())).Generate(&baseline.Baseline{
		Name: "tight", Home: b.Home, Star: b.Star,
		Bodies: append(b.Bodies, baseline.Body{
			Name: "Brown", Parent: "Sun", Mass: b.Star.Mass * 0.5, Radius: 7e7,
			SemiMajorAxis: 1e11, RotationPeriod: 1,
		}),
	})

	var placementErr *PlacementError
	if !errors.As(err, &placementErr) {
		t.Fatalf("Generate() error = %v, want PlacementError", err)
	}
	if placementErr.Body != "Brown" {
		t.Errorf("PlacementError.Body = %q, want Brown", placementErr.Body)
	}
	if !errors.Is(err, ErrUnplaceable) {
		t.Error("errors.Is(err, ErrUnplaceable) = false")
	}
}

func TestPlaceForcesOnLastAttempt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxReferenceAttempts = 3
	cfg.ProbabilityOfSunOrbit = 1
	cfg.SmaMaxSOI = 1

	star := &body.Body{Name: "Sun", Mass: 1e24, Radius: 1e6, SphereOfInfluence: 2e7}
	// The sibling's influence zone covers the whole [1e7, 2e7] band.
	sibling := &body.Body{
		Name: "Sibling", Mass: 1e20, Radius: 1e4, ReferenceBody: "Sun",
		SemiMajorAxis: 1.5e7, SphereOfInfluence: 1e8, Rank: 1,
	}
	moon := &body.Body{Name: "Moon", Mass: 1e18, Radius: 1e3, Rank: 2}

	r := newRun(cfg, 7, discardLogger())
	r.star = star
	r.bodies = []*body.Body{sibling, moon}

	if err := r.place(moon); err != nil {
		t.Fatalf("place() error = %v", err)
	}

	if len(r.placements) != 1 {
		t.Fatalf("placements = %d, want 1", len(r.placements))
	}
	p := r.placements[0]
	if !p.Forced || p.Attempts != cfg.MaxReferenceAttempts || p.Reference != "Sun" {
		t.Errorf("placement = %+v, want forced on attempt %d around Sun", p, cfg.MaxReferenceAttempts)
	}
	if p.OrbitAttempts != cfg.MaxOrbitAttempts {
		t.Errorf("OrbitAttempts = %d, want %d", p.OrbitAttempts, cfg.MaxOrbitAttempts)
	}
	if !moon.Forced || moon.ReferenceBody != "Sun" {
		t.Errorf("moon = %+v, want forced orbit around Sun", moon)
	}
}

func TestPlaceFallsBackToStar(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxReferenceAttempts = 1
	cfg.ProbabilityOfSunOrbit = 0

	// Pick a seed whose first index draw lands on the rank 1 body.
	seed := int64(-1)
	for s := int64(1); s < 1000; s++ {
		u := rand.New(rand.NewSource(s)).Float64()
		if int(2-2*math.Pow(u, 3)) == 1 {
			seed = s
			break
		}
	}
	if seed < 0 {
		t.Fatal("no seed draws the rank 1 body")
	}

	star := &body.Body{Name: "Sun", Mass: 1e30, Radius: 1e6, SphereOfInfluence: 1e12}
	// Too light to hold the moon within the mass ratio.
	planet := &body.Body{
		Name: "Planet", Mass: 1e20, Radius: 1e5, ReferenceBody: "Sun",
		SemiMajorAxis: 5e10, SphereOfInfluence: 1e8, Rank: 1,
	}
	moon := &body.Body{Name: "Moon", Mass: 5e19, Radius: 1e3, Rank: 2}

	r := newRun(cfg, seed, discardLogger())
	r.star = star
	r.bodies = []*body.Body{planet, moon}

	if err := r.place(moon); err != nil {
		t.Fatalf("place() error = %v", err)
	}

	if len(r.placements) != 1 {
		t.Fatalf("placements = %d, want 1", len(r.placements))
	}
	p := r.placements[0]
	if p.Reference != "Sun" || p.Attempts != 1 {
		t.Errorf("placement = %+v, want Sun on attempt 1", p)
	}
	if p.Forced {
		t.Error("Forced = true, want a clear orbit around the star")
	}
	if moon.ReferenceBody != "Sun" {
		t.Errorf("ReferenceBody = %q, want Sun", moon.ReferenceBody)
	}
}
