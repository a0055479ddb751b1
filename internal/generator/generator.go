package generator

import (
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"planet-randomizer/internal/baseline"
	"planet-randomizer/internal/body"
)

// giantMassFraction marks bodies heavy enough, relative to the star, to be
// resampled around that fraction instead of from their own density.
const giantMassFraction = 0.1

// Generator produces randomized systems from a baseline and a seed.
type Generator struct {
	cfg      Config
	seed     int64
	logger   *slog.Logger
	observer func(Placement)
}

type Option func(*Generator)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithObserver registers a callback invoked synchronously for every committed placement.
func WithObserver(observer func(Placement)) Option {
	return func(g *Generator) {
		g.observer = observer
	}
}

func New(cfg Config, seed int64, opts ...Option) *Generator {
	g := &Generator{
		cfg:    cfg,
		seed:   seed,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "generator", "seed", seed)
	return g
}

// Generate runs one full generation pass. Every call starts a fresh random
// stream from the seed, so repeated calls return identical systems.
func (g *Generator) Generate(b *baseline.Baseline) (*System, error) {
	logger := g.logger.With("operation", "generate", "baseline", b.Name)
	logger.Debug("Generating system", "bodies", len(b.Bodies))

	r := newRun(g.cfg, g.seed, logger)
	r.observer = g.observer

	r.perturb(b)
	r.rank()
	if err := r.placeAll(); err != nil {
		logger.Error("Generation aborted", "error", err)
		return nil, err
	}

	sys := &System{
		Seed:       g.seed,
		Baseline:   b.Name,
		Home:       b.Home,
		Star:       *r.star,
		Bodies:     make([]body.Body, len(r.bodies)),
		Placements: r.placements,
	}
	for i, rec := range r.bodies {
		sys.Bodies[i] = *rec
	}

	logger.Info("System generated", "bodies", len(sys.Bodies), "forced", sys.ForcedCount())
	return sys, nil
}

// run is the mutable state of a single generation pass. Later placements read
// the records committed by earlier ones.
type run struct {
	cfg        Config
	rng        *rand.Rand
	logger     *slog.Logger
	observer   func(Placement)
	star       *body.Body
	bodies     []*body.Body
	placements []Placement
}

func newRun(cfg Config, seed int64, logger *slog.Logger) *run {
	return &run{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

// logUniform draws a factor in [0.5, 2) evenly in log space.
func (r *run) logUniform() float64 {
	return math.Pow(2, 2.0*r.rng.Float64()-1)
}

// perturb changes mass and radius. Orbits are left alone since sizes may
// change drastically.
func (r *run) perturb(b *baseline.Baseline) {
	r.star = &body.Body{
		Name:              b.Star.Name,
		Mass:              b.Star.Mass,
		Radius:            b.Star.Radius,
		RotationPeriod:    b.Star.RotationPeriod,
		Atmosphere:        b.Star.Atmosphere,
		SphereOfInfluence: b.StarInfluence(),
		ScienceIndex:      -1,
	}

	r.bodies = make([]*body.Body, 0, len(b.Bodies))
	for _, base := range b.Bodies {
		rec := &body.Body{
			Name:           base.Name,
			Atmosphere:     base.Atmosphere,
			RotationPeriod: base.RotationPeriod,
		}
		home := base.Name == b.Home

		if home {
			rec.Radius = base.Radius
		} else {
			rec.Radius = base.Radius * r.logUniform()
		}

		switch {
		case home:
			rec.Mass = base.Mass
		case base.Mass > r.star.Mass*giantMassFraction:
			rec.Mass = r.star.Mass * giantMassFraction * r.logUniform()
		default:
			rec.Mass = base.Mass * math.Pow(rec.Radius/base.Radius, 3) * r.logUniform()
		}

		r.logger.Debug("Body perturbed", "body", rec.Name, "mass", rec.Mass, "radius", rec.Radius)
		r.bodies = append(r.bodies, rec)
	}
}

// rank orders bodies by descending mass, keeping baseline order on ties.
func (r *run) rank() {
	sort.SliceStable(r.bodies, func(i, j int) bool {
		return r.bodies[i].Mass > r.bodies[j].Mass
	})
	for i, rec := range r.bodies {
		rec.Rank = i + 1
	}
}

// stability shrinks eccentricity and inclination for massive, low-rank bodies.
func (r *run) stability(rank int) float64 {
	return math.Pow(float64(rank)/float64(len(r.bodies)), r.cfg.EccIncExponent)
}

// chooseReference draws a candidate primary for a body of the given rank.
// Cubing the draw biases the choice toward the star and the heaviest bodies;
// truncation keeps the index below rank, so a body never draws itself.
func (r *run) chooseReference(rank int) *body.Body {
	index := int(float64(rank) - float64(rank)*math.Pow(r.rng.Float64(), 3))
	if r.rng.Float64() <= r.cfg.ProbabilityOfSunOrbit {
		index = 0
	}
	if index == 0 {
		return r.star
	}
	return r.bodies[index-1]
}

func (r *run) placeAll() error {
	for _, moon := range r.bodies {
		if err := r.place(moon); err != nil {
			return err
		}
	}
	return nil
}

// place commits an orbit for moon, forcing one on the last reference attempt.
func (r *run) place(moon *body.Body) error {
	limit := r.cfg.MaxReferenceAttempts
	for attempt := 1; attempt <= limit; attempt++ {
		force := attempt == limit
		reference := r.chooseReference(moon.Rank)

		result, err := r.constructOrbit(moon, reference, force)
		if err != nil {
			return err
		}

		if force && !result.placed() && reference != r.star {
			// The drawn primary cannot hold the body at all; the star is
			// the only reference left that might.
			r.logger.Warn("Forced reference rejected, falling back to star",
				"body", moon.Name, "reference", reference.Name, "outcome", result.outcome)
			reference = r.star
			result, err = r.constructOrbit(moon, reference, true)
			if err != nil {
				return err
			}
		}

		if result.placed() {
			r.commit(moon, reference, attempt, result)
			return nil
		}

		if force {
			return &PlacementError{Body: moon.Name, Reference: reference.Name, Attempts: attempt}
		}
	}
	return &PlacementError{Body: moon.Name, Attempts: limit}
}

func (r *run) commit(moon, reference *body.Body, attempts int, result orbitResult) {
	placement := Placement{
		Body:          moon.Name,
		Reference:     reference.Name,
		Rank:          moon.Rank,
		Attempts:      attempts,
		OrbitAttempts: result.orbitAttempts,
		Forced:        result.outcome == outcomeForced,
	}
	r.placements = append(r.placements, placement)

	if placement.Forced {
		r.logger.Warn("Forced orbit", "body", moon.Name, "reference", reference.Name, "rank", moon.Rank)
	}
	r.logger.Debug("Body placed",
		"rank", moon.Rank,
		"body", moon.Name,
		"reference", reference.Name,
		"tries", attempts,
		"orbit_attempts", result.orbitAttempts,
	)

	if r.observer != nil {
		r.observer(placement)
	}
}
