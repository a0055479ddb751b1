// Package world holds the live bodies a generated system is applied to.
package world

import (
	"log/slog"
	"sync"

	"planet-randomizer/internal/baseline"
	"planet-randomizer/internal/body"
	"planet-randomizer/internal/generator"
	"planet-randomizer/internal/orbital"
	"planet-randomizer/internal/science"
)

// World is the set of live bodies. It is safe for concurrent use.
type World struct {
	mu     sync.RWMutex
	star   string
	order  []string
	bodies map[string]*Body
	logger *slog.Logger
}

// New builds the live bodies of b in their default layout.
func New(b *baseline.Baseline, logger *slog.Logger) *World {
	w := &World{
		star:   b.Star.Name,
		bodies: make(map[string]*Body, len(b.Bodies)+1),
		logger: logger.With("component", "world"),
	}

	for _, base := range append([]baseline.Body{b.Star}, b.Bodies...) {
		live := &Body{
			Name:           base.Name,
			Radius:         base.Radius,
			Mass:           base.Mass,
			RotationPeriod: base.RotationPeriod,
			Atmosphere:     base.Atmosphere,
			Scale:          1,
		}
		w.setGravity(live)
		w.setAtmosphere(live)
		w.bodies[base.Name] = live
		w.order = append(w.order, base.Name)
	}

	w.Restore(b)
	return w
}

// Apply aligns the live bodies to a generated system. Records that name an
// unknown body or reference are reported and skipped; the rest still apply.
func (w *World) Apply(sys *generator.System) ApplyReport {
	logger := w.logger.With("operation", "apply", "seed", sys.Seed)
	report := w.apply(sys.Bodies)

	for _, err := range report.LookupErrors {
		logger.Error("Lookup failed", "error", err)
	}
	logger.Info("World aligned", "applied", report.Applied, "missing", len(report.LookupErrors))
	return report
}

// Restore puts every body of b back in its default layout with stock science values.
func (w *World) Restore(b *baseline.Baseline) ApplyReport {
	records := make([]body.Body, 0, len(b.Bodies))
	for _, base := range b.Bodies {
		records = append(records, body.Body{
			Name:                   base.Name,
			Mass:                   base.Mass,
			Radius:                 base.Radius,
			SemiMajorAxis:          base.SemiMajorAxis,
			Eccentricity:           base.Eccentricity,
			Inclination:            base.Inclination,
			MeanAnomalyAtEpoch:     base.MeanAnomalyAtEpoch,
			LongitudeAscendingNode: base.LongitudeAscendingNode,
			ArgumentOfPeriapsis:    base.ArgumentOfPeriapsis,
			ReferenceBody:          base.Parent,
			RotationPeriod:         base.RotationPeriod,
			Atmosphere:             base.Atmosphere,
			ScienceIndex:           science.Kept,
		})
	}

	report := w.apply(records)
	w.logger.Debug("World restored", "baseline", b.Name, "applied", report.Applied)
	return report
}

func (w *World) apply(records []body.Body) ApplyReport {
	w.mu.Lock()
	defer w.mu.Unlock()

	var report ApplyReport
	for _, live := range w.bodies {
		live.Children = nil
	}

	// Physical properties first, so orbits below see every new mass.
	targets := make([]*Body, len(records))
	for i, rec := range records {
		target, ok := w.bodies[rec.Name]
		if !ok {
			report.LookupErrors = append(report.LookupErrors, &LookupError{Body: rec.Name})
			continue
		}

		w.resize(target, rec.Radius)
		target.Mass = rec.Mass
		w.setGravity(target)
		target.TidallyLocked = false
		target.RotationPeriod = rec.RotationPeriod
		targets[i] = target
	}

	for i, rec := range records {
		target := targets[i]
		if target == nil {
			continue
		}
		parent, ok := w.bodies[rec.ReferenceBody]
		if !ok || parent == target {
			report.LookupErrors = append(report.LookupErrors, &LookupError{Body: rec.Name, Reference: rec.ReferenceBody})
			continue
		}

		parent.Children = append(parent.Children, target.Name)
		target.Parent = parent.Name
		target.Orbit = &Orbit{
			SemiMajorAxis:          rec.SemiMajorAxis,
			Eccentricity:           rec.Eccentricity,
			Inclination:            rec.Inclination,
			MeanAnomalyAtEpoch:     rec.MeanAnomalyAtEpoch,
			LongitudeAscendingNode: rec.LongitudeAscendingNode,
			ArgumentOfPeriapsis:    rec.ArgumentOfPeriapsis,
			Period:                 orbital.OrbitalPeriod(rec.SemiMajorAxis, target.Mass, parent.Mass),
		}
		target.SphereOfInfluence = orbital.SphereOfInfluence(rec.SemiMajorAxis, target.Mass, parent.Mass)
		target.HillSphere = orbital.HillSphere(rec.SemiMajorAxis, target.Mass, parent.Mass)

		if rec.ScienceIndex == science.Kept {
			target.Science = nil
		} else {
			values := science.ValuesFor(rec.ScienceIndex)
			target.Science = &values
		}
		report.Applied++
	}

	return report
}

// resize changes the radius and scales the model and atmosphere with it.
func (w *World) resize(b *Body, radius float64) {
	if b.Radius > 0 {
		b.Scale *= radius / b.Radius
	}
	b.Radius = radius
	w.setAtmosphere(b)
}

func (w *World) setGravity(b *Body) {
	b.GravParameter = b.Mass * orbital.G
	b.GeeASL = orbital.SurfaceGravity(b.Mass, b.Radius) / orbital.StandardGravity
}

func (w *World) setAtmosphere(b *Body) {
	if !b.Atmosphere {
		return
	}
	b.AtmosphereOuterRadius = b.Radius * atmosphereOuterScale
	b.AtmosphereInnerRadius = b.AtmosphereOuterRadius * atmosphereInnerScale
}

// Body returns a copy of the live body with the given name.
func (w *World) Body(name string) (Body, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	live, ok := w.bodies[name]
	if !ok {
		return Body{}, false
	}
	return live.clone(), true
}

// Bodies returns copies of all live bodies, star first, in baseline order.
func (w *World) Bodies() []Body {
	w.mu.RLock()
	defer w.mu.RUnlock()

	bodies := make([]Body, 0, len(w.order))
	for _, name := range w.order {
		bodies = append(bodies, w.bodies[name].clone())
	}
	return bodies
}

func (w *World) Star() string {
	return w.star
}
