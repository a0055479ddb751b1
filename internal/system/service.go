package system

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"planet-randomizer/internal/baseline"
	"planet-randomizer/internal/generator"
	"planet-randomizer/internal/metrics"
	"planet-randomizer/internal/science"
	"planet-randomizer/internal/shared/errors"
	"planet-randomizer/internal/world"
)

type Service struct {
	repo     *Repository
	cache    *Cache
	baseline *baseline.Baseline
	config   generator.Config
	world    *world.World
	metrics  *metrics.Collector
	logger   *slog.Logger
}

func NewService(repo *Repository, cache *Cache, b *baseline.Baseline, cfg generator.Config, w *world.World, collector *metrics.Collector, logger *slog.Logger) *Service {
	logger.Debug("Initializing system service", "baseline", b.Name, "cache", cache != nil)

	return &Service{
		repo:     repo,
		cache:    cache,
		baseline: b,
		config:   cfg,
		world:    w,
		metrics:  collector,
		logger:   logger,
	}
}

// Generate returns the stored system for seed, generating and storing it on
// first request. Generation is deterministic, so a stored run is never redone.
func (s *Service) Generate(ctx context.Context, seed int64) (*Record, error) {
	logger := s.logger.With("operation", "generate", "baseline", s.baseline.Name, "seed", seed)

	if s.cache != nil {
		record, hit := s.cache.Get(ctx, s.baseline.Name, seed)
		s.metrics.RecordCache(hit)
		if hit {
			logger.Debug("System served from cache", "system_id", record.ID)
			return record, nil
		}
	}

	record, err := s.repo.GetBySeed(ctx, s.baseline.Name, seed)
	if err == nil {
		s.cache.Set(ctx, record)
		return record, nil
	}
	if !errors.Is(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	sys, err := s.run(seed, nil)
	if err != nil {
		return nil, err
	}

	record, err = s.repo.Save(ctx, sys)
	if errors.Is(err, errors.ErrorTypeConflict) {
		// Another request stored the same seed first.
		record, err = s.repo.GetBySeed(ctx, s.baseline.Name, seed)
	}
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, record)
	logger.Info("System generated", "system_id", record.ID, "forced", record.ForcedCount)
	return record, nil
}

// Preview generates a system without storing it. observer, if set, sees
// every placement as it is committed.
func (s *Service) Preview(seed int64, observer func(generator.Placement)) (*generator.System, error) {
	return s.run(seed, observer)
}

func (s *Service) run(seed int64, observer func(generator.Placement)) (*generator.System, error) {
	opts := []generator.Option{generator.WithLogger(s.logger)}
	if observer != nil {
		opts = append(opts, generator.WithObserver(observer))
	}

	start := time.Now()
	sys, err := generator.New(s.config, seed, opts...).Generate(s.baseline)
	duration := time.Since(start)

	if err != nil {
		outcome := metrics.OutcomeError
		switch {
		case generator.IsArithmetic(err):
			outcome = metrics.OutcomeArithmetic
		case generator.IsUnplaceable(err):
			outcome = metrics.OutcomeUnplaceable
		}
		s.metrics.RecordRun(outcome, duration, 0, nil)
		return nil, errors.WrapGeneration(fmt.Sprintf("seed %d could not be generated", seed), err)
	}

	attempts := make([]int, 0, len(sys.Placements))
	for _, p := range sys.Placements {
		attempts = append(attempts, p.Attempts)
	}
	s.metrics.RecordRun(metrics.OutcomeOK, duration, sys.ForcedCount(), attempts)

	if err := science.Balance(sys); err != nil {
		return nil, err
	}
	return sys, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Record, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, record.Baseline, record.Seed)
	return nil
}

// Science returns the science assignment of a stored system.
func (s *Service) Science(ctx context.Context, id string) ([]science.Entry, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return science.Report(record.System), nil
}

// Apply aligns the live world to a stored system.
func (s *Service) Apply(ctx context.Context, id string) (world.ApplyReport, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return world.ApplyReport{}, err
	}
	return s.world.Apply(record.System), nil
}

// Restore puts the live world back to the baseline layout.
func (s *Service) Restore() world.ApplyReport {
	return s.world.Restore(s.baseline)
}

func (s *Service) BaselineName() string {
	return s.baseline.Name
}

func (s *Service) World() []world.Body {
	return s.world.Bodies()
}
