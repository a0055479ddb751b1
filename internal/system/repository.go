package system

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"planet-randomizer/internal/generator"
	"planet-randomizer/internal/shared/database"
	"planet-randomizer/internal/shared/errors"
)

const systemColumns = `id, seed, baseline, home, star_json, placements_json, body_count, forced_count, created_at`

const bodyColumns = `system_id, name, body_rank, reference_body, mass, radius,
	semi_major_axis, eccentricity, inclination, mean_anomaly_at_epoch,
	longitude_ascending_node, argument_of_periapsis, sphere_of_influence,
	rotation_period, forced, atmosphere, science_index`

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing system repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Save stores a generated system and its bodies under a new id.
func (r *Repository) Save(ctx context.Context, sys *generator.System) (*Record, error) {
	logger := r.logger.With(
		"component", "system_repository",
		"operation", "save",
		"baseline", sys.Baseline,
		"seed", sys.Seed,
	)
	logger.Debug("Saving system")

	row, err := newSystemRow(uuid.NewString(), sys, time.Now().UTC().Truncate(time.Second))
	if err != nil {
		return nil, errors.WrapInternal("failed to encode system", err)
	}

	tx, err := r.db.BeginTxContext(ctx)
	if err != nil {
		return nil, errors.WrapInternal("failed to save system", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			logger.Error("Failed to rollback transaction", "error", err)
		}
	}()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO systems (`+systemColumns+`)
		VALUES (:id, :seed, :baseline, :home, :star_json, :placements_json, :body_count, :forced_count, :created_at)
	`, row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.WrapConflict(fmt.Sprintf("system for %s seed %d already stored", sys.Baseline, sys.Seed), err)
		}
		logger.Error("Failed to insert system", "error", err)
		return nil, errors.WrapInternal("failed to save system", err)
	}

	for _, b := range sys.Bodies {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO bodies (`+bodyColumns+`)
			VALUES (:system_id, :name, :body_rank, :reference_body, :mass, :radius,
				:semi_major_axis, :eccentricity, :inclination, :mean_anomaly_at_epoch,
				:longitude_ascending_node, :argument_of_periapsis, :sphere_of_influence,
				:rotation_period, :forced, :atmosphere, :science_index)
		`, newBodyRow(row.ID, b))
		if err != nil {
			logger.Error("Failed to insert body", "body", b.Name, "error", err)
			return nil, errors.WrapInternal("failed to save system bodies", err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit system", "error", err)
		return nil, errors.WrapInternal("failed to save system", err)
	}

	record := row.record()
	record.System = sys
	logger.Info("System saved", "system_id", record.ID, "bodies", record.BodyCount)
	return &record, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Record, error) {
	return r.getOne(ctx, "get_by_id", `SELECT `+systemColumns+` FROM systems WHERE id = ?`, id)
}

func (r *Repository) GetBySeed(ctx context.Context, baseline string, seed int64) (*Record, error) {
	return r.getOne(ctx, "get_by_seed", `SELECT `+systemColumns+` FROM systems WHERE baseline = ? AND seed = ?`, baseline, seed)
}

func (r *Repository) getOne(ctx context.Context, operation, query string, args ...any) (*Record, error) {
	logger := r.logger.With("component", "system_repository", "operation", operation)

	var row systemRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(query), args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("system not found")
		}
		logger.Error("Failed to query system", "error", err)
		return nil, errors.WrapInternal("failed to get system", err)
	}

	var bodies []bodyRow
	err = r.db.SelectContext(ctx, &bodies,
		r.db.Rebind(`SELECT `+bodyColumns+` FROM bodies WHERE system_id = ? ORDER BY body_rank`), row.ID)
	if err != nil {
		logger.Error("Failed to query bodies", "system_id", row.ID, "error", err)
		return nil, errors.WrapInternal("failed to get system bodies", err)
	}

	sys, err := row.system(bodies)
	if err != nil {
		logger.Error("Failed to decode system", "system_id", row.ID, "error", err)
		return nil, errors.WrapInternal("failed to decode system", err)
	}

	record := row.record()
	record.System = sys
	return &record, nil
}

// List returns stored runs, newest first, without their bodies.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Record, error) {
	logger := r.logger.With("component", "system_repository", "operation", "list")

	var rows []systemRow
	err := r.db.SelectContext(ctx, &rows,
		r.db.Rebind(`SELECT `+systemColumns+` FROM systems ORDER BY created_at DESC, id LIMIT ? OFFSET ?`),
		limit, offset)
	if err != nil {
		logger.Error("Failed to list systems", "error", err)
		return nil, errors.WrapInternal("failed to list systems", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.record())
	}

	logger.Debug("Systems retrieved", "count", len(records))
	return records, nil
}

// Delete removes a stored run and its bodies.
func (r *Repository) Delete(ctx context.Context, id string) error {
	logger := r.logger.With("component", "system_repository", "operation", "delete", "system_id", id)

	tx, err := r.db.BeginTxContext(ctx)
	if err != nil {
		return errors.WrapInternal("failed to delete system", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			logger.Error("Failed to rollback transaction", "error", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM bodies WHERE system_id = ?`), id); err != nil {
		logger.Error("Failed to delete bodies", "error", err)
		return errors.WrapInternal("failed to delete system bodies", err)
	}

	result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM systems WHERE id = ?`), id)
	if err != nil {
		logger.Error("Failed to delete system", "error", err)
		return errors.WrapInternal("failed to delete system", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.WrapInternal("failed to delete system", err)
	}
	if affected == 0 {
		return errors.NotFound("system not found")
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit delete", "error", err)
		return errors.WrapInternal("failed to delete system", err)
	}

	logger.Info("System deleted")
	return nil
}
