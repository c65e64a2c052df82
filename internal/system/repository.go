package system

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"starforge/internal/shared/database"

	"github.com/google/uuid"
)

// Repository stores systems in PostgreSQL. The full system is kept as JSONB;
// stars and worlds are also written to their own tables for querying.
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

func (r *Repository) Create(ctx context.Context, sys *System) (err error) {
	logger := r.logger.With(
		"component", "system_repository",
		"operation", "create_system",
		"system_id", sys.ID,
		"seed", sys.Seed,
	)
	logger.Debug("Creating system")

	payload, err := json.Marshal(sys)
	if err != nil {
		logger.Error("Failed to marshal system", "error", err)
		return fmt.Errorf("failed to marshal system: %w", err)
	}

	tx, err := r.db.BeginTxContext(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", "error", err)
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("Failed to rollback transaction", "error", rbErr)
			}
		}
	}()

	var primary string
	if len(sys.Stars) > 0 {
		primary = sys.Stars[0].Classification.Designation
	}

	query := `
		INSERT INTO systems (id, name, seed, primary_designation, star_count, world_count, export_key, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`

	_, err = tx.ExecContext(ctx, query,
		sys.ID,
		sys.Name,
		sys.Seed,
		primary,
		len(sys.Stars),
		sys.WorldCount(),
		sys.ExportKey,
		string(payload),
		sys.CreatedAt,
	)
	if err != nil {
		logger.Error("Failed to insert system", "error", err)
		return fmt.Errorf("failed to insert system: %w", err)
	}

	if err = r.insertStars(ctx, tx, sys); err != nil {
		logger.Error("Failed to insert stars", "error", err)
		return err
	}

	if err = r.insertWorlds(ctx, tx, sys); err != nil {
		logger.Error("Failed to insert worlds", "error", err)
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("Failed to commit system transaction", "error", err)
		return fmt.Errorf("failed to commit system: %w", err)
	}

	logger.Debug("System created successfully", "star_count", len(sys.Stars), "world_count", sys.WorldCount())
	return nil
}

type starRow struct {
	StarIndex     int     `json:"star_index"`
	Designation   string  `json:"designation"`
	HarvardLetter string  `json:"harvard_letter"`
	YerkesClass   string  `json:"yerkes_class"`
	Mass          float64 `json:"mass"`
	Radius        float64 `json:"radius"`
	Temperature   float64 `json:"temperature"`
	Luminosity    float64 `json:"luminosity"`
	Age           float64 `json:"age"`
	CatalogIndex  *int    `json:"catalog_index"`
}

func (r *Repository) insertStars(ctx context.Context, exec database.Executor, sys *System) error {
	rows := make([]starRow, len(sys.Stars))
	for i, star := range sys.Stars {
		rows[i] = starRow{
			StarIndex:     star.Index,
			Designation:   star.Classification.Designation,
			HarvardLetter: star.Classification.HarvardLetter,
			YerkesClass:   star.Classification.YerkesClass,
			Mass:          star.Physical.Mass,
			Radius:        star.Physical.Radius,
			Temperature:   star.Physical.Temperature,
			Luminosity:    star.Physical.Luminosity,
			Age:           star.Physical.Age,
		}
		if star.Catalog != nil {
			idx := star.Catalog.Index
			rows[i].CatalogIndex = &idx
		}
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal stars: %w", err)
	}

	query := `
		INSERT INTO stars (system_id, star_index, designation, harvard_letter, yerkes_class,
			mass, radius, temperature, luminosity, age, catalog_index)
		SELECT
			$1,
			(data->>'star_index')::integer,
			data->>'designation',
			data->>'harvard_letter',
			NULLIF(data->>'yerkes_class', ''),
			(data->>'mass')::double precision,
			(data->>'radius')::double precision,
			(data->>'temperature')::double precision,
			(data->>'luminosity')::double precision,
			(data->>'age')::double precision,
			(data->>'catalog_index')::integer
		FROM json_array_elements($2::json) AS data`

	if _, err := exec.ExecContext(ctx, query, sys.ID, string(payload)); err != nil {
		return fmt.Errorf("failed to batch insert stars: %w", err)
	}
	return nil
}

type worldRow struct {
	StarIndex            int     `json:"star_index"`
	SlotIndex            int     `json:"slot_index"`
	SizeClass            string  `json:"size_class"`
	OrbitalRadius        float64 `json:"orbital_radius"`
	DiameterKM           float64 `json:"diameter_km"`
	BlackbodyTemperature float64 `json:"blackbody_temperature"`
	HydrographicCoverage float64 `json:"hydrographic_coverage"`
	Pressure             string  `json:"pressure"`
	Breathable           bool    `json:"breathable"`
	HabitabilityModifier int     `json:"habitability_modifier"`
}

func (r *Repository) insertWorlds(ctx context.Context, exec database.Executor, sys *System) error {
	var rows []worldRow
	for _, star := range sys.Stars {
		for _, w := range star.Worlds {
			rows = append(rows, worldRow{
				StarIndex:            star.Index,
				SlotIndex:            w.SlotIndex,
				SizeClass:            string(w.SizeClass),
				OrbitalRadius:        w.OrbitalRadius,
				DiameterKM:           w.DiameterKM,
				BlackbodyTemperature: w.BlackbodyTemperature,
				HydrographicCoverage: w.HydrographicCoverage,
				Pressure:             string(w.Pressure),
				Breathable:           w.Breathable,
				HabitabilityModifier: w.HabitabilityModifier,
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal worlds: %w", err)
	}

	query := `
		INSERT INTO worlds (system_id, star_index, slot_index, size_class, orbital_radius, diameter_km,
			blackbody_temperature, hydrographic_coverage, pressure, breathable, habitability_modifier)
		SELECT
			$1,
			(data->>'star_index')::integer,
			(data->>'slot_index')::integer,
			data->>'size_class',
			(data->>'orbital_radius')::double precision,
			(data->>'diameter_km')::double precision,
			(data->>'blackbody_temperature')::double precision,
			(data->>'hydrographic_coverage')::double precision,
			data->>'pressure',
			(data->>'breathable')::boolean,
			(data->>'habitability_modifier')::integer
		FROM json_array_elements($2::json) AS data`

	if _, err := exec.ExecContext(ctx, query, sys.ID, string(payload)); err != nil {
		return fmt.Errorf("failed to batch insert worlds: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*System, error) {
	logger := r.logger.With("component", "system_repository", "operation", "get_system", "system_id", id)
	logger.Debug("Getting system by ID")

	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM systems WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		logger.Error("Failed to query system", "error", err)
		return nil, fmt.Errorf("failed to query system: %w", err)
	}

	var sys System
	if err := json.Unmarshal(payload, &sys); err != nil {
		logger.Error("Failed to decode stored system", "error", err)
		return nil, fmt.Errorf("failed to decode system: %w", err)
	}

	return &sys, nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	logger := r.logger.With("component", "system_repository", "operation", "list_systems", "limit", limit, "offset", offset)
	logger.Debug("Listing systems")

	query := `
		SELECT id, name, seed, primary_designation, star_count, world_count, created_at
		FROM systems
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		logger.Error("Failed to query systems", "error", err)
		return nil, fmt.Errorf("failed to query systems: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Seed,
			&s.PrimaryDesignation,
			&s.StarCount,
			&s.WorldCount,
			&s.CreatedAt,
		)
		if err != nil {
			logger.Error("Failed to scan system row", "error", err)
			return nil, fmt.Errorf("failed to scan system: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating systems: %w", err)
	}

	logger.Debug("Systems retrieved", "count", len(summaries))
	return summaries, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	logger := r.logger.With("component", "system_repository", "operation", "delete_system", "system_id", id)

	result, err := r.db.ExecContext(ctx, `DELETE FROM systems WHERE id = $1`, id)
	if err != nil {
		logger.Error("Failed to delete system", "error", err)
		return fmt.Errorf("failed to delete system: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	logger.Debug("System deleted")
	return nil
}
