package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"starforge/internal/shared/database"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing catalog repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) getExecutor(tx *database.Tx) database.Executor {
	if tx != nil {
		return tx
	}
	return r.db
}

const rowColumns = `catalog_index, hyg_id, hip_id, hd_id, hr_id, gliese, proper_name, constellation,
		spectral_type, luminosity, preset_mass, preset_radius, preset_temperature`

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (Row, error) {
	var row Row
	var hyg, hip, hd, hr sql.NullInt64
	var gliese, proper, constellation sql.NullString

	err := s.Scan(
		&row.Index,
		&hyg,
		&hip,
		&hd,
		&hr,
		&gliese,
		&proper,
		&constellation,
		&row.SpectralType,
		&row.Luminosity,
		&row.Presets.Mass,
		&row.Presets.Radius,
		&row.Presets.Temperature,
	)
	if err != nil {
		return Row{}, err
	}

	row.HygID = int(hyg.Int64)
	row.HipID = int(hip.Int64)
	row.HDID = int(hd.Int64)
	row.HRID = int(hr.Int64)
	row.Gliese = gliese.String
	row.ProperName = proper.String
	row.Constellation = constellation.String
	return row, nil
}

func (r *Repository) LookupByIndex(ctx context.Context, index int) (Row, error) {
	logger := r.logger.With("component", "catalog_repository", "operation", "lookup_by_index", "catalog_index", index)
	logger.Debug("Looking up catalog entry")

	query := `SELECT ` + rowColumns + ` FROM star_catalog WHERE catalog_index = $1`

	row, err := scanRow(r.db.QueryRowContext(ctx, query, index))
	if errors.Is(err, sql.ErrNoRows) {
		logger.Debug("Catalog entry not found")
		return Row{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	if err != nil {
		logger.Error("Failed to query catalog entry", "error", err)
		return Row{}, fmt.Errorf("failed to query catalog entry: %w", err)
	}

	return row, nil
}

type batchRow struct {
	Index             int      `json:"catalog_index"`
	HygID             int      `json:"hyg_id"`
	HipID             int      `json:"hip_id"`
	HDID              int      `json:"hd_id"`
	HRID              int      `json:"hr_id"`
	Gliese            string   `json:"gliese"`
	ProperName        string   `json:"proper_name"`
	Constellation     string   `json:"constellation"`
	SpectralType      string   `json:"spectral_type"`
	Luminosity        float64  `json:"luminosity"`
	PresetMass        *float64 `json:"preset_mass"`
	PresetRadius      *float64 `json:"preset_radius"`
	PresetTemperature *float64 `json:"preset_temperature"`
}

// UpsertBatch writes rows in a single statement, replacing entries that share
// a catalog index.
func (r *Repository) UpsertBatch(ctx context.Context, rows []Row, tx *database.Tx) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	exec := r.getExecutor(tx)
	logger := r.logger.With("component", "catalog_repository", "operation", "upsert_batch", "count", len(rows))
	logger.Debug("Upserting catalog entries")

	batch := make([]batchRow, len(rows))
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			return 0, err
		}
		batch[i] = batchRow{
			Index:             row.Index,
			HygID:             row.HygID,
			HipID:             row.HipID,
			HDID:              row.HDID,
			HRID:              row.HRID,
			Gliese:            row.Gliese,
			ProperName:        row.ProperName,
			Constellation:     row.Constellation,
			SpectralType:      row.SpectralType,
			Luminosity:        row.Luminosity,
			PresetMass:        row.Presets.Mass,
			PresetRadius:      row.Presets.Radius,
			PresetTemperature: row.Presets.Temperature,
		}
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		logger.Error("Failed to marshal catalog batch", "error", err)
		return 0, fmt.Errorf("failed to marshal catalog batch: %w", err)
	}

	query := `
		INSERT INTO star_catalog (` + rowColumns + `)
		SELECT
			(data->>'catalog_index')::integer,
			NULLIF((data->>'hyg_id')::integer, 0),
			NULLIF((data->>'hip_id')::integer, 0),
			NULLIF((data->>'hd_id')::integer, 0),
			NULLIF((data->>'hr_id')::integer, 0),
			NULLIF(data->>'gliese', ''),
			NULLIF(data->>'proper_name', ''),
			NULLIF(data->>'constellation', ''),
			data->>'spectral_type',
			(data->>'luminosity')::double precision,
			(data->>'preset_mass')::double precision,
			(data->>'preset_radius')::double precision,
			(data->>'preset_temperature')::double precision
		FROM json_array_elements($1::json) AS data
		ON CONFLICT (catalog_index) DO UPDATE SET
			hyg_id = EXCLUDED.hyg_id,
			hip_id = EXCLUDED.hip_id,
			hd_id = EXCLUDED.hd_id,
			hr_id = EXCLUDED.hr_id,
			gliese = EXCLUDED.gliese,
			proper_name = EXCLUDED.proper_name,
			constellation = EXCLUDED.constellation,
			spectral_type = EXCLUDED.spectral_type,
			luminosity = EXCLUDED.luminosity,
			preset_mass = EXCLUDED.preset_mass,
			preset_radius = EXCLUDED.preset_radius,
			preset_temperature = EXCLUDED.preset_temperature,
			updated_at = NOW()`

	result, err := exec.ExecContext(ctx, query, string(payload))
	if err != nil {
		logger.Error("Failed to upsert catalog entries", "error", err)
		return 0, fmt.Errorf("failed to upsert catalog entries: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	logger.Info("Catalog entries upserted", "affected", affected)
	return int(affected), nil
}
