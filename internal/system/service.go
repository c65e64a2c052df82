package system

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"starforge/internal/catalog"
	"starforge/internal/dice"
	"starforge/internal/orbit"
	apperrors "starforge/internal/shared/errors"
	"starforge/internal/stellar"
	"starforge/internal/world"

	"github.com/google/uuid"
)

// Store persists generated systems.
type Store interface {
	Create(ctx context.Context, sys *System) error
	GetByID(ctx context.Context, id uuid.UUID) (*System, error)
	List(ctx context.Context, limit, offset int) ([]Summary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Cache holds previews keyed by their generation input.
type Cache interface {
	Get(ctx context.Context, key string) (*System, bool, error)
	Set(ctx context.Context, key string, sys *System, ttl time.Duration) error
}

// Exporter writes a snapshot of a stored system and returns its object key.
// Remove deletes a snapshot again when the system could not be stored.
type Exporter interface {
	Export(ctx context.Context, sys *System) (string, error)
	Remove(ctx context.Context, key string) error
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type ServiceConfig struct {
	CacheTTL time.Duration
}

type Service struct {
	generator *Generator
	store     Store
	cache     Cache
	catalog   catalog.Source
	exporter  Exporter
	cacheTTL  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

type ServiceOption func(*Service)

func WithCache(c Cache) ServiceOption {
	return func(s *Service) { s.cache = c }
}

func WithCatalog(src catalog.Source) ServiceOption {
	return func(s *Service) { s.catalog = src }
}

func WithExporter(e Exporter) ServiceOption {
	return func(s *Service) { s.exporter = e }
}

func NewService(generator *Generator, store Store, cfg ServiceConfig, logger *slog.Logger, opts ...ServiceOption) *Service {
	logger.Debug("Initializing system service")

	s := &Service{
		generator: generator,
		store:     store,
		cacheTTL:  cfg.CacheTTL,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview generates a system without storing it. Results are cached by input
// since generation is deterministic for a given seed.
func (s *Service) Preview(ctx context.Context, req Request) (*System, error) {
	in, err := req.Input()
	if err != nil {
		return nil, apperrors.WrapInternal("failed to seed generation", err)
	}
	return s.preview(ctx, in)
}

func (s *Service) preview(ctx context.Context, in Input) (*System, error) {
	logger := s.logger.With("component", "system_service", "operation", "preview", "seed", in.Seed)

	key, err := s.generator.cacheKey(in)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to build cache key", err)
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("Preview cache read failed", "error", err)
		} else if ok {
			logger.Debug("Preview served from cache")
			return cached, nil
		}
	}

	sys, err := s.generator.Generate(ctx, in)
	if err != nil {
		return nil, translate(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, sys, s.cacheTTL); err != nil {
			logger.Warn("Preview cache write failed", "error", err)
		}
	}

	return sys, nil
}

// PreviewFromCatalog generates a single-star system around a catalog entry.
func (s *Service) PreviewFromCatalog(ctx context.Context, index int, seed *int64) (*System, error) {
	if s.catalog == nil {
		return nil, apperrors.External("star catalog is not configured")
	}
	if index < 0 {
		return nil, apperrors.Validationf("catalog index %d is negative", index)
	}

	row, err := s.catalog.LookupByIndex(ctx, index)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, apperrors.WrapNotFound(fmt.Sprintf("catalog entry %d not found", index), err)
		}
		return nil, apperrors.WrapExternal("failed to read star catalog", err)
	}

	return s.Preview(ctx, Request{
		Name: row.Name(),
		Seed: seed,
		Stars: []StarInput{{
			SpectralType: row.SpectralType,
			Luminosity:   row.Luminosity,
			Presets:      row.Presets,
			Catalog:      &row,
		}},
	})
}

// Create generates, exports and stores a system.
func (s *Service) Create(ctx context.Context, req Request) (*System, error) {
	in, err := req.Input()
	if err != nil {
		return nil, apperrors.WrapInternal("failed to seed generation", err)
	}

	logger := s.logger.With("component", "system_service", "operation", "create", "seed", in.Seed)

	sys, err := s.generator.Generate(ctx, in)
	if err != nil {
		return nil, translate(err)
	}
	sys.ID = uuid.New()
	sys.CreatedAt = s.now().UTC()

	if s.exporter != nil {
		key, err := s.exporter.Export(ctx, sys)
		if err != nil {
			return nil, apperrors.WrapExternal("failed to export system", err)
		}
		sys.ExportKey = key
	}

	if err := s.store.Create(ctx, sys); err != nil {
		if sys.ExportKey != "" {
			if rmErr := s.exporter.Remove(context.WithoutCancel(ctx), sys.ExportKey); rmErr != nil {
				logger.Error("Failed to remove export of unsaved system", "key", sys.ExportKey, "error", rmErr)
			}
		}
		return nil, apperrors.WrapInternal("failed to store system", err)
	}

	logger.Info("System created", "system_id", sys.ID, "world_count", sys.WorldCount(), "export_key", sys.ExportKey)
	return sys, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*System, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.WrapValidation("invalid system ID format", err)
	}

	sys, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.NotFoundf("system %s not found", id)
		}
		return nil, apperrors.WrapInternal("failed to load system", err)
	}
	return sys, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		return nil, apperrors.Validationf("limit cannot exceed %d", MaxListLimit)
	}
	if offset < 0 {
		return nil, apperrors.Validation("offset cannot be negative")
	}

	summaries, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list systems", err)
	}
	if summaries == nil {
		summaries = []Summary{}
	}
	return summaries, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return apperrors.WrapValidation("invalid system ID format", err)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.NotFoundf("system %s not found", id)
		}
		return apperrors.WrapInternal("failed to delete system", err)
	}

	s.logger.Info("System deleted", "component", "system_service", "system_id", id)
	return nil
}

// translate maps generation failures onto application error types.
func translate(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, stellar.ErrInputOutOfRange),
		errors.Is(err, stellar.ErrPresetRequired),
		errors.Is(err, world.ErrInputOutOfRange),
		errors.Is(err, dice.ErrInvalidDiceSpec):
		return apperrors.WrapValidation("invalid generation input", err)
	case errors.Is(err, orbit.ErrCapacityExceeded):
		return apperrors.WrapUnprocessable("generated system exceeds orbit capacity", err)
	default:
		return apperrors.WrapInternal("failed to generate system", err)
	}
}

// cacheKey covers the input and the generator limits it was produced under.
func (g *Generator) cacheKey(in Input) (string, error) {
	payload, err := json.Marshal(struct {
		Input    Input        `json:"input"`
		Limits   orbit.Limits `json:"limits"`
		MaxStars int          `json:"max_stars"`
	}{in, g.limits, g.maxStars})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return "system:preview:" + hex.EncodeToString(sum[:]), nil
}
