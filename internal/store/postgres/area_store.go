package postgres

import (
	"context"
	"errors"
	"fmt"

	"aquaflow/internal/model"
	"aquaflow/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// areaStore implements store.AreaStore using PostgreSQL. Case-insensitive
// name uniqueness is backed by a unique index on lower(name).
type areaStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAreaStore creates a new PostgreSQL-backed service area store.
func NewAreaStore(pool *pgxpool.Pool, logger zerolog.Logger) store.AreaStore {
	return &areaStore{
		pool:   pool,
		logger: logger.With().Str("store", "area").Logger(),
	}
}

const areaColumns = `id, name, vendor_id, vendor_name, created_at`

func (s *areaStore) Create(ctx context.Context, area *model.ServiceArea) error {
	query := `
		INSERT INTO service_areas (id, name, vendor_id, vendor_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query,
		area.ID, area.Name, area.VendorID, area.VendorName, area.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAreaTaken
		}
		s.logger.Error().Err(err).Str("name", area.Name).Msg("failed to create area")
		return fmt.Errorf("failed to create area: %w", err)
	}

	s.logger.Debug().Str("name", area.Name).Msg("service area created")
	return nil
}

func (s *areaStore) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceArea, error) {
	query := `SELECT ` + areaColumns + ` FROM service_areas WHERE id = $1`
	return s.scanArea(ctx, query, id)
}

func (s *areaStore) GetByName(ctx context.Context, name string) (*model.ServiceArea, error) {
	query := `SELECT ` + areaColumns + ` FROM service_areas WHERE lower(name) = lower($1)`
	return s.scanArea(ctx, query, name)
}

func (s *areaStore) GetByVendor(ctx context.Context, vendorID uuid.UUID) (*model.ServiceArea, error) {
	query := `SELECT ` + areaColumns + ` FROM service_areas WHERE vendor_id = $1`
	return s.scanArea(ctx, query, vendorID)
}

func (s *areaStore) scanArea(ctx context.Context, query string, arg any) (*model.ServiceArea, error) {
	var a model.ServiceArea
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Name, &a.VendorID, &a.VendorName, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error().Err(err).Msg("failed to query area")
		return nil, fmt.Errorf("failed to query area: %w", err)
	}
	return &a, nil
}

func (s *areaStore) List(ctx context.Context) ([]model.ServiceArea, error) {
	query := `SELECT ` + areaColumns + ` FROM service_areas ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query areas")
		return nil, fmt.Errorf("failed to query areas: %w", err)
	}
	defer rows.Close()

	var areas []model.ServiceArea
	for rows.Next() {
		var a model.ServiceArea
		if err := rows.Scan(&a.ID, &a.Name, &a.VendorID, &a.VendorName, &a.CreatedAt); err != nil {
			s.logger.Error().Err(err).Msg("failed to scan area row")
			return nil, fmt.Errorf("failed to scan area: %w", err)
		}
		areas = append(areas, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating areas: %w", err)
	}
	return areas, nil
}

func (s *areaStore) Update(ctx context.Context, area *model.ServiceArea) error {
	query := `
		UPDATE service_areas
		SET name = $2, vendor_name = $3
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query, area.ID, area.Name, area.VendorName)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAreaTaken
		}
		s.logger.Error().Err(err).Str("id", area.ID.String()).Msg("failed to update area")
		return fmt.Errorf("failed to update area: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *areaStore) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM service_areas WHERE vendor_id = $1`, vendorID)
	if err != nil {
		s.logger.Error().Err(err).Str("vendor_id", vendorID.String()).Msg("failed to delete areas")
		return fmt.Errorf("failed to delete areas: %w", err)
	}
	return nil
}
