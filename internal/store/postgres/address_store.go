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

// addressStore implements store.AddressStore using PostgreSQL.
type addressStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddressStore creates a new PostgreSQL-backed address store.
func NewAddressStore(pool *pgxpool.Pool, logger zerolog.Logger) store.AddressStore {
	return &addressStore{
		pool:   pool,
		logger: logger.With().Str("store", "address").Logger(),
	}
}

const addressColumns = `id, user_id, label, street, city, state, zip_code, is_default, area_id, created_at`

func (s *addressStore) Create(ctx context.Context, addr *model.Address) error {
	query := `
		INSERT INTO addresses (id, user_id, label, street, city, state, zip_code, is_default, area_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		addr.ID, addr.UserID, addr.Label, addr.Street, addr.City,
		addr.State, addr.ZipCode, addr.IsDefault, addr.AreaID, addr.CreatedAt,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", addr.UserID.String()).Msg("failed to create address")
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

func (s *addressStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	var a model.Address
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.Label, &a.Street, &a.City,
		&a.State, &a.ZipCode, &a.IsDefault, &a.AreaID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error().Err(err).Str("id", id.String()).Msg("failed to query address")
		return nil, fmt.Errorf("failed to query address: %w", err)
	}
	return &a, nil
}

func (s *addressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query addresses")
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addrs []model.Address
	for rows.Next() {
		var a model.Address
		err := rows.Scan(
			&a.ID, &a.UserID, &a.Label, &a.Street, &a.City,
			&a.State, &a.ZipCode, &a.IsDefault, &a.AreaID, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addrs = append(addrs, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}
	return addrs, nil
}

func (s *addressStore) Update(ctx context.Context, addr *model.Address) error {
	query := `
		UPDATE addresses
		SET label = $2, street = $3, city = $4, state = $5, zip_code = $6, is_default = $7, area_id = $8
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query,
		addr.ID, addr.Label, addr.Street, addr.City, addr.State,
		addr.ZipCode, addr.IsDefault, addr.AreaID,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("id", addr.ID.String()).Msg("failed to update address")
		return fmt.Errorf("failed to update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *addressStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id.String()).Msg("failed to delete address")
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *addressStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM addresses WHERE user_id = $1`, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to delete addresses")
		return fmt.Errorf("failed to delete addresses: %w", err)
	}
	return nil
}

// SetDefault flips the default flag across all of the customer's addresses in
// a single statement so the at-most-one-default invariant cannot be observed
// broken.
func (s *addressStore) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM addresses WHERE id = $1 AND user_id = $2)`,
		addressID, userID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check address: %w", err)
	}
	if !exists {
		return model.ErrNotFound
	}

	_, err = s.pool.Exec(ctx,
		`UPDATE addresses SET is_default = (id = $2) WHERE user_id = $1`,
		userID, addressID,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("address_id", addressID.String()).Msg("failed to set default address")
		return fmt.Errorf("failed to set default address: %w", err)
	}
	return nil
}
