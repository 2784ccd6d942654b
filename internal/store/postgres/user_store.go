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

// userStore implements store.UserStore using PostgreSQL.
type userStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserStore creates a new PostgreSQL-backed user store.
func NewUserStore(pool *pgxpool.Pool, logger zerolog.Logger) store.UserStore {
	return &userStore{
		pool:   pool,
		logger: logger.With().Str("store", "user").Logger(),
	}
}

const userColumns = `id, user_id, name, phone, user_type, area_id, service_area, password_hash, created_at`

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, user_id, name, phone, user_type, area_id, service_area, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.pool.Exec(ctx, query,
		user.ID, user.UserID, user.Name, user.Phone, user.Type,
		user.AreaID, user.ServiceArea, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateUserID
		}
		s.logger.Error().Err(err).Str("user_id", user.UserID).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debug().Str("user_id", user.UserID).Msg("user created")
	return nil
}

func (s *userStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := s.scanUser(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		s.logger.Error().Err(err).Str("id", id.String()).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

func (s *userStore) GetByUserID(ctx context.Context, userID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	u, err := s.scanUser(s.pool.QueryRow(ctx, query, userID))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

func (s *userStore) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.UserID, &u.Name, &u.Phone, &u.Type,
		&u.AreaID, &u.ServiceArea, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *userStore) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET name = $2, phone = $3, area_id = $4, service_area = $5, password_hash = $6
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query,
		user.ID, user.Name, user.Phone, user.AreaID, user.ServiceArea, user.PasswordHash,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("id", user.ID.String()).Msg("failed to update user")
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *userStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id.String()).Msg("failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
