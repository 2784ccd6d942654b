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

// inventoryStore implements store.InventoryStore using PostgreSQL.
type inventoryStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInventoryStore creates a new PostgreSQL-backed inventory store.
func NewInventoryStore(pool *pgxpool.Pool, logger zerolog.Logger) store.InventoryStore {
	return &inventoryStore{
		pool:   pool,
		logger: logger.With().Str("store", "inventory").Logger(),
	}
}

const inventoryColumns = `id, vendor_id, name, price, stock, description, created_at, updated_at`

func (s *inventoryStore) Create(ctx context.Context, item *model.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, vendor_id, name, price, stock, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.pool.Exec(ctx, query,
		item.ID, item.VendorID, item.Name, item.Price, item.Stock,
		item.Description, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("name", item.Name).Msg("failed to create inventory item")
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (s *inventoryStore) GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1`

	var it model.InventoryItem
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.VendorID, &it.Name, &it.Price, &it.Stock,
		&it.Description, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error().Err(err).Str("id", id.String()).Msg("failed to query inventory item")
		return nil, fmt.Errorf("failed to query inventory item: %w", err)
	}
	return &it, nil
}

func (s *inventoryStore) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items
		WHERE vendor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, vendorID)
	if err != nil {
		s.logger.Error().Err(err).Str("vendor_id", vendorID.String()).Msg("failed to query inventory")
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		var it model.InventoryItem
		err := rows.Scan(
			&it.ID, &it.VendorID, &it.Name, &it.Price, &it.Stock,
			&it.Description, &it.CreatedAt, &it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory: %w", err)
	}
	return items, nil
}

func (s *inventoryStore) Update(ctx context.Context, item *model.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, price = $3, stock = $4, description = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query,
		item.ID, item.Name, item.Price, item.Stock, item.Description, item.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("id", item.ID.String()).Msg("failed to update inventory item")
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *inventoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id.String()).Msg("failed to delete inventory item")
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *inventoryStore) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM inventory_items WHERE vendor_id = $1`, vendorID)
	if err != nil {
		s.logger.Error().Err(err).Str("vendor_id", vendorID.String()).Msg("failed to delete inventory")
		return fmt.Errorf("failed to delete inventory: %w", err)
	}
	return nil
}

// Decrement clamps stock at zero in the database so concurrent reads never
// observe a negative value. Lines whose item row is gone are collected and
// returned; applied lines stay applied.
func (s *inventoryStore) Decrement(ctx context.Context, vendorID uuid.UUID, lines []model.DecrementLine) ([]uuid.UUID, error) {
	query := `
		UPDATE inventory_items
		SET stock = GREATEST(0, stock - $3), updated_at = now()
		WHERE id = $1 AND vendor_id = $2
	`

	var missing []uuid.UUID
	for _, line := range lines {
		tag, err := s.pool.Exec(ctx, query, line.ItemID, vendorID, line.Quantity)
		if err != nil {
			s.logger.Error().Err(err).Str("item_id", line.ItemID.String()).Msg("failed to decrement stock")
			return missing, fmt.Errorf("failed to decrement stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			missing = append(missing, line.ItemID)
		}
	}
	return missing, nil
}
