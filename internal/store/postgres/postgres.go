// Package postgres implements the store contract on PostgreSQL via pgx.
package postgres

import (
	"errors"

	"aquaflow/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// New wires all entity stores onto one connection pool.
func New(pool *pgxpool.Pool, logger zerolog.Logger) *store.Store {
	return &store.Store{
		Users:     NewUserStore(pool, logger),
		Areas:     NewAreaStore(pool, logger),
		Addresses: NewAddressStore(pool, logger),
		Inventory: NewInventoryStore(pool, logger),
		Orders:    NewOrderStore(pool, logger),
		Invoices:  NewInvoiceStore(pool, logger),
	}
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
