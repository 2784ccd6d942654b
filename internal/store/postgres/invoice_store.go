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

// invoiceStore implements store.InvoiceStore using PostgreSQL. The one
// invoice per order rule is backed by a unique index on order_id.
type invoiceStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInvoiceStore creates a new PostgreSQL-backed invoice store.
func NewInvoiceStore(pool *pgxpool.Pool, logger zerolog.Logger) store.InvoiceStore {
	return &invoiceStore{
		pool:   pool,
		logger: logger.With().Str("store", "invoice").Logger(),
	}
}

const invoiceColumns = `id, order_id, amount, generated_date, due_date, status`

func (s *invoiceStore) Create(ctx context.Context, inv *model.Invoice) error {
	query := `
		INSERT INTO invoices (id, order_id, amount, generated_date, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		inv.ID, inv.OrderID, inv.Amount, inv.GeneratedDate, inv.DueDate, inv.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrInvoiceExists
		}
		s.logger.Error().Err(err).Str("order_id", inv.OrderID.String()).Msg("failed to create invoice")
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	s.logger.Debug().Str("invoice_id", inv.ID.String()).Msg("invoice created")
	return nil
}

func (s *invoiceStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return s.scanInvoice(ctx, query, id)
}

func (s *invoiceStore) GetByOrder(ctx context.Context, orderID uuid.UUID) (*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id = $1`
	return s.scanInvoice(ctx, query, orderID)
}

func (s *invoiceStore) scanInvoice(ctx context.Context, query string, arg any) (*model.Invoice, error) {
	var inv model.Invoice
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&inv.ID, &inv.OrderID, &inv.Amount, &inv.GeneratedDate, &inv.DueDate, &inv.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error().Err(err).Msg("failed to query invoice")
		return nil, fmt.Errorf("failed to query invoice: %w", err)
	}
	return &inv, nil
}

func (s *invoiceStore) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.Invoice, error) {
	query := `
		SELECT i.id, i.order_id, i.amount, i.generated_date, i.due_date, i.status
		FROM invoices i
		JOIN orders o ON o.id = i.order_id
		WHERE o.vendor_id = $1
		ORDER BY i.generated_date DESC
	`

	rows, err := s.pool.Query(ctx, query, vendorID)
	if err != nil {
		s.logger.Error().Err(err).Str("vendor_id", vendorID.String()).Msg("failed to query invoices")
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		err := rows.Scan(&inv.ID, &inv.OrderID, &inv.Amount, &inv.GeneratedDate, &inv.DueDate, &inv.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}
	return invoices, nil
}

func (s *invoiceStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvoiceStatus) error {
	tag, err := s.pool.Exec(ctx, `UPDATE invoices SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		s.logger.Error().Err(err).Str("invoice_id", id.String()).Msg("failed to update invoice status")
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *invoiceStore) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	query := `
		DELETE FROM invoices
		WHERE order_id IN (SELECT id FROM orders WHERE vendor_id = $1)
	`

	_, err := s.pool.Exec(ctx, query, vendorID)
	if err != nil {
		s.logger.Error().Err(err).Str("vendor_id", vendorID.String()).Msg("failed to delete invoices")
		return fmt.Errorf("failed to delete invoices: %w", err)
	}
	return nil
}
