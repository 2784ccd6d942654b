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

// orderStore implements store.OrderStore using PostgreSQL. The chosen
// address is flattened onto the orders row as a snapshot; the items and
// messages live in child tables.
type orderStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderStore creates a new PostgreSQL-backed order store.
func NewOrderStore(pool *pgxpool.Pool, logger zerolog.Logger) store.OrderStore {
	return &orderStore{
		pool:   pool,
		logger: logger.With().Str("store", "order").Logger(),
	}
}

const orderColumns = `
	id, customer_id, customer_name, customer_phone, customer_user_id,
	address_id, address_label, address_street, address_city, address_state, address_zip_code,
	total, status, order_date, delivery_date, preferred_time,
	vendor_id, vendor_name, area_id, invoice_id`

// Create inserts the order row and its frozen items in one transaction.
func (s *orderStore) Create(ctx context.Context, order *model.Order) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	orderQuery := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err = tx.Exec(ctx, orderQuery,
		order.ID, order.CustomerID, order.CustomerName, order.CustomerPhone, order.CustomerUserID,
		order.Address.ID, order.Address.Label, order.Address.Street, order.Address.City,
		order.Address.State, order.Address.ZipCode,
		order.Total, order.Status, order.OrderDate, order.DeliveryDate, order.PreferredTime,
		order.VendorID, order.VendorName, order.AreaID, order.InvoiceID,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, inventory_item_id, name, price, quantity)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, item := range order.Items {
		batch.Queue(itemQuery, order.ID, item.ID, item.Name, item.Price, item.Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	for range order.Items {
		if _, err = results.Exec(); err != nil {
			results.Close()
			s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}
	if err = results.Close(); err != nil {
		return fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debug().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Msg("order created")

	return nil
}

func (s *orderStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var o model.Order
	err := s.pool.QueryRow(ctx, query, id).Scan(scanTargets(&o)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	o.Address.UserID = o.CustomerID
	o.Address.AreaID = o.AreaID

	orders := []model.Order{o}
	if err := s.attachChildren(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (s *orderStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	return s.list(ctx, `customer_id`, customerID)
}

func (s *orderStore) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.Order, error) {
	return s.list(ctx, `vendor_id`, vendorID)
}

func (s *orderStore) list(ctx context.Context, column string, id uuid.UUID) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + column + ` = $1 ORDER BY order_date DESC`

	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		s.logger.Error().Err(err).Str(column, id.String()).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(scanTargets(&o)...); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Address.UserID = o.CustomerID
		o.Address.AreaID = o.AreaID
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := s.attachChildren(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// scanTargets returns the scan destinations matching orderColumns.
func scanTargets(o *model.Order) []any {
	return []any{
		&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerPhone, &o.CustomerUserID,
		&o.Address.ID, &o.Address.Label, &o.Address.Street, &o.Address.City,
		&o.Address.State, &o.Address.ZipCode,
		&o.Total, &o.Status, &o.OrderDate, &o.DeliveryDate, &o.PreferredTime,
		&o.VendorID, &o.VendorName, &o.AreaID, &o.InvoiceID,
	}
}

// attachChildren loads items and messages for the given orders in two
// queries and distributes them.
func (s *orderStore) attachChildren(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]*model.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = &orders[i]
	}

	itemRows, err := s.pool.Query(ctx, `
		SELECT order_id, inventory_item_id, name, price, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query order items")
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID uuid.UUID
		var item model.OrderItem
		if err := itemRows.Scan(&orderID, &item.ID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if o, ok := index[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("error iterating order items: %w", err)
	}

	msgRows, err := s.pool.Query(ctx, `
		SELECT id, order_id, sender, sender_name, message, created_at
		FROM order_messages
		WHERE order_id = ANY($1)
		ORDER BY created_at
	`, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query order messages")
		return fmt.Errorf("failed to query order messages: %w", err)
	}
	defer msgRows.Close()

	for msgRows.Next() {
		var m model.OrderMessage
		if err := msgRows.Scan(&m.ID, &m.OrderID, &m.Sender, &m.SenderName, &m.Message, &m.Timestamp); err != nil {
			return fmt.Errorf("failed to scan order message: %w", err)
		}
		if o, ok := index[m.OrderID]; ok {
			o.Messages = append(o.Messages, m)
		}
	}
	if err := msgRows.Err(); err != nil {
		return fmt.Errorf("error iterating order messages: %w", err)
	}

	return nil
}

func (s *orderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	tag, err := s.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *orderStore) SetInvoiceID(ctx context.Context, id, invoiceID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `UPDATE orders SET invoice_id = $2 WHERE id = $1`, id, invoiceID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to stamp invoice id")
		return fmt.Errorf("failed to stamp invoice id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *orderStore) AppendMessage(ctx context.Context, msg *model.OrderMessage) error {
	query := `
		INSERT INTO order_messages (id, order_id, sender, sender_name, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		msg.ID, msg.OrderID, msg.Sender, msg.SenderName, msg.Message, msg.Timestamp,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", msg.OrderID.String()).Msg("failed to append message")
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

func (s *orderStore) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE customer_id = $1`, customerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to delete orders")
		return fmt.Errorf("failed to delete orders: %w", err)
	}
	return nil
}

func (s *orderStore) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE vendor_id = $1`, vendorID)
	if err != nil {
		s.logger.Error().Err(err).Str("vendor_id", vendorID.String()).Msg("failed to delete orders")
		return fmt.Errorf("failed to delete orders: %w", err)
	}
	return nil
}
