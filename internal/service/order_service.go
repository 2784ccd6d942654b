package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aquaflow/internal/model"
	"aquaflow/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orders    store.OrderStore
	addresses store.AddressStore
	areas     store.AreaStore
	inventory store.InventoryStore
	users     store.UserStore
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(st *store.Store, logger zerolog.Logger) OrderService {
	return &orderService{
		orders:    st.Orders,
		addresses: st.Addresses,
		areas:     st.Areas,
		inventory: st.Inventory,
		users:     st.Users,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Place converts a cart into a pending order. Item names and prices are
// snapshotted from the vendor's ledger at this moment and frozen, as is the
// delivery address and the total.
func (s *orderService) Place(ctx context.Context, customerID uuid.UUID, req *model.PlaceOrderRequest) (*model.Order, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, model.ErrEmptyCart
	}
	if strings.TrimSpace(req.PreferredTime) == "" {
		return nil, model.ErrMissingTime
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, model.ErrInvalidQuantity
		}
	}

	customer, err := s.users.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrNotFound
	}

	addr, err := s.addresses.GetByID(ctx, req.AddressID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up address: %w", err)
	}
	if addr == nil {
		return nil, model.NewValidationError("A delivery address must be selected")
	}
	if addr.UserID != customerID {
		return nil, model.ErrForbidden
	}

	area, err := s.areas.GetByID(ctx, addr.AreaID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up area: %w", err)
	}
	if area == nil {
		return nil, model.ErrNotFound
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	total := 0.0
	for _, line := range req.Items {
		inv, err := s.inventory.GetByID(ctx, line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up item: %w", err)
		}
		if inv == nil || inv.VendorID != area.VendorID {
			return nil, model.NewValidationError("Item %s is not in this vendor's catalog", line.ItemID)
		}
		items = append(items, model.OrderItem{
			ID:       inv.ID,
			Name:     inv.Name,
			Price:    inv.Price,
			Quantity: line.Quantity,
		})
		total += inv.Price * float64(line.Quantity)
	}

	order := &model.Order{
		ID:             uuid.New(),
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		CustomerPhone:  customer.Phone,
		CustomerUserID: customer.UserID,
		Address:        *addr,
		Items:          items,
		Total:          total,
		Status:         model.StatusPending,
		OrderDate:      time.Now(),
		DeliveryDate:   req.DeliveryDate,
		PreferredTime:  strings.TrimSpace(req.PreferredTime),
		VendorID:       area.VendorID,
		VendorName:     area.VendorName,
		AreaID:         area.ID,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("vendor_id", order.VendorID.String()).
		Float64("total", order.Total).
		Int("item_count", len(order.Items)).
		Msg("order placed")

	return order, nil
}

func (s *orderService) Get(ctx context.Context, orderID uuid.UUID, actor *model.User) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrNotFound
	}
	if order.CustomerID != actor.ID && order.VendorID != actor.ID {
		return nil, model.ErrForbidden
	}
	return order, nil
}

// ListForUser returns the actor's side of the marketplace. The customer
// month filter works on the order date; revenue reporting uses the delivery
// date instead.
func (s *orderService) ListForUser(ctx context.Context, actor *model.User, year int, month int) ([]model.Order, error) {
	var (
		orders []model.Order
		err    error
	)
	if actor.Type == model.UserTypeVendor {
		orders, err = s.orders.ListByVendor(ctx, actor.ID)
	} else {
		orders, err = s.orders.ListByCustomer(ctx, actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	if actor.Type == model.UserTypeCustomer && year != 0 && month != 0 {
		filtered := make([]model.Order, 0, len(orders))
		for _, o := range orders {
			if o.OrderDate.Year() == year && int(o.OrderDate.Month()) == month {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	return orders, nil
}

// SetStatus applies a vendor status change. Cancellation is only reachable
// from pending; any other move between non-terminal states is allowed, and
// terminal states accept no further changes. Transition into delivered
// triggers the inventory decrement as a side effect, never as a guard.
func (s *orderService) SetStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus, actingVendorID uuid.UUID) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrNotFound
	}
	if order.VendorID != actingVendorID {
		return nil, model.ErrForbidden
	}
	if order.Status.Terminal() {
		return nil, model.ErrOrderFinal
	}
	if status == model.StatusCancelled && order.Status != model.StatusPending {
		return nil, model.ErrCancelNotPending
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	if status == model.StatusDelivered {
		s.decrementStock(ctx, order)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("from", string(order.Status)).
		Str("to", string(status)).
		Msg("order status changed")

	order.Status = status
	return order, nil
}

// decrementStock reduces the vendor's stock by the delivered quantities,
// clamped at zero. Delivery stands even when lines reference items that no
// longer exist; the discrepancy is only logged.
func (s *orderService) decrementStock(ctx context.Context, order *model.Order) {
	lines := make([]model.DecrementLine, len(order.Items))
	for i, item := range order.Items {
		lines[i] = model.DecrementLine{ItemID: item.ID, Quantity: item.Quantity}
	}

	missing, err := s.inventory.Decrement(ctx, order.VendorID, lines)
	if err != nil {
		s.logger.Error().Err(err).
			Str("order_id", order.ID.String()).
			Msg("inventory decrement failed after delivery")
		return
	}
	if len(missing) > 0 {
		pf := &model.PartialFailureError{MissingItems: missing}
		s.logger.Warn().Err(pf).
			Str("order_id", order.ID.String()).
			Msg("inventory decrement skipped missing items")
	}
}

// AppendMessage adds to the order's thread. Either party may write in any
// status; the timestamp is assigned here, and messages are never edited or
// removed.
func (s *orderService) AppendMessage(ctx context.Context, orderID uuid.UUID, actor *model.User, text string) (*model.OrderMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, model.NewValidationError("Message text is required")
	}

	order, err := s.Get(ctx, orderID, actor)
	if err != nil {
		return nil, err
	}

	sender := model.SenderCustomer
	if actor.ID == order.VendorID {
		sender = model.SenderVendor
	}

	msg := &model.OrderMessage{
		ID:         uuid.New(),
		OrderID:    orderID,
		Sender:     sender,
		SenderName: actor.Name,
		Message:    strings.TrimSpace(text),
		Timestamp:  time.Now(),
	}

	if err := s.orders.AppendMessage(ctx, msg); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return msg, nil
}
