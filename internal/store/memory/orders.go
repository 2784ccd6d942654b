package memory

import (
	"context"
	"sort"

	"aquaflow/internal/model"

	"github.com/google/uuid"
)

type orderStore struct{ *db }

func (s *orderStore) Create(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.ID] = copyOrder(*order)
	s.persist()
	return nil
}

func (s *orderStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	out := copyOrder(o)
	return &out, nil
}

func (s *orderStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Order, 0)
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			out = append(out, copyOrder(o))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *orderStore) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Order, 0)
	for _, o := range s.orders {
		if o.VendorID == vendorID {
			out = append(out, copyOrder(o))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *orderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return model.ErrNotFound
	}
	o.Status = status
	s.orders[id] = o
	s.persist()
	return nil
}

func (s *orderStore) SetInvoiceID(ctx context.Context, id, invoiceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return model.ErrNotFound
	}
	inv := invoiceID
	o.InvoiceID = &inv
	s.orders[id] = o
	s.persist()
	return nil
}

func (s *orderStore) AppendMessage(ctx context.Context, msg *model.OrderMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[msg.OrderID]
	if !ok {
		return model.ErrNotFound
	}
	o.Messages = append(append([]model.OrderMessage(nil), o.Messages...), *msg)
	s.orders[msg.OrderID] = o
	s.persist()
	return nil
}

func (s *orderStore) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, o := range s.orders {
		if o.CustomerID == customerID {
			delete(s.orders, id)
		}
	}
	s.persist()
	return nil
}

func (s *orderStore) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, o := range s.orders {
		if o.VendorID == vendorID {
			delete(s.orders, id)
		}
	}
	s.persist()
	return nil
}

func sortNewestFirst(orders []model.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
}

type invoiceStore struct{ *db }

func (s *invoiceStore) Create(ctx context.Context, inv *model.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.invoices {
		if existing.OrderID == inv.OrderID {
			return model.ErrInvoiceExists
		}
	}

	s.invoices[inv.ID] = *inv
	s.persist()
	return nil
}

func (s *invoiceStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (s *invoiceStore) GetByOrder(ctx context.Context, orderID uuid.UUID) (*model.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invoices {
		if inv.OrderID == orderID {
			out := inv
			return &out, nil
		}
	}
	return nil, nil
}

func (s *invoiceStore) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Invoice, 0)
	for _, inv := range s.invoices {
		o, ok := s.orders[inv.OrderID]
		if ok && o.VendorID == vendorID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GeneratedDate.After(out[j].GeneratedDate)
	})
	return out, nil
}

func (s *invoiceStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvoiceStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[id]
	if !ok {
		return model.ErrNotFound
	}
	inv.Status = status
	s.invoices[id] = inv
	s.persist()
	return nil
}

func (s *invoiceStore) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, inv := range s.invoices {
		o, ok := s.orders[inv.OrderID]
		if ok && o.VendorID == vendorID {
			delete(s.invoices, id)
		}
	}
	s.persist()
	return nil
}
