package memory

import (
	"context"
	"sort"

	"aquaflow/internal/model"

	"github.com/google/uuid"
)

type addressStore struct{ *db }

func (s *addressStore) Create(ctx context.Context, addr *model.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addresses[addr.ID] = *addr
	s.persist()
	return nil
}

func (s *addressStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.addresses[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *addressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Address, 0)
	for _, a := range s.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *addressStore) Update(ctx context.Context, addr *model.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.addresses[addr.ID]; !ok {
		return model.ErrNotFound
	}
	s.addresses[addr.ID] = *addr
	s.persist()
	return nil
}

func (s *addressStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.addresses[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.addresses, id)
	s.persist()
	return nil
}

func (s *addressStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, a := range s.addresses {
		if a.UserID == userID {
			delete(s.addresses, id)
		}
	}
	s.persist()
	return nil
}

func (s *addressStore) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.addresses[addressID]
	if !ok || target.UserID != userID {
		return model.ErrNotFound
	}

	for id, a := range s.addresses {
		if a.UserID != userID {
			continue
		}
		a.IsDefault = id == addressID
		s.addresses[id] = a
	}
	s.persist()
	return nil
}

type inventoryStore struct{ *db }

func (s *inventoryStore) Create(ctx context.Context, item *model.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inventory[item.ID] = *item
	s.persist()
	return nil
}

func (s *inventoryStore) GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.inventory[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (s *inventoryStore) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.InventoryItem, 0)
	for _, it := range s.inventory {
		if it.VendorID == vendorID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *inventoryStore) Update(ctx context.Context, item *model.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inventory[item.ID]; !ok {
		return model.ErrNotFound
	}
	s.inventory[item.ID] = *item
	s.persist()
	return nil
}

func (s *inventoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inventory[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.inventory, id)
	s.persist()
	return nil
}

func (s *inventoryStore) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, it := range s.inventory {
		if it.VendorID == vendorID {
			delete(s.inventory, id)
		}
	}
	s.persist()
	return nil
}

func (s *inventoryStore) Decrement(ctx context.Context, vendorID uuid.UUID, lines []model.DecrementLine) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var missing []uuid.UUID
	for _, line := range lines {
		it, ok := s.inventory[line.ItemID]
		if !ok || it.VendorID != vendorID {
			missing = append(missing, line.ItemID)
			continue
		}
		it.Stock -= line.Quantity
		if it.Stock < 0 {
			it.Stock = 0
		}
		s.inventory[line.ItemID] = it
	}
	s.persist()
	return missing, nil
}
