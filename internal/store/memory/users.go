package memory

import (
	"context"
	"sort"
	"strings"

	"aquaflow/internal/model"

	"github.com/google/uuid"
)

type userStore struct{ *db }

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.UserID == user.UserID {
			return model.ErrDuplicateUserID
		}
	}

	s.users[user.ID] = *user
	s.persist()
	return nil
}

func (s *userStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *userStore) GetByUserID(ctx context.Context, userID string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.UserID == userID {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (s *userStore) Update(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return model.ErrNotFound
	}
	s.users[user.ID] = *user
	s.persist()
	return nil
}

func (s *userStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.users, id)
	s.persist()
	return nil
}

type areaStore struct{ *db }

func (s *areaStore) Create(ctx context.Context, area *model.ServiceArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.areas {
		if strings.EqualFold(a.Name, area.Name) {
			return model.ErrAreaTaken
		}
	}

	s.areas[area.ID] = *area
	s.persist()
	return nil
}

func (s *areaStore) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.areas[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *areaStore) GetByName(ctx context.Context, name string) (*model.ServiceArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.areas {
		if strings.EqualFold(a.Name, name) {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (s *areaStore) GetByVendor(ctx context.Context, vendorID uuid.UUID) (*model.ServiceArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.areas {
		if a.VendorID == vendorID {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (s *areaStore) List(ctx context.Context) ([]model.ServiceArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ServiceArea, 0, len(s.areas))
	for _, a := range s.areas {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *areaStore) Update(ctx context.Context, area *model.ServiceArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.areas[area.ID]; !ok {
		return model.ErrNotFound
	}
	s.areas[area.ID] = *area
	s.persist()
	return nil
}

func (s *areaStore) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, a := range s.areas {
		if a.VendorID == vendorID {
			delete(s.areas, id)
		}
	}
	s.persist()
	return nil
}
