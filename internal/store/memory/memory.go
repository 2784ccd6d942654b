// Package memory implements the store contract with in-process maps and an
// optional JSON snapshot file, mirroring the flat local persistence the
// application supports alongside the relational backend.
package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"aquaflow/internal/model"
	"aquaflow/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// db holds all entity state behind a single mutex. Every mutating call
// rewrites the snapshot file when one is configured.
type db struct {
	mu     sync.RWMutex
	logger zerolog.Logger
	path   string

	users     map[uuid.UUID]model.User
	areas     map[uuid.UUID]model.ServiceArea
	addresses map[uuid.UUID]model.Address
	inventory map[uuid.UUID]model.InventoryItem
	orders    map[uuid.UUID]model.Order
	invoices  map[uuid.UUID]model.Invoice
}

// snapshotUser restores the password hash that the API-facing user type
// strips from its JSON form.
type snapshotUser struct {
	model.User
	PasswordHash string `json:"passwordHash"`
}

// snapshot is the serialisable representation of the full state.
type snapshot struct {
	Users     []snapshotUser        `json:"users"`
	Areas     []model.ServiceArea   `json:"areas"`
	Addresses []model.Address       `json:"addresses"`
	Inventory []model.InventoryItem `json:"inventory"`
	Orders    []model.Order         `json:"orders"`
	Invoices  []model.Invoice       `json:"invoices"`
}

// Open creates a memory-backed store. When path is non-empty the state is
// loaded from and persisted to that file.
func Open(path string, logger zerolog.Logger) (*store.Store, error) {
	d := &db{
		logger:    logger.With().Str("store", "memory").Logger(),
		path:      path,
		users:     make(map[uuid.UUID]model.User),
		areas:     make(map[uuid.UUID]model.ServiceArea),
		addresses: make(map[uuid.UUID]model.Address),
		inventory: make(map[uuid.UUID]model.InventoryItem),
		orders:    make(map[uuid.UUID]model.Order),
		invoices:  make(map[uuid.UUID]model.Invoice),
	}

	if path != "" {
		if err := d.load(); err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
	}

	return &store.Store{
		Users:     &userStore{d},
		Areas:     &areaStore{d},
		Addresses: &addressStore{d},
		Inventory: &inventoryStore{d},
		Orders:    &orderStore{d},
		Invoices:  &invoiceStore{d},
	}, nil
}

func (d *db) load() error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			d.logger.Info().Str("path", d.path).Msg("no snapshot file, starting empty")
			return nil
		}
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	for _, u := range snap.Users {
		u.User.PasswordHash = u.PasswordHash
		d.users[u.ID] = u.User
	}
	for _, a := range snap.Areas {
		d.areas[a.ID] = a
	}
	for _, a := range snap.Addresses {
		d.addresses[a.ID] = a
	}
	for _, it := range snap.Inventory {
		d.inventory[it.ID] = it
	}
	for _, o := range snap.Orders {
		d.orders[o.ID] = o
	}
	for _, inv := range snap.Invoices {
		d.invoices[inv.ID] = inv
	}

	d.logger.Info().
		Str("path", d.path).
		Int("users", len(d.users)).
		Int("orders", len(d.orders)).
		Msg("snapshot loaded")

	return nil
}

// persist writes the snapshot file. Callers hold the write lock.
func (d *db) persist() {
	if d.path == "" {
		return
	}

	snap := snapshot{}
	for _, u := range d.users {
		snap.Users = append(snap.Users, snapshotUser{User: u, PasswordHash: u.PasswordHash})
	}
	for _, a := range d.areas {
		snap.Areas = append(snap.Areas, a)
	}
	for _, a := range d.addresses {
		snap.Addresses = append(snap.Addresses, a)
	}
	for _, it := range d.inventory {
		snap.Inventory = append(snap.Inventory, it)
	}
	for _, o := range d.orders {
		snap.Orders = append(snap.Orders, o)
	}
	for _, inv := range d.invoices {
		snap.Invoices = append(snap.Invoices, inv)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to encode snapshot")
		return
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		d.logger.Error().Err(err).Msg("failed to create snapshot directory")
		return
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		d.logger.Error().Err(err).Msg("failed to write snapshot")
		return
	}
	if err := os.Rename(tmp, d.path); err != nil {
		d.logger.Error().Err(err).Msg("failed to replace snapshot")
	}
}

// copyOrder returns a detached copy so callers cannot mutate stored state
// through the item and message slices.
func copyOrder(o model.Order) model.Order {
	out := o
	out.Items = append([]model.OrderItem(nil), o.Items...)
	out.Messages = append([]model.OrderMessage(nil), o.Messages...)
	return out
}
