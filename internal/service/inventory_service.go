package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aquaflow/internal/model"
	"aquaflow/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// inventoryService implements InventoryService.
type inventoryService struct {
	inventory store.InventoryStore
	areas     store.AreaStore
	logger    zerolog.Logger
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(st *store.Store, logger zerolog.Logger) InventoryService {
	return &inventoryService{
		inventory: st.Inventory,
		areas:     st.Areas,
		logger:    logger.With().Str("service", "inventory").Logger(),
	}
}

func (s *inventoryService) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.InventoryItem, error) {
	items, err := s.inventory.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// Catalog scopes the browsable items to the vendor owning the area.
func (s *inventoryService) Catalog(ctx context.Context, areaID uuid.UUID) ([]model.InventoryItem, error) {
	area, err := s.areas.GetByID(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up area: %w", err)
	}
	if area == nil {
		return nil, model.ErrNotFound
	}
	return s.ListByVendor(ctx, area.VendorID)
}

func (s *inventoryService) CreateItem(ctx context.Context, vendorID uuid.UUID, req *model.InventoryItemRequest) (*model.InventoryItem, error) {
	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &model.InventoryItem{
		ID:          uuid.New(),
		VendorID:    vendorID,
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Stock:       req.Stock,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.inventory.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("item_id", item.ID.String()).
		Str("vendor_id", vendorID.String()).
		Msg("inventory item created")

	return item, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, vendorID, itemID uuid.UUID, req *model.InventoryItemRequest) (*model.InventoryItem, error) {
	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	item, err := s.ownedItem(ctx, vendorID, itemID)
	if err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(req.Name)
	item.Price = req.Price
	item.Stock = req.Stock
	item.Description = strings.TrimSpace(req.Description)
	item.UpdatedAt = time.Now()

	if err := s.inventory.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, vendorID, itemID uuid.UUID) error {
	if _, err := s.ownedItem(ctx, vendorID, itemID); err != nil {
		return err
	}
	return s.inventory.Delete(ctx, itemID)
}

// LowStock is a derived view; nothing is stored about being low.
func (s *inventoryService) LowStock(ctx context.Context, vendorID uuid.UUID) ([]model.InventoryItem, error) {
	items, err := s.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	low := make([]model.InventoryItem, 0)
	for _, it := range items {
		if it.Stock < model.LowStockThreshold {
			low = append(low, it)
		}
	}
	return low, nil
}

func (s *inventoryService) ownedItem(ctx context.Context, vendorID, itemID uuid.UUID) (*model.InventoryItem, error) {
	item, err := s.inventory.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}
	if item == nil {
		return nil, model.ErrNotFound
	}
	if item.VendorID != vendorID {
		return nil, model.ErrForbidden
	}
	return item, nil
}

func validateItemRequest(req *model.InventoryItemRequest) error {
	if req == nil {
		return model.NewValidationError("Item payload is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.NewValidationError("Item name is required")
	}
	if req.Price <= 0 {
		return model.NewValidationError("Price must be positive")
	}
	if req.Stock < 0 {
		return model.NewValidationError("Stock cannot be negative")
	}
	return nil
}
