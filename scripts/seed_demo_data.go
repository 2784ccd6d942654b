// Seeds a local database with a demo vendor, area, customer and stock so the
// API can be exercised by hand. Run with: go run scripts/seed_demo_data.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"aquaflow/internal/auth"
	"aquaflow/internal/config"
	"aquaflow/internal/database"
	"aquaflow/internal/model"
	"aquaflow/internal/store/postgres"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(pool, logger); err != nil {
		return err
	}
	st := postgres.New(pool, logger)

	hash, err := auth.HashPassword("demo1234")
	if err != nil {
		return err
	}

	vendor := &model.User{
		ID:           uuid.New(),
		UserID:       "bluefalls",
		Name:         "Blue Falls Water",
		Phone:        "555-0100",
		Type:         model.UserTypeVendor,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := st.Users.Create(ctx, vendor); err != nil {
		return err
	}

	area := &model.ServiceArea{
		ID:         uuid.New(),
		Name:       "North Hills",
		VendorID:   vendor.ID,
		VendorName: vendor.Name,
		CreatedAt:  time.Now(),
	}
	if err := st.Areas.Create(ctx, area); err != nil {
		return err
	}
	vendor.AreaID = &area.ID
	vendor.ServiceArea = area.Name
	if err := st.Users.Update(ctx, vendor); err != nil {
		return err
	}

	customer := &model.User{
		ID:           uuid.New(),
		UserID:       "ravi",
		Name:         "Ravi Kumar",
		Phone:        "555-0101",
		Type:         model.UserTypeCustomer,
		AreaID:       &area.ID,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := st.Users.Create(ctx, customer); err != nil {
		return err
	}

	if err := st.Addresses.Create(ctx, &model.Address{
		ID:        uuid.New(),
		UserID:    customer.ID,
		Label:     "Home",
		Street:    "12 Lake View Road",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62704",
		IsDefault: true,
		AreaID:    area.ID,
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}

	now := time.Now()
	for _, item := range []model.InventoryItem{
		{Name: "20L Can", Price: 2.50, Stock: 120, Description: "Standard 20 litre refill"},
		{Name: "10L Can", Price: 1.50, Stock: 80, Description: "Half-size refill"},
		{Name: "5L Can", Price: 1.00, Stock: 30, Description: "Small household can"},
	} {
		item.ID = uuid.New()
		item.VendorID = vendor.ID
		item.CreatedAt = now
		item.UpdatedAt = now
		if err := st.Inventory.Create(ctx, &item); err != nil {
			return err
		}
	}

	logger.Info().
		Str("vendor", "bluefalls").
		Str("customer", "ravi").
		Str("password", "demo1234").
		Msg("demo data seeded")
	return nil
}
