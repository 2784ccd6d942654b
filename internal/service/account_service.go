package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aquaflow/internal/auth"
	"aquaflow/internal/model"
	"aquaflow/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// accountService implements AccountService.
type accountService struct {
	users     store.UserStore
	areas     store.AreaStore
	addresses store.AddressStore
	inventory store.InventoryStore
	orders    store.OrderStore
	invoices  store.InvoiceStore
	logger    zerolog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(st *store.Store, logger zerolog.Logger) AccountService {
	return &accountService{
		users:     st.Users,
		areas:     st.Areas,
		addresses: st.Addresses,
		inventory: st.Inventory,
		orders:    st.Orders,
		invoices:  st.Invoices,
		logger:    logger.With().Str("service", "account").Logger(),
	}
}

func (s *accountService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	user := &model.User{
		ID:        uuid.New(),
		UserID:    strings.TrimSpace(req.UserID),
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Type:      req.Type,
		CreatedAt: time.Now(),
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	switch req.Type {
	case model.UserTypeCustomer:
		areaID, err := uuid.Parse(req.AreaID)
		if err != nil {
			return nil, model.ErrAreaRequired
		}
		area, err := s.areas.GetByID(ctx, areaID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up area: %w", err)
		}
		if area == nil {
			return nil, model.NewValidationError("Selected service area does not exist")
		}
		user.AreaID = &area.ID

		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}

	case model.UserTypeVendor:
		areaName := strings.TrimSpace(req.AreaName)

		// Pre-check so the common conflict never creates the account.
		existing, err := s.areas.GetByName(ctx, areaName)
		if err != nil {
			return nil, fmt.Errorf("failed to look up area: %w", err)
		}
		if existing != nil {
			return nil, model.ErrAreaTaken
		}

		user.ServiceArea = areaName
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}

		area := &model.ServiceArea{
			ID:         uuid.New(),
			Name:       areaName,
			VendorID:   user.ID,
			VendorName: user.Name,
			CreatedAt:  time.Now(),
		}
		if err := s.areas.Create(ctx, area); err != nil {
			// Lost the race on the area name; the vendor must not stay
			// registered without an area.
			if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
				s.logger.Error().Err(delErr).Str("user_id", user.UserID).
					Msg("failed to remove vendor after area conflict")
			}
			return nil, err
		}
		user.AreaID = &area.ID
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Str("user_id", user.UserID).
		Str("type", string(user.Type)).
		Msg("account registered")

	return user, nil
}

func validateRegisterRequest(req *model.RegisterRequest) error {
	if req == nil {
		return model.NewValidationError("Registration payload is required")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return model.NewValidationError("User ID is required")
	}
	if req.Password == "" {
		return model.NewValidationError("Password is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.NewValidationError("Name is required")
	}
	switch req.Type {
	case model.UserTypeCustomer:
		if strings.TrimSpace(req.AreaID) == "" {
			return model.ErrAreaRequired
		}
	case model.UserTypeVendor:
		if strings.TrimSpace(req.AreaName) == "" {
			return model.NewValidationError("The area you will serve is required")
		}
	default:
		return model.NewValidationError("Account type must be customer or vendor")
	}
	return nil
}

func (s *accountService) Authenticate(ctx context.Context, userID, password string) (*model.User, error) {
	user, err := s.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, model.ErrInvalidCredential
	}
	return user, nil
}

func (s *accountService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, model.ErrNotFound
	}
	return user, nil
}

// UpdateProfile applies name/phone edits. A vendor rename is propagated to
// the service area's display name; historical orders keep the old name.
func (s *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	renamed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, model.NewValidationError("Name cannot be empty")
		}
		renamed = name != user.Name
		user.Name = name
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if renamed && user.Type == model.UserTypeVendor {
		area, err := s.areas.GetByVendor(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up vendor area: %w", err)
		}
		if area != nil {
			area.VendorName = user.Name
			if err := s.areas.Update(ctx, area); err != nil {
				return nil, err
			}
		}
	}

	return user, nil
}

// DeleteAccount cascades per account type. Vendor deletion removes the
// service area, inventory, orders and invoices; customer deletion removes
// orders and addresses.
func (s *accountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	switch user.Type {
	case model.UserTypeVendor:
		// Invoices first: they are found through the vendor's orders.
		if err := s.invoices.DeleteByVendor(ctx, userID); err != nil {
			return err
		}
		if err := s.orders.DeleteByVendor(ctx, userID); err != nil {
			return err
		}
		if err := s.inventory.DeleteByVendor(ctx, userID); err != nil {
			return err
		}
		if err := s.areas.DeleteByVendor(ctx, userID); err != nil {
			return err
		}
	case model.UserTypeCustomer:
		if err := s.orders.DeleteByCustomer(ctx, userID); err != nil {
			return err
		}
		if err := s.addresses.DeleteByUser(ctx, userID); err != nil {
			return err
		}
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", user.UserID).
		Str("type", string(user.Type)).
		Msg("account deleted")

	return nil
}

func (s *accountService) ListAreas(ctx context.Context) ([]model.ServiceArea, error) {
	areas, err := s.areas.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	return areas, nil
}

func (s *accountService) ResolveVendorForArea(ctx context.Context, areaID uuid.UUID) (uuid.UUID, error) {
	area, err := s.areas.GetByID(ctx, areaID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up area: %w", err)
	}
	if area == nil {
		return uuid.Nil, model.ErrNotFound
	}
	return area.VendorID, nil
}

func (s *accountService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	addrs, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addrs, nil
}

func (s *accountService) CreateAddress(ctx context.Context, userID uuid.UUID, req *model.AddressRequest) (*model.Address, error) {
	areaID, err := s.validateAddressRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}

	addr := &model.Address{
		ID:        uuid.New(),
		UserID:    userID,
		Label:     strings.TrimSpace(req.Label),
		Street:    strings.TrimSpace(req.Street),
		City:      strings.TrimSpace(req.City),
		State:     strings.TrimSpace(req.State),
		ZipCode:   strings.TrimSpace(req.ZipCode),
		AreaID:    areaID,
		IsDefault: len(existing) == 0,
		CreatedAt: time.Now(),
	}

	if err := s.addresses.Create(ctx, addr); err != nil {
		return nil, err
	}

	// An explicitly requested default displaces the current one.
	if req.IsDefault && !addr.IsDefault {
		if err := s.addresses.SetDefault(ctx, userID, addr.ID); err != nil {
			return nil, err
		}
		addr.IsDefault = true
	}

	return addr, nil
}

func (s *accountService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req *model.AddressRequest) (*model.Address, error) {
	areaID, err := s.validateAddressRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	addr, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	addr.Label = strings.TrimSpace(req.Label)
	addr.Street = strings.TrimSpace(req.Street)
	addr.City = strings.TrimSpace(req.City)
	addr.State = strings.TrimSpace(req.State)
	addr.ZipCode = strings.TrimSpace(req.ZipCode)
	addr.AreaID = areaID

	if err := s.addresses.Update(ctx, addr); err != nil {
		return nil, err
	}

	if req.IsDefault && !addr.IsDefault {
		if err := s.addresses.SetDefault(ctx, userID, addr.ID); err != nil {
			return nil, err
		}
		addr.IsDefault = true
	}

	return addr, nil
}

func (s *accountService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	addr, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return err
	}

	if err := s.addresses.Delete(ctx, addressID); err != nil {
		return err
	}

	// Keep the exactly-one-default invariant when the default was removed.
	if addr.IsDefault {
		remaining, err := s.addresses.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list addresses: %w", err)
		}
		if len(remaining) > 0 {
			if err := s.addresses.SetDefault(ctx, userID, remaining[0].ID); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *accountService) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}
	return s.addresses.SetDefault(ctx, userID, addressID)
}

// validateAddressRequest checks the required fields and resolves the area,
// returning its ID.
func (s *accountService) validateAddressRequest(ctx context.Context, req *model.AddressRequest) (uuid.UUID, error) {
	if req == nil {
		return uuid.Nil, model.NewValidationError("Address payload is required")
	}
	for field, value := range map[string]string{
		"label":   req.Label,
		"street":  req.Street,
		"city":    req.City,
		"state":   req.State,
		"zipCode": req.ZipCode,
	} {
		if strings.TrimSpace(value) == "" {
			return uuid.Nil, model.NewValidationError("Address field %q is required", field)
		}
	}

	areaID, err := uuid.Parse(req.AreaID)
	if err != nil {
		return uuid.Nil, model.ErrAreaRequired
	}
	area, err := s.areas.GetByID(ctx, areaID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up area: %w", err)
	}
	if area == nil {
		return uuid.Nil, model.NewValidationError("Selected service area does not exist")
	}
	return areaID, nil
}

func (s *accountService) ownedAddress(ctx context.Context, userID, addressID uuid.UUID) (*model.Address, error) {
	addr, err := s.addresses.GetByID(ctx, addressID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up address: %w", err)
	}
	if addr == nil {
		return nil, model.ErrNotFound
	}
	if addr.UserID != userID {
		return nil, model.ErrForbidden
	}
	return addr, nil
}
