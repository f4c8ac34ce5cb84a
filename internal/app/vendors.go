package app

import (
	"fmt"
	"time"

	"dropgate/internal/constants"
	"dropgate/internal/domain"
	"dropgate/internal/logger"
	"dropgate/internal/store"
)

// VendorService is the minimal vendor registry the drop subsystem needs:
// registration and the is-alive existence check.
type VendorService struct {
	db     *store.DB
	logger *logger.Logger
}

func NewVendorService(db *store.DB, log *logger.Logger) *VendorService {
	if log == nil {
		log = logger.Default()
	}
	return &VendorService{db: db, logger: log.WithComponent("vendors")}
}

func (s *VendorService) Create(stableID, name, env string) (*domain.Vendor, error) {
	if stableID == "" {
		return nil, domain.Required("stable_id")
	}
	if name == "" {
		return nil, domain.Required("name")
	}
	if env == "" {
		env = constants.DefaultEnv
	}

	now := time.Now().Unix()
	vendor := &domain.Vendor{
		StableID:  stableID,
		Name:      name,
		Env:       env,
		CreatedAt: now,
		UpdatedAt: now,
		IsAlive:   1,
	}

	if err := s.db.CreateVendor(vendor); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, domain.Invalid("stable_id", "already exists")
		}
		return nil, fmt.Errorf("failed to insert vendor: %w", err)
	}

	s.logger.Info("Vendor created", "stable_id", stableID, "name", name)
	return vendor, nil
}

func (s *VendorService) Get(stableID string) (*domain.Vendor, error) {
	vendor, err := s.db.GetVendor(stableID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrVendorNotFound
	}
	return vendor, nil
}

func (s *VendorService) List() ([]*domain.Vendor, error) {
	return s.db.ListVendors()
}
