package app

import (
	"errors"
	"path/filepath"
	"testing"

	"dropgate/internal/domain"
	"dropgate/internal/store"
)

func setupVendors(t *testing.T) *VendorService {
	t.Helper()
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewVendorService(db, nil)
}

func TestVendorCreate(t *testing.T) {
	svc := setupVendors(t)

	vendor, err := svc.Create("vendor_1", "Test Vendor", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if vendor.Env != "devnet" {
		t.Errorf("Expected devnet default, got %s", vendor.Env)
	}
	if vendor.IsAlive != 1 {
		t.Error("Expected new vendor alive")
	}

	if _, err := svc.Create("", "X", ""); err == nil {
		t.Error("Expected error for empty stable_id")
	}
	if _, err := svc.Create("vendor_2", "", ""); err == nil {
		t.Error("Expected error for empty name")
	}

	_, err = svc.Create("vendor_1", "Other Name", "")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Expected validation error on duplicate, got %v", err)
	}
}

func TestVendorGetAndList(t *testing.T) {
	svc := setupVendors(t)

	if _, err := svc.Create("vendor_1", "Test Vendor", "devnet"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	vendor, err := svc.Get("vendor_1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if vendor.Name != "Test Vendor" {
		t.Errorf("Unexpected name: %s", vendor.Name)
	}

	if _, err := svc.Get("vendor_ghost"); !errors.Is(err, domain.ErrVendorNotFound) {
		t.Errorf("Expected ErrVendorNotFound, got %v", err)
	}

	list, err := svc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected 1 vendor, got %d", len(list))
	}
}
