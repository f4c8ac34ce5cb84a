package store

import (
	"database/sql"

	"dropgate/internal/domain"
)

func (db *DB) CreateVendor(vendor *domain.Vendor) error {
	query := `INSERT INTO vendors (stable_id, name, env, created_at, updated_at, is_alive)
		VALUES (:stable_id, :name, :env, :created_at, :updated_at, :is_alive)`

	_, err := db.NamedExec(query, vendor)
	return err
}

func (db *DB) GetVendor(stableID string) (*domain.Vendor, error) {
	vendor := &domain.Vendor{}
	err := db.Get(vendor, `SELECT * FROM vendors WHERE stable_id = ?`, stableID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (db *DB) ListVendors() ([]*domain.Vendor, error) {
	var vendors []*domain.Vendor
	err := db.Select(&vendors, `SELECT * FROM vendors WHERE is_alive = 1 ORDER BY created_at DESC`)
	return vendors, err
}

// VendorAlive is the existence check drop creation depends on.
func (db *DB) VendorAlive(stableID string) (bool, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM vendors WHERE stable_id = ? AND is_alive = 1`, stableID)
	return count > 0, err
}
