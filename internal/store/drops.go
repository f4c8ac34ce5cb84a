package store

import (
	"database/sql"

	"dropgate/internal/domain"
)

func (db *DB) CreateDrop(drop *domain.Drop) error {
	query := `INSERT INTO drops (
		drop_id, vendor_stable_id, artist_stable_id, artist_name,
		title, description, cover_object_key, audio_object_key,
		audio_mime, audio_size_bytes, audio_sha256,
		start_at, end_at, max_claims, claimed_count,
		status, env, created_at, updated_at
	) VALUES (
		:drop_id, :vendor_stable_id, :artist_stable_id, :artist_name,
		:title, :description, :cover_object_key, :audio_object_key,
		:audio_mime, :audio_size_bytes, :audio_sha256,
		:start_at, :end_at, :max_claims, :claimed_count,
		:status, :env, :created_at, :updated_at
	)`

	_, err := db.NamedExec(query, drop)
	return err
}

func (db *DB) GetDrop(dropID string) (*domain.Drop, error) {
	drop := &domain.Drop{}
	err := db.Get(drop, `SELECT * FROM drops WHERE drop_id = ?`, dropID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return drop, nil
}

func (db *DB) GetVendorDrop(dropID, vendorStableID string) (*domain.Drop, error) {
	drop := &domain.Drop{}
	err := db.Get(drop, `SELECT * FROM drops WHERE drop_id = ? AND vendor_stable_id = ?`, dropID, vendorStableID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return drop, nil
}

// ListVendorDrops returns a vendor's drops, newest first. With a status
// filter it matches exactly; without one it returns everything except PURGED.
func (db *DB) ListVendorDrops(vendorStableID string, status *domain.DropStatus) ([]*domain.Drop, error) {
	var drops []*domain.Drop
	var err error
	if status != nil {
		err = db.Select(&drops,
			`SELECT * FROM drops WHERE vendor_stable_id = ? AND status = ? ORDER BY created_at DESC`,
			vendorStableID, *status)
	} else {
		err = db.Select(&drops,
			`SELECT * FROM drops WHERE vendor_stable_id = ? AND status != ? ORDER BY created_at DESC`,
			vendorStableID, domain.DropStatusPurged)
	}
	return drops, err
}

// ExpireDue transitions every drop whose window has closed to ENDED. It is
// idempotent and shared by the request-time lazy expiry and the sweeper.
func (db *DB) ExpireDue(now int64) (int64, error) {
	res, err := db.Exec(
		`UPDATE drops SET status = ?, ended_at = ?, updated_at = ?
		 WHERE end_at <= ? AND status IN (?, ?)`,
		domain.DropStatusEnded, now, now, now,
		domain.DropStatusScheduled, domain.DropStatusActive)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// EndDrop force-ends a single drop for a vendor. Returns false when the drop
// does not exist, belongs to another vendor, or already left the live states.
func (db *DB) EndDrop(dropID, vendorStableID string, now int64) (bool, error) {
	res, err := db.Exec(
		`UPDATE drops SET status = ?, ended_at = COALESCE(ended_at, ?), updated_at = ?
		 WHERE drop_id = ? AND vendor_stable_id = ? AND status IN (?, ?)`,
		domain.DropStatusEnded, now, now, dropID, vendorStableID,
		domain.DropStatusScheduled, domain.DropStatusActive)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// MarkPurged stamps a drop PURGED. The blob delete happens before this call;
// the status guard keeps the transition monotonic.
func (db *DB) MarkPurged(dropID string, now int64) (bool, error) {
	res, err := db.Exec(
		`UPDATE drops SET status = ?, purged_at = ?, updated_at = ?
		 WHERE drop_id = ? AND status != ?`,
		domain.DropStatusPurged, now, now, dropID, domain.DropStatusPurged)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListPurgeable returns ENDED drops whose grace period ran out by cutoff.
func (db *DB) ListPurgeable(cutoff int64) ([]*domain.Drop, error) {
	var drops []*domain.Drop
	err := db.Select(&drops,
		`SELECT * FROM drops WHERE status = ? AND ended_at IS NOT NULL AND ended_at <= ?`,
		domain.DropStatusEnded, cutoff)
	return drops, err
}
