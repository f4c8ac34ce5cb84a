package store

import (
	"database/sql"
	"fmt"

	"dropgate/internal/domain"
)

// ClaimDrop validates and records a claim as one transaction. The duplicate
// check is backed by the UNIQUE(drop_id, user_id) index and the capacity
// check by the conditional claimed_count increment, so two concurrent claims
// can never double-book a user or push claimed_count past max_claims.
func (db *DB) ClaimDrop(claim *domain.DropClaim, now int64) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin claim tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	drop := &domain.Drop{}
	err = tx.Get(drop, `SELECT * FROM drops WHERE drop_id = ?`, claim.DropID)
	if err == sql.ErrNoRows {
		return domain.ErrDropNotFound
	}
	if err != nil {
		return err
	}

	switch {
	case drop.Status == domain.DropStatusEnded || drop.Status == domain.DropStatusPurged:
		return domain.ErrDropEnded
	case now < drop.StartAt:
		return domain.ErrDropNotStarted
	case now >= drop.EndAt:
		return domain.ErrDropExpired
	}

	// Duplicate before capacity: a repeat claimer of a sold-out drop should
	// hear "already claimed", not "no more claims".
	var existing int
	if err := tx.Get(&existing,
		`SELECT COUNT(*) FROM drop_claims WHERE drop_id = ? AND user_id = ?`,
		claim.DropID, claim.UserID); err != nil {
		return err
	}
	if existing > 0 {
		return domain.ErrAlreadyClaimed
	}

	if drop.ClaimedCount >= drop.MaxClaims {
		return domain.ErrSoldOut
	}

	_, err = tx.Exec(
		`INSERT INTO drop_claims (claim_id, drop_id, user_id, device_id_hash, claimed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		claim.ClaimID, claim.DropID, claim.UserID, claim.DeviceIDHash, claim.ClaimedAt)
	if IsUniqueViolation(err) {
		return domain.ErrAlreadyClaimed
	}
	if err != nil {
		return err
	}

	res, err := tx.Exec(
		`UPDATE drops SET claimed_count = claimed_count + 1, updated_at = ?
		 WHERE drop_id = ? AND claimed_count < max_claims`,
		now, claim.DropID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Lost the race for the last slot; the rollback drops the claim row.
		return domain.ErrSoldOut
	}

	return tx.Commit()
}

func (db *DB) GetClaim(dropID, userID string) (*domain.DropClaim, error) {
	claim := &domain.DropClaim{}
	err := db.Get(claim,
		`SELECT * FROM drop_claims WHERE drop_id = ? AND user_id = ?`, dropID, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return claim, nil
}

// GetClaimByToken resolves a download token: the claim ID is the token and
// must belong to the requested drop.
func (db *DB) GetClaimByToken(claimID, dropID string) (*domain.DropClaim, error) {
	claim := &domain.DropClaim{}
	err := db.Get(claim,
		`SELECT * FROM drop_claims WHERE claim_id = ? AND drop_id = ?`, claimID, dropID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return claim, nil
}

func (db *DB) CountClaims(dropID string) (int64, error) {
	var count int64
	err := db.Get(&count, `SELECT COUNT(*) FROM drop_claims WHERE drop_id = ?`, dropID)
	return count, err
}
