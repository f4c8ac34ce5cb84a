package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"dropgate/internal/domain"
)

func claimFor(dropID, userID string, at int64) *domain.DropClaim {
	return &domain.DropClaim{
		ClaimID:   "claim_" + userID,
		DropID:    dropID,
		UserID:    userID,
		ClaimedAt: at,
	}
}

func TestClaimDrop(t *testing.T) {
	db := setupTestDB(t)
	insertVendor(t, db, "vendor_1")
	if err := db.CreateDrop(testDrop("DROP_AAAA0001", "vendor_1")); err != nil {
		t.Fatalf("CreateDrop failed: %v", err)
	}

	if err := db.ClaimDrop(claimFor("DROP_AAAA0001", "user_1", 1500), 1500); err != nil {
		t.Fatalf("ClaimDrop failed: %v", err)
	}

	drop, _ := db.GetDrop("DROP_AAAA0001")
	if drop.ClaimedCount != 1 {
		t.Errorf("Expected claimed_count 1, got %d", drop.ClaimedCount)
	}

	claim, err := db.GetClaim("DROP_AAAA0001", "user_1")
	if err != nil {
		t.Fatalf("GetClaim failed: %v", err)
	}
	if claim == nil || claim.ClaimID != "claim_user_1" {
		t.Error("Expected stored claim for user_1")
	}
}

func TestClaimDropPreconditions(t *testing.T) {
	db := setupTestDB(t)
	insertVendor(t, db, "vendor_1")
	if err := db.CreateDrop(testDrop("DROP_AAAA0001", "vendor_1")); err != nil {
		t.Fatalf("CreateDrop failed: %v", err)
	}

	tests := []struct {
		name string
		now  int64
		want error
	}{
		{"before window", 500, domain.ErrDropNotStarted},
		{"at end", 2000, domain.ErrDropExpired},
		{"after end", 3000, domain.ErrDropExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.ClaimDrop(claimFor("DROP_AAAA0001", "user_x", tt.now), tt.now)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if err := db.ClaimDrop(claimFor("DROP_MISSING1", "user_x", 1500), 1500); !errors.Is(err, domain.ErrDropNotFound) {
		t.Errorf("Expected ErrDropNotFound, got %v", err)
	}

	// Failed attempts must not leave claim rows behind
	count, err := db.CountClaims("DROP_AAAA0001")
	if err != nil {
		t.Fatalf("CountClaims failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 claims after failed attempts, got %d", count)
	}
}

func TestClaimDropEnded(t *testing.T) {
	db := setupTestDB(t)
	insertVendor(t, db, "vendor_1")
	if err := db.CreateDrop(testDrop("DROP_AAAA0001", "vendor_1")); err != nil {
		t.Fatalf("CreateDrop failed: %v", err)
	}
	if _, err := db.EndDrop("DROP_AAAA0001", "vendor_1", 1200); err != nil {
		t.Fatalf("EndDrop failed: %v", err)
	}

	// Manually ended drops reject claims even inside the window
	err := db.ClaimDrop(claimFor("DROP_AAAA0001", "user_1", 1500), 1500)
	if !errors.Is(err, domain.ErrDropEnded) {
		t.Errorf("Expected ErrDropEnded, got %v", err)
	}
}

func TestClaimDropDuplicate(t *testing.T) {
	db := setupTestDB(t)
	insertVendor(t, db, "vendor_1")
	if err := db.CreateDrop(testDrop("DROP_AAAA0001", "vendor_1")); err != nil {
		t.Fatalf("CreateDrop failed: %v", err)
	}

	if err := db.ClaimDrop(claimFor("DROP_AAAA0001", "user_1", 1500), 1500); err != nil {
		t.Fatalf("First claim failed: %v", err)
	}

	err := db.ClaimDrop(&domain.DropClaim{
		ClaimID:   "claim_other",
		DropID:    "DROP_AAAA0001",
		UserID:    "user_1",
		ClaimedAt: 1600,
	}, 1600)
	if !errors.Is(err, domain.ErrAlreadyClaimed) {
		t.Errorf("Expected ErrAlreadyClaimed, got %v", err)
	}

	drop, _ := db.GetDrop("DROP_AAAA0001")
	if drop.ClaimedCount != 1 {
		t.Errorf("Duplicate claim changed claimed_count: %d", drop.ClaimedCount)
	}
}

func TestClaimDropSoldOut(t *testing.T) {
	db := setupTestDB(t)
	insertVendor(t, db, "vendor_1")

	drop := testDrop("DROP_AAAA0001", "vendor_1")
	drop.MaxClaims = 2
	if err := db.CreateDrop(drop); err != nil {
		t.Fatalf("CreateDrop failed: %v", err)
	}

	if err := db.ClaimDrop(claimFor("DROP_AAAA0001", "user_1", 1500), 1500); err != nil {
		t.Fatalf("Claim 1 failed: %v", err)
	}
	if err := db.ClaimDrop(claimFor("DROP_AAAA0001", "user_2", 1500), 1500); err != nil {
		t.Fatalf("Claim 2 failed: %v", err)
	}

	err := db.ClaimDrop(claimFor("DROP_AAAA0001", "user_3", 1500), 1500)
	if !errors.Is(err, domain.ErrSoldOut) {
		t.Errorf("Expected ErrSoldOut, got %v", err)
	}

	// A prior claimer of the sold-out drop still hears "already claimed"
	err = db.ClaimDrop(&domain.DropClaim{
		ClaimID:   "claim_retry",
		DropID:    "DROP_AAAA0001",
		UserID:    "user_1",
		ClaimedAt: 1600,
	}, 1600)
	if !errors.Is(err, domain.ErrAlreadyClaimed) {
		t.Errorf("Expected ErrAlreadyClaimed for repeat claimer, got %v", err)
	}

	fetched, _ := db.GetDrop("DROP_AAAA0001")
	if fetched.ClaimedCount != 2 {
		t.Errorf("Expected claimed_count 2, got %d", fetched.ClaimedCount)
	}
}

func TestClaimDropConcurrent(t *testing.T) {
	db := setupTestDB(t)
	insertVendor(t, db, "vendor_1")

	drop := testDrop("DROP_AAAA0001", "vendor_1")
	drop.MaxClaims = 5
	if err := db.CreateDrop(drop); err != nil {
		t.Fatalf("CreateDrop failed: %v", err)
	}

	const claimers = 20
	var wg sync.WaitGroup
	errs := make([]error, claimers)

	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("user_%02d", i)
			errs[i] = db.ClaimDrop(claimFor("DROP_AAAA0001", user, 1500), 1500)
		}(i)
	}
	wg.Wait()

	won := 0
	for i, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrSoldOut):
		default:
			t.Errorf("claimer %d: unexpected error %v", i, err)
		}
	}
	if won != 5 {
		t.Errorf("Expected exactly 5 winners, got %d", won)
	}

	fetched, _ := db.GetDrop("DROP_AAAA0001")
	if fetched.ClaimedCount != 5 {
		t.Errorf("Expected claimed_count 5, got %d", fetched.ClaimedCount)
	}
	count, _ := db.CountClaims("DROP_AAAA0001")
	if count != 5 {
		t.Errorf("Expected 5 claim rows, got %d", count)
	}
}

func TestGetClaimByToken(t *testing.T) {
	db := setupTestDB(t)
	insertVendor(t, db, "vendor_1")
	if err := db.CreateDrop(testDrop("DROP_AAAA0001", "vendor_1")); err != nil {
		t.Fatalf("CreateDrop failed: %v", err)
	}
	if err := db.ClaimDrop(claimFor("DROP_AAAA0001", "user_1", 1500), 1500); err != nil {
		t.Fatalf("ClaimDrop failed: %v", err)
	}

	claim, err := db.GetClaimByToken("claim_user_1", "DROP_AAAA0001")
	if err != nil {
		t.Fatalf("GetClaimByToken failed: %v", err)
	}
	if claim == nil || claim.UserID != "user_1" {
		t.Error("Expected claim for user_1")
	}

	// Token bound to another drop does not resolve
	claim, err = db.GetClaimByToken("claim_user_1", "DROP_OTHER001")
	if err != nil {
		t.Fatalf("GetClaimByToken failed: %v", err)
	}
	if claim != nil {
		t.Error("Token must not resolve for a different drop")
	}

	claim, err = db.GetClaimByToken("bogus", "DROP_AAAA0001")
	if err != nil {
		t.Fatalf("GetClaimByToken failed: %v", err)
	}
	if claim != nil {
		t.Error("Unknown token must not resolve")
	}
}
