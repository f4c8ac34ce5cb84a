package domain

// DropStatus is the lifecycle state of a drop. Transitions only move forward:
// SCHEDULED -> ACTIVE -> ENDED -> PURGED.
type DropStatus int

const (
	DropStatusScheduled DropStatus = 0
	DropStatusActive    DropStatus = 1
	DropStatusEnded     DropStatus = 2
	DropStatusPurged    DropStatus = 3
)

func (s DropStatus) String() string {
	switch s {
	case DropStatusScheduled:
		return "SCHEDULED"
	case DropStatusActive:
		return "ACTIVE"
	case DropStatusEnded:
		return "ENDED"
	case DropStatusPurged:
		return "PURGED"
	default:
		return "UNKNOWN"
	}
}

// Drop is a time-boxed, capacity-limited free-download offer from a vendor.
// Timestamps are epoch seconds; the claim window is [StartAt, EndAt).
type Drop struct {
	DropID         string     `db:"drop_id"`
	VendorStableID string     `db:"vendor_stable_id"`
	ArtistStableID *string    `db:"artist_stable_id"`
	ArtistName     string     `db:"artist_name"`
	Title          string     `db:"title"`
	Description    *string    `db:"description"`
	CoverObjectKey *string    `db:"cover_object_key"`
	AudioObjectKey string     `db:"audio_object_key"`
	AudioMime      string     `db:"audio_mime"`
	AudioSizeBytes int64      `db:"audio_size_bytes"`
	AudioSHA256    string     `db:"audio_sha256"`
	StartAt        int64      `db:"start_at"`
	EndAt          int64      `db:"end_at"`
	MaxClaims      int64      `db:"max_claims"`
	ClaimedCount   int64      `db:"claimed_count"`
	Status         DropStatus `db:"status"`
	Env            string     `db:"env"`
	CreatedAt      int64      `db:"created_at"`
	UpdatedAt      int64      `db:"updated_at"`
	EndedAt        *int64     `db:"ended_at"`
	PurgedAt       *int64     `db:"purged_at"`
}

// RemainingClaims returns how many claims are still available.
func (d *Drop) RemainingClaims() int64 {
	remaining := d.MaxClaims - d.ClaimedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DropClaim is a single user's reservation against a drop. The claim ID
// doubles as the download bearer token. Claims are never updated or deleted;
// they remain as an audit trail after the parent drop is purged.
type DropClaim struct {
	ClaimID      string  `db:"claim_id"`
	DropID       string  `db:"drop_id"`
	UserID       string  `db:"user_id"`
	DeviceIDHash *string `db:"device_id_hash"`
	ClaimedAt    int64   `db:"claimed_at"`
}

// Vendor is the minimal vendor surface the drop subsystem depends on.
type Vendor struct {
	StableID  string `db:"stable_id"`
	Name      string `db:"name"`
	Env       string `db:"env"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	IsAlive   int    `db:"is_alive"`
}
