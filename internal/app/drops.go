package app

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"dropgate/internal/constants"
	"dropgate/internal/domain"
	"dropgate/internal/logger"
	"dropgate/internal/storage"
	"dropgate/internal/store"
	"dropgate/internal/tagprobe"
)

// DropService orchestrates the drop lifecycle: creation with blob writes,
// claims, downloads, batch admin operations and the expiry/purge sweeps.
type DropService struct {
	db      *store.DB
	content *storage.ContentStore
	logger  *logger.Logger

	// Now is the clock used for all window and transition decisions.
	// Tests override it to steer drops through their lifecycle.
	Now func() int64
}

func NewDropService(db *store.DB, content *storage.ContentStore, log *logger.Logger) *DropService {
	if log == nil {
		log = logger.Default()
	}
	return &DropService{
		db:      db,
		content: content,
		logger:  log.WithComponent("drops"),
		Now:     func() int64 { return time.Now().Unix() },
	}
}

// CreateDropInput carries the parsed multipart fields for drop creation.
type CreateDropInput struct {
	VendorStableID string
	ArtistStableID *string
	ArtistName     string
	Title          string
	Description    *string
	StartAt        *int64
	EndAt          *int64
	MaxClaims      *int64
	Env            string

	Audio         []byte
	AudioFilename string
	AudioMimeHint string
	Cover         []byte
	CoverFilename string
}

func (in *CreateDropInput) validate() error {
	switch {
	case in.VendorStableID == "":
		return domain.Required("vendor_stable_id")
	case in.ArtistName == "":
		return domain.Required("artist_name")
	case in.Title == "":
		return domain.Required("title")
	case in.EndAt == nil:
		return domain.Required("end_at")
	case in.MaxClaims == nil:
		return domain.Required("max_claims")
	case len(in.Audio) == 0:
		return domain.Required("audio file")
	case *in.MaxClaims < 1:
		return domain.Invalid("max_claims", "must be at least 1")
	}
	return nil
}

// CreateDrop persists the blobs and the drop row. The initial status is
// ACTIVE when the window already opened, SCHEDULED otherwise.
func (s *DropService) CreateDrop(in *CreateDropInput) (*domain.Drop, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.Now()
	startAt := now
	if in.StartAt != nil {
		startAt = *in.StartAt
	}
	endAt := *in.EndAt
	if endAt <= startAt {
		return nil, domain.Invalid("end_at", "must be after start_at")
	}

	alive, err := s.db.VendorAlive(in.VendorStableID)
	if err != nil {
		return nil, fmt.Errorf("failed to check vendor: %w", err)
	}
	if !alive {
		return nil, domain.ErrVendorNotFound
	}

	dropID := domain.NewDropID()

	audioExt := storage.FileExt(in.AudioFilename, "mp3")
	audioKey, err := s.content.Save(dropID, constants.AudioFilePrefix+"."+audioExt, in.Audio)
	if err != nil {
		return nil, fmt.Errorf("failed to store audio: %w", err)
	}

	// Multipart clients commonly send application/octet-stream for file
	// parts; that is no more informative than an empty hint.
	audioMime := in.AudioMimeHint
	if audioMime == "" || audioMime == "application/octet-stream" {
		audioMime = tagprobe.AudioMime(audioExt)
	}

	coverKey, err := s.storeCover(dropID, audioExt, in)
	if err != nil {
		s.cleanupBlobs(dropID)
		return nil, err
	}

	status := domain.DropStatusScheduled
	if now >= startAt {
		status = domain.DropStatusActive
	}

	env := in.Env
	if env == "" {
		env = constants.DefaultEnv
	}

	drop := &domain.Drop{
		DropID:         dropID,
		VendorStableID: in.VendorStableID,
		ArtistStableID: in.ArtistStableID,
		ArtistName:     in.ArtistName,
		Title:          in.Title,
		Description:    in.Description,
		CoverObjectKey: coverKey,
		AudioObjectKey: audioKey,
		AudioMime:      audioMime,
		AudioSizeBytes: int64(len(in.Audio)),
		AudioSHA256:    storage.SHA256Hex(in.Audio),
		StartAt:        startAt,
		EndAt:          endAt,
		MaxClaims:      *in.MaxClaims,
		ClaimedCount:   0,
		Status:         status,
		Env:            env,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.db.CreateDrop(drop); err != nil {
		s.cleanupBlobs(dropID)
		return nil, fmt.Errorf("failed to insert drop: %w", err)
	}

	s.logger.Info("Drop created",
		"drop_id", dropID,
		"vendor_stable_id", in.VendorStableID,
		"title", in.Title,
		"status", drop.Status.String(),
	)
	return drop, nil
}

// storeCover saves the uploaded cover, or falls back to cover art embedded
// in the audio's own tags. Returns nil when the drop has no cover at all.
func (s *DropService) storeCover(dropID, audioExt string, in *CreateDropInput) (*string, error) {
	coverData := in.Cover
	coverExt := storage.FileExt(in.CoverFilename, "jpg")

	if len(coverData) == 0 {
		embedded, mime, err := tagprobe.ExtractCover(in.Audio, audioExt)
		if err != nil {
			s.logger.Warn("Failed to probe audio tags for cover art", "drop_id", dropID, "error", err)
			return nil, nil
		}
		if len(embedded) == 0 {
			return nil, nil
		}
		coverData = embedded
		coverExt = tagprobe.CoverExt(mime)
	}

	key, err := s.content.Save(dropID, constants.CoverFilePrefix+"."+coverExt, coverData)
	if err != nil {
		return nil, fmt.Errorf("failed to store cover: %w", err)
	}
	return &key, nil
}

func (s *DropService) cleanupBlobs(dropID string) {
	if err := s.content.DeleteAll(dropID); err != nil {
		s.logger.Warn("Failed to clean up blobs after aborted create", "drop_id", dropID, "error", err)
	}
}

func (s *DropService) GetDrop(dropID string) (*domain.Drop, error) {
	drop, err := s.db.GetDrop(dropID)
	if err != nil {
		return nil, err
	}
	if drop == nil {
		return nil, domain.ErrDropNotFound
	}
	return drop, nil
}

// ListVendorDrops lazily expires due drops before reading, bounding status
// staleness to the interval between reads and sweeper ticks.
func (s *DropService) ListVendorDrops(vendorStableID string, status *domain.DropStatus) ([]*domain.Drop, error) {
	if _, err := s.db.ExpireDue(s.Now()); err != nil {
		s.logger.Error("Lazy expiry failed", "error", err)
	}
	return s.db.ListVendorDrops(vendorStableID, status)
}

// Claim issues a claim for one user. The claim ID is also the download token.
func (s *DropService) Claim(dropID, userID string, deviceIDHash *string) (*domain.DropClaim, *domain.Drop, error) {
	if userID == "" {
		return nil, nil, domain.Required("user_id")
	}

	now := s.Now()
	claim := &domain.DropClaim{
		ClaimID:      uuid.NewString(),
		DropID:       dropID,
		UserID:       userID,
		DeviceIDHash: deviceIDHash,
		ClaimedAt:    now,
	}

	if err := s.db.ClaimDrop(claim, now); err != nil {
		return nil, nil, err
	}

	drop, err := s.db.GetDrop(dropID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload drop after claim: %w", err)
	}
	if drop == nil {
		return nil, nil, fmt.Errorf("drop %s vanished after claim", dropID)
	}

	s.logger.Info("Drop claimed", "drop_id", dropID, "user_id", userID)
	return claim, drop, nil
}

// Download validates a token and opens the audio blob for streaming.
// Only end_at is checked, not status: claims already granted stay honorable
// on a manually ended drop until its window closes.
func (s *DropService) Download(dropID, token string) (io.ReadCloser, *domain.Drop, int64, error) {
	if token == "" {
		return nil, nil, 0, domain.ErrInvalidToken
	}

	drop, err := s.db.GetDrop(dropID)
	if err != nil {
		return nil, nil, 0, err
	}
	if drop == nil {
		return nil, nil, 0, domain.ErrDropNotFound
	}

	claim, err := s.db.GetClaimByToken(token, dropID)
	if err != nil {
		return nil, nil, 0, err
	}
	if claim == nil {
		return nil, nil, 0, domain.ErrInvalidToken
	}

	if s.Now() >= drop.EndAt {
		return nil, nil, 0, domain.ErrDropExpired
	}

	reader, size, err := s.content.Open(drop.AudioObjectKey)
	if err != nil {
		return nil, nil, 0, err
	}
	return reader, drop, size, nil
}

// BatchEnd force-ends the listed drops for one vendor. Each ID is reported
// independently; already-ended or foreign drops come back false.
func (s *DropService) BatchEnd(vendorStableID string, dropIDs []string) map[string]bool {
	now := s.Now()
	results := make(map[string]bool, len(dropIDs))
	for _, dropID := range dropIDs {
		ended, err := s.db.EndDrop(dropID, vendorStableID, now)
		if err != nil {
			s.logger.Error("Batch end failed for drop", "drop_id", dropID, "error", err)
			ended = false
		}
		results[dropID] = ended
	}
	s.logger.Info("Batch end drops", "vendor_stable_id", vendorStableID, "count", len(dropIDs))
	return results
}

// BatchPurge force-ends then immediately purges the listed drops for one
// vendor, skipping the grace period.
func (s *DropService) BatchPurge(vendorStableID string, dropIDs []string) map[string]bool {
	now := s.Now()
	results := make(map[string]bool, len(dropIDs))
	for _, dropID := range dropIDs {
		results[dropID] = s.purgeVendorDrop(dropID, vendorStableID, now)
	}
	s.logger.Info("Batch purge drops", "vendor_stable_id", vendorStableID, "count", len(dropIDs))
	return results
}

func (s *DropService) purgeVendorDrop(dropID, vendorStableID string, now int64) bool {
	if _, err := s.db.EndDrop(dropID, vendorStableID, now); err != nil {
		s.logger.Error("Batch purge: end failed", "drop_id", dropID, "error", err)
		return false
	}

	drop, err := s.db.GetVendorDrop(dropID, vendorStableID)
	if err != nil || drop == nil {
		return false
	}

	if err := s.content.DeleteAll(dropID); err != nil {
		s.logger.Error("Batch purge: blob delete failed", "drop_id", dropID, "error", err)
		return false
	}

	purged, err := s.db.MarkPurged(dropID, now)
	if err != nil {
		s.logger.Error("Batch purge: mark failed", "drop_id", dropID, "error", err)
		return false
	}
	if purged {
		s.logger.Info("Drop purged", "drop_id", dropID)
	}
	return purged
}

// ExpireDue transitions every overdue drop to ENDED. Shared by the sweeper.
func (s *DropService) ExpireDue() (int64, error) {
	return s.db.ExpireDue(s.Now())
}

// PurgeEnded deletes blobs and marks PURGED for drops whose grace period
// elapsed. Per-drop failures are logged and skipped, never aborting the sweep.
func (s *DropService) PurgeEnded(grace time.Duration) (int, error) {
	now := s.Now()
	drops, err := s.db.ListPurgeable(now - int64(grace.Seconds()))
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, drop := range drops {
		if err := s.content.DeleteAll(drop.DropID); err != nil {
			s.logger.Error("Purge sweep: blob delete failed", "drop_id", drop.DropID, "error", err)
			continue
		}
		ok, err := s.db.MarkPurged(drop.DropID, now)
		if err != nil {
			s.logger.Error("Purge sweep: mark failed", "drop_id", drop.DropID, "error", err)
			continue
		}
		if ok {
			s.logger.Info("Purged drop", "drop_id", drop.DropID)
			purged++
		}
	}
	return purged, nil
}
