package dto

import (
	"strings"

	"dropgate/internal/domain"
)

// DropResponse is the public drop payload for list/detail/create responses.
type DropResponse struct {
	DropID          string  `json:"drop_id"`
	VendorStableID  string  `json:"vendor_stable_id"`
	ArtistStableID  *string `json:"artist_stable_id"`
	ArtistName      string  `json:"artist_name"`
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	CoverURL        *string `json:"cover_url"`
	CoverThumbURL   *string `json:"cover_thumb_url"`
	AudioMime       string  `json:"audio_mime"`
	AudioSizeBytes  int64   `json:"audio_size_bytes"`
	AudioSHA256     string  `json:"audio_sha256"`
	StartAt         int64   `json:"start_at"`
	EndAt           int64   `json:"end_at"`
	MaxClaims       int64   `json:"max_claims"`
	ClaimedCount    int64   `json:"claimed_count"`
	RemainingClaims int64   `json:"remaining_claims"`
	Status          int     `json:"status"`
	CreatedAt       int64   `json:"created_at"`
	UpdatedAt       int64   `json:"updated_at"`
	EndedAt         *int64  `json:"ended_at"`
}

func NewDropResponse(d *domain.Drop, assetBaseURL string) DropResponse {
	resp := DropResponse{
		DropID:          d.DropID,
		VendorStableID:  d.VendorStableID,
		ArtistStableID:  d.ArtistStableID,
		ArtistName:      d.ArtistName,
		Title:           d.Title,
		Description:     d.Description,
		AudioMime:       d.AudioMime,
		AudioSizeBytes:  d.AudioSizeBytes,
		AudioSHA256:     d.AudioSHA256,
		StartAt:         d.StartAt,
		EndAt:           d.EndAt,
		MaxClaims:       d.MaxClaims,
		ClaimedCount:    d.ClaimedCount,
		RemainingClaims: d.RemainingClaims(),
		Status:          int(d.Status),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		EndedAt:         d.EndedAt,
	}

	if d.CoverObjectKey != nil {
		coverURL := joinURL(assetBaseURL, "drops", *d.CoverObjectKey)
		thumbURL := thumbURL(coverURL)
		resp.CoverURL = &coverURL
		resp.CoverThumbURL = &thumbURL
	}
	return resp
}

func NewDropResponses(drops []*domain.Drop, assetBaseURL string) []DropResponse {
	responses := make([]DropResponse, 0, len(drops))
	for _, d := range drops {
		responses = append(responses, NewDropResponse(d, assetBaseURL))
	}
	return responses
}

// thumbURL inserts _thumb before the extension. This is a naming convention
// shared with the static file host; no thumbnail is generated here.
func thumbURL(coverURL string) string {
	idx := strings.LastIndex(coverURL, ".")
	if idx < 0 || idx < strings.LastIndex(coverURL, "/") {
		return coverURL + "_thumb"
	}
	return coverURL[:idx] + "_thumb" + coverURL[idx:]
}

func joinURL(base string, parts ...string) string {
	joined := strings.TrimRight(base, "/")
	for _, p := range parts {
		joined += "/" + strings.Trim(p, "/")
	}
	return joined
}

type DropListResponse struct {
	Success bool           `json:"success"`
	Drops   []DropResponse `json:"drops"`
	Total   int            `json:"total"`
}

type DropDetailResponse struct {
	Success bool         `json:"success"`
	Drop    DropResponse `json:"drop"`
}

type DropCreateResponse struct {
	Success bool         `json:"success"`
	Drop    DropResponse `json:"drop"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
