package dto

type ClaimRequest struct {
	UserID       string  `json:"user_id"`
	DeviceIDHash *string `json:"device_id_hash"`
}

type ClaimResponse struct {
	Success        bool   `json:"success"`
	ClaimID        string `json:"claim_id"`
	DropID         string `json:"drop_id"`
	DownloadURL    string `json:"download_url"`
	ExpiresAt      int64  `json:"expires_at"`
	AudioSHA256    string `json:"audio_sha256"`
	AudioSizeBytes int64  `json:"audio_size_bytes"`
}

type BatchDropRequest struct {
	DropIDs []string `json:"drop_ids"`
}

type BatchDropResponse struct {
	Success bool            `json:"success"`
	Results map[string]bool `json:"results"`
}
