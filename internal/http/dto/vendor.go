package dto

import "dropgate/internal/domain"

type CreateVendorRequest struct {
	StableID string `json:"stable_id"`
	Name     string `json:"name"`
	Env      string `json:"env"`
}

type VendorResponse struct {
	StableID  string `json:"stable_id"`
	Name      string `json:"name"`
	Env       string `json:"env"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
	IsAlive   bool   `json:"is_alive"`
}

func NewVendorResponse(v *domain.Vendor) VendorResponse {
	return VendorResponse{
		StableID:  v.StableID,
		Name:      v.Name,
		Env:       v.Env,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
		IsAlive:   v.IsAlive == 1,
	}
}

type VendorDetailResponse struct {
	Success bool           `json:"success"`
	Vendor  VendorResponse `json:"vendor"`
}

type VendorListResponse struct {
	Success bool             `json:"success"`
	Vendors []VendorResponse `json:"vendors"`
	Total   int              `json:"total"`
}
