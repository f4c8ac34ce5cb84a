package dto

import (
	"testing"

	"dropgate/internal/domain"
)

func TestNewDropResponse(t *testing.T) {
	coverKey := "DROP_AAAA0001/cover.jpg"
	d := &domain.Drop{
		DropID:         "DROP_AAAA0001",
		VendorStableID: "vendor_1",
		Title:          "Test Drop",
		MaxClaims:      5,
		ClaimedCount:   2,
		Status:         domain.DropStatusActive,
		CoverObjectKey: &coverKey,
	}

	resp := NewDropResponse(d, "http://cdn.test/content")

	if resp.RemainingClaims != 3 {
		t.Errorf("Expected 3 remaining, got %d", resp.RemainingClaims)
	}
	if resp.Status != 1 {
		t.Errorf("Expected status 1, got %d", resp.Status)
	}
	if resp.CoverURL == nil || *resp.CoverURL != "http://cdn.test/content/drops/DROP_AAAA0001/cover.jpg" {
		t.Errorf("Unexpected cover URL: %v", resp.CoverURL)
	}
	if resp.CoverThumbURL == nil || *resp.CoverThumbURL != "http://cdn.test/content/drops/DROP_AAAA0001/cover_thumb.jpg" {
		t.Errorf("Unexpected thumb URL: %v", resp.CoverThumbURL)
	}
}

func TestNewDropResponseNoCover(t *testing.T) {
	d := &domain.Drop{DropID: "DROP_AAAA0001", MaxClaims: 1}
	resp := NewDropResponse(d, "http://cdn.test/content")
	if resp.CoverURL != nil || resp.CoverThumbURL != nil {
		t.Error("Expected nil cover URLs")
	}
}

func TestThumbURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://x/a/cover.jpg", "http://x/a/cover_thumb.jpg"},
		{"http://x/a/cover", "http://x/a/cover_thumb"},
	}
	for _, tt := range tests {
		if got := thumbURL(tt.in); got != tt.want {
			t.Errorf("thumbURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
