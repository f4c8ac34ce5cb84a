package constants

import (
	"testing"
	"time"
)

func TestDefaultValues(t *testing.T) {
	// Test that default values are set correctly
	if DefaultPort != "8080" {
		t.Errorf("Expected DefaultPort to be '8080', got '%s'", DefaultPort)
	}

	if DefaultDBPath != "dropgate.db" {
		t.Errorf("Expected DefaultDBPath to be 'dropgate.db', got '%s'", DefaultDBPath)
	}

	if DefaultSweepInterval != time.Hour {
		t.Errorf("Expected DefaultSweepInterval to be 1h, got %s", DefaultSweepInterval)
	}

	if DefaultPurgeGrace != 7*24*time.Hour {
		t.Errorf("Expected DefaultPurgeGrace to be 168h, got %s", DefaultPurgeGrace)
	}

	if DefaultEnv != "devnet" {
		t.Errorf("Expected DefaultEnv to be 'devnet', got '%s'", DefaultEnv)
	}
}

func TestLegacyVocabulary(t *testing.T) {
	values := []string{
		FileTypePromo,
		FileTypeAlbums,
		CategoryTracks,
		CategoryCover,
		CategoryManifest,
		ManifestFileName,
	}

	for _, v := range values {
		if v == "" {
			t.Error("Legacy vocabulary constant should not be empty")
		}
	}
}
