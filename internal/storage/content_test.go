package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"dropgate/internal/domain"
)

func TestContentStoreSaveAndRead(t *testing.T) {
	store := NewContentStore(t.TempDir())

	key, err := store.Save("DROP_AAAA0001", "audio.mp3", []byte("fake audio"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if key != "DROP_AAAA0001/audio.mp3" {
		t.Errorf("Unexpected object key: %s", key)
	}

	data, err := store.Read(key)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "fake audio" {
		t.Errorf("Unexpected content: %s", data)
	}

	if !store.Exists(key) {
		t.Error("Expected key to exist")
	}

	// Overwriting the same key is legal
	if _, err := store.Save("DROP_AAAA0001", "audio.mp3", []byte("new audio")); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}
	data, _ = store.Read(key)
	if string(data) != "new audio" {
		t.Errorf("Expected overwritten content, got %s", data)
	}
}

func TestContentStoreOpen(t *testing.T) {
	store := NewContentStore(t.TempDir())

	key, err := store.Save("DROP_AAAA0001", "audio.mp3", []byte("stream me"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reader, size, err := store.Open(key)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reader.Close()

	if size != int64(len("stream me")) {
		t.Errorf("Expected size %d, got %d", len("stream me"), size)
	}
	data, _ := io.ReadAll(reader)
	if string(data) != "stream me" {
		t.Errorf("Unexpected content: %s", data)
	}

	_, _, err = store.Open("DROP_AAAA0001/missing.mp3")
	if !errors.Is(err, domain.ErrBlobNotFound) {
		t.Errorf("Expected ErrBlobNotFound, got %v", err)
	}
}

func TestContentStoreDeleteAll(t *testing.T) {
	base := t.TempDir()
	store := NewContentStore(base)

	key, err := store.Save("DROP_AAAA0001", "audio.mp3", []byte("x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := store.Save("DROP_AAAA0001", "cover.jpg", []byte("y")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.DeleteAll("DROP_AAAA0001"); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if store.Exists(key) {
		t.Error("Expected blobs gone after DeleteAll")
	}
	if _, err := os.Stat(filepath.Join(base, "drops", "DROP_AAAA0001")); !os.IsNotExist(err) {
		t.Error("Expected drop directory removed")
	}

	// Deleting again is a no-op
	if err := store.DeleteAll("DROP_AAAA0001"); err != nil {
		t.Errorf("Repeat DeleteAll failed: %v", err)
	}
}

func TestContentStoreRejectsTraversal(t *testing.T) {
	store := NewContentStore(t.TempDir())

	for _, key := range []string{"../escape", "..", "/etc/passwd", "a/../../b", "."} {
		if _, err := store.Read(key); err == nil || errors.Is(err, domain.ErrBlobNotFound) {
			t.Errorf("Expected invalid key error for %q, got %v", key, err)
		}
		if store.Exists(key) {
			t.Errorf("Exists(%q) should be false", key)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Track", "My Track"},
		{"a/b\\c", "abc"},
		{"name<>:\"|?*", "name"},
		{"trailing. ", "trailing"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileExt(t *testing.T) {
	tests := []struct {
		in       string
		fallback string
		want     string
	}{
		{"track.MP3", "bin", "mp3"},
		{"track.flac", "bin", "flac"},
		{"noext", "bin", "bin"},
		{"trailing.", "bin", "bin"},
		{"archive.tar.gz", "bin", "gz"},
	}
	for _, tt := range tests {
		if got := FileExt(tt.in, tt.fallback); got != tt.want {
			t.Errorf("FileExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSHA256Hex(t *testing.T) {
	// Known digest of the empty string
	if got := SHA256Hex(nil); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("Unexpected empty digest: %s", got)
	}
	if SHA256Hex([]byte("a")) == SHA256Hex([]byte("b")) {
		t.Error("Different inputs must not collide")
	}
}
