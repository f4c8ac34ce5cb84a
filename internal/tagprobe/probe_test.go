package tagprobe

import (
	"bytes"
	"testing"

	"github.com/bogem/id3v2/v2"
)

func taggedMP3(t *testing.T, pictureType byte, mime string, image []byte) []byte {
	t.Helper()
	tag := id3v2.NewEmptyTag()
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mime,
		PictureType: pictureType,
		Description: "",
		Picture:     image,
	})

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		t.Fatalf("Failed to write tag: %v", err)
	}
	buf.Write([]byte("fake mpeg frames"))
	return buf.Bytes()
}

func TestExtractCoverMP3(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	data := taggedMP3(t, id3v2.PTFrontCover, "image/jpeg", image)

	cover, mime, err := ExtractCover(data, "mp3")
	if err != nil {
		t.Fatalf("ExtractCover failed: %v", err)
	}
	if !bytes.Equal(cover, image) {
		t.Error("Extracted cover does not match embedded image")
	}
	if mime != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %s", mime)
	}
}

func TestExtractCoverMP3NoPicture(t *testing.T) {
	// Untagged data carries no cover and is not an error
	cover, _, err := ExtractCover([]byte("no tags here, just noise"), "mp3")
	if err != nil {
		t.Fatalf("ExtractCover failed: %v", err)
	}
	if cover != nil {
		t.Errorf("Expected nil cover, got %d bytes", len(cover))
	}
}

func TestExtractCoverSkipsNonCoverPictures(t *testing.T) {
	// A band-logo picture is not a cover
	data := taggedMP3(t, id3v2.PTBandArtistLogotype, "image/png", []byte{0x89, 0x50})

	cover, _, err := ExtractCover(data, "mp3")
	if err != nil {
		t.Fatalf("ExtractCover failed: %v", err)
	}
	if cover != nil {
		t.Error("Expected no cover from a logo-only tag")
	}
}

func TestExtractCoverUnsupportedExt(t *testing.T) {
	cover, mime, err := ExtractCover([]byte("anything"), "wav")
	if err != nil || cover != nil || mime != "" {
		t.Errorf("Expected nil result for unsupported ext, got %v %s %v", cover, mime, err)
	}
}

func TestCoverExt(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/png", "png"},
		{"image/gif", "gif"},
		{"image/webp", "webp"},
		{"image/jpeg", "jpg"},
		{"", "jpg"},
	}
	for _, tt := range tests {
		if got := CoverExt(tt.mime); got != tt.want {
			t.Errorf("CoverExt(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}

func TestAudioMime(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"mp3", "audio/mpeg"},
		{"flac", "audio/flac"},
		{"wav", "audio/wav"},
		{"ogg", "audio/ogg"},
		{"m4a", "audio/mp4"},
		{"xyz", "audio/mpeg"},
	}
	for _, tt := range tests {
		if got := AudioMime(tt.ext); got != tt.want {
			t.Errorf("AudioMime(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}
