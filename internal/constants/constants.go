// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort          = "8080"
	DefaultDBPath        = "dropgate.db"
	DefaultContentDir    = "/data/dropgate"
	DefaultPublicBaseURL = "http://127.0.0.1:8080"
	DefaultSweepInterval = time.Hour
	DefaultPurgeGrace    = 7 * 24 * time.Hour
	DefaultMaxUploadSize = 800 << 20 // 800MB, matches the legacy body limit
	DefaultEnv           = "devnet"
)

// MIME types
const (
	MimeTypeMP3  = "audio/mpeg"
	MimeTypeFLAC = "audio/flac"
	MimeTypeWAV  = "audio/wav"
	MimeTypeOGG  = "audio/ogg"
	MimeTypeAAC  = "audio/aac"
	MimeTypeMP4  = "audio/mp4"
	MimeTypeJPEG = "image/jpeg"
)

// File extensions
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtJPG  = ".jpg"
)

// File names inside a drop directory
const (
	AudioFilePrefix = "audio"
	CoverFilePrefix = "cover"
	DropsDir        = "drops"
)

// File permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Legacy upload vocabulary
const (
	FileTypePromo    = "promo"
	FileTypeAlbums   = "albums"
	CategoryTracks   = "tracks"
	CategoryCover    = "cover"
	CategoryManifest = "manifest"
	ManifestFileName = "manifest.json"
	DefaultUploadExt = "bin"
)

// Characters to sanitize from filesystem paths
const InvalidPathChars = "<>:\"/\\|?*"
