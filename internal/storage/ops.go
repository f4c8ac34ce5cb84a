package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"

	"dropgate/internal/constants"
)

// Sanitize strips characters that are invalid in filesystem names.
func Sanitize(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(constants.InvalidPathChars, r) {
			return -1
		}
		return r
	}, s)

	return strings.TrimRight(mapped, ". ")
}

func EnsureDir(path string) error {
	return os.MkdirAll(path, constants.DirPermissions)
}

func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, constants.FilePermissions)
}

// SHA256Hex returns the lowercase hex digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FileExt returns the lowercase extension of a filename without the dot,
// or fallback when the name has none.
func FileExt(filename, fallback string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return fallback
	}
	return strings.ToLower(filename[idx+1:])
}
