package domain

import (
	"crypto/rand"
	"encoding/base32"
)

// Crockford alphabet, no padding: 5 random bytes encode to exactly 8 chars.
var dropIDEncoding = base32.NewEncoding("0123456789ABCDEFGHJKMNPQRSTVWXYZ").WithPadding(base32.NoPadding)

// NewDropID generates a human-legible stable identifier like DROP_3F9KQ8ZC.
func NewDropID() string {
	var buf [5]byte
	_, _ = rand.Read(buf[:])
	return "DROP_" + dropIDEncoding.EncodeToString(buf[:])
}
