package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex is the cache key for extracted photos: the same image read by
// the same engine and model hits the same row.
func SHA256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
