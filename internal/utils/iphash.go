package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashIP hashes a raw client address for the view-event dedup log so that
// no plain IPs are persisted. Returns the first 64 hex characters.
func HashIP(raw string) string {
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])[:64]
}
