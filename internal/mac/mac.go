// Package mac computes and verifies the header's HMAC-SHA-256 binding,
// grounded on original_source's header/mac.rs.
package mac

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"github.com/hambosto/sweetbyte-rs/internal/swerr"
)

// Size is the length in bytes of a computed tag.
const Size = sha256.Size

// Compute returns HMAC-SHA-256(key, parts[0] || parts[1] || ...).
func Compute(key []byte, parts ...[]byte) []byte {
	h := hmac.New(sha256.New, key)
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		h.Write(p)
	}
	return h.Sum(nil)
}

// Verify recomputes the tag over parts and compares it to expected in
// constant time via hmac.Equal. A length or content mismatch both report
// swerr.ErrMacMismatch, never distinguishing the two.
func Verify(key []byte, expected []byte, parts ...[]byte) error {
	if len(expected) != Size {
		return fmt.Errorf("mac: %w: expected tag length %d, want %d", swerr.ErrMacMismatch, len(expected), Size)
	}
	got := Compute(key, parts...)
	if !hmac.Equal(got, expected) {
		return swerr.ErrMacMismatch
	}
	return nil
}
