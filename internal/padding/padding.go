// Package padding implements PKCS#7 padding over a fixed block size,
// grounded on original_source's padding.rs with a constant-time unpad check
// per the container format's invariant that padding validation must not
// leak timing information.
package padding

import (
	"crypto/subtle"
	"fmt"

	"github.com/hambosto/sweetbyte-rs/internal/swerr"
)

// Pad appends k copies of byte k to data, where k = blockSize - (len(data)
// mod blockSize), k in [1, blockSize]. Data already aligned to blockSize
// still gains one full extra block, which keeps Unpad's inverse total and
// lets the round-trip law hold on an empty input.
func Pad(data []byte, blockSize int) []byte {
	k := blockSize - (len(data) % blockSize)
	out := make([]byte, len(data)+k)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(k)
	}
	return out
}

// Unpad validates and strips PKCS#7 padding added by Pad. The trailing-byte
// comparison runs in constant time so that the position of the first
// mismatching pad byte cannot be inferred from timing.
func Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("padding: %w: length %d not a multiple of block size %d", swerr.ErrPaddingInvalid, len(data), blockSize)
	}
	k := int(data[len(data)-1])
	if k < 1 || k > blockSize || k > len(data) {
		return nil, fmt.Errorf("padding: %w: invalid pad length %d", swerr.ErrPaddingInvalid, k)
	}

	want := make([]byte, k)
	for i := range want {
		want[i] = byte(k)
	}
	got := data[len(data)-k:]

	if subtle.ConstantTimeCompare(want, got) != 1 {
		return nil, fmt.Errorf("padding: %w: trailing bytes do not match pad value", swerr.ErrPaddingInvalid)
	}
	if k == len(data) {
		return nil, nil
	}
	return data[:len(data)-k], nil
}
