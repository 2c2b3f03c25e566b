// Package kdf derives the 64-byte keying blob from a password and salt via
// Argon2id, and splits it per the pinned scheme: AES key = blob[0:32],
// XChaCha key = blob[32:64], HMAC key = the full 64-byte blob.
//
// This is split scheme (b) from the design notes, resolved against
// original_source's cipher/mod.rs (AES/XChaCha split) and header/serializer.rs
// (HMAC keyed with the whole derived blob, not a slice of it).
package kdf

import (
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/hambosto/sweetbyte-rs/internal/params"
	"github.com/hambosto/sweetbyte-rs/internal/secret"
)

// OutputSize is the length in bytes of the Argon2id output.
const OutputSize = 64

// Keys holds the subkeys sliced out of one Argon2id derivation. All three
// fields alias slices of the same backing Material; closing Blob is enough
// to zero all of them.
type Keys struct {
	Blob    *secret.Material
	AESKey  []byte
	XKey    []byte
	HMACKey []byte
}

// Close zeroes the underlying derived-key material.
func (k *Keys) Close() {
	if k == nil {
		return
	}
	k.Blob.Close()
}

// Derive runs Argon2id over password and salt with the given cost
// parameters and slices the result into AES/XChaCha/HMAC subkeys.
func Derive(password []byte, salt []byte, kp params.KDF) (*Keys, error) {
	if len(salt) != params.SaltSize {
		return nil, fmt.Errorf("kdf: salt must be %d bytes, got %d", params.SaltSize, len(salt))
	}
	raw := argon2.IDKey(password, salt, uint32(kp.Time), kp.MemoryKiB, kp.Parallelism, OutputSize)
	blob := secret.New(raw)
	b := blob.Bytes()
	return &Keys{
		Blob:    blob,
		AESKey:  b[0:32],
		XKey:    b[32:64],
		HMACKey: b[0:64],
	}, nil
}
