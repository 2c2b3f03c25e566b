// Package aead implements the two authenticated ciphers that are layered
// over every chunk: AES-256-GCM and XChaCha20-Poly1305. Both take a 32-byte
// key and a fresh random nonce per call; the nonce travels prepended to the
// ciphertext it authenticates.
//
// AES-GCM construction follows the teacher's aes/aes.go (crypto/aes +
// cipher.NewGCM). XChaCha20-Poly1305 follows codahale-veil-go's use of
// golang.org/x/crypto/chacha20poly1305.NewX.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/hambosto/sweetbyte-rs/internal/swerr"
)

// AES wraps an AES-256-GCM instance keyed once and reused across chunks.
type AES struct {
	gcm cipher.AEAD
}

// NewAES builds an AES instance from a 32-byte key.
func NewAES(key []byte) (*AES, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aead: failed to create aes cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aead: failed to create aes-gcm: %w", err)
	}
	return &AES{gcm: gcm}, nil
}

// Seal draws a fresh 12-byte nonce and returns nonce ‖ ciphertext‖tag.
func (a *AES) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, a.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("aead: failed to draw aes nonce: %w", err)
	}
	sealed := a.gcm.Seal(nil, nonce, plaintext, nil)
	return append(nonce, sealed...), nil
}

// Open splits the leading nonce from blob and authenticates/decrypts the
// remainder. Any failure is reported as swerr.ErrAeadAuthFailed.
func (a *AES) Open(blob []byte) ([]byte, error) {
	if len(blob) < a.gcm.NonceSize() {
		return nil, fmt.Errorf("aead: %w: aes blob shorter than nonce", swerr.ErrAeadAuthFailed)
	}
	nonce, ciphertext := blob[:a.gcm.NonceSize()], blob[a.gcm.NonceSize():]
	plaintext, err := a.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("aead: %w: aes open failed", swerr.ErrAeadAuthFailed)
	}
	return plaintext, nil
}

// XChaCha wraps an XChaCha20-Poly1305 instance keyed once and reused across
// chunks.
type XChaCha struct {
	aead cipher.AEAD
}

// NewXChaCha builds an XChaCha instance from a 32-byte key.
func NewXChaCha(key []byte) (*XChaCha, error) {
	a, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("aead: failed to create xchacha20poly1305: %w", err)
	}
	return &XChaCha{aead: a}, nil
}

// Seal draws a fresh 24-byte nonce and returns nonce ‖ ciphertext‖tag.
func (x *XChaCha) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, x.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("aead: failed to draw xchacha nonce: %w", err)
	}
	sealed := x.aead.Seal(nil, nonce, plaintext, nil)
	return append(nonce, sealed...), nil
}

// Open splits the leading nonce from blob and authenticates/decrypts the
// remainder. Any failure is reported as swerr.ErrAeadAuthFailed.
func (x *XChaCha) Open(blob []byte) ([]byte, error) {
	if len(blob) < x.aead.NonceSize() {
		return nil, fmt.Errorf("aead: %w: xchacha blob shorter than nonce", swerr.ErrAeadAuthFailed)
	}
	nonce, ciphertext := blob[:x.aead.NonceSize()], blob[x.aead.NonceSize():]
	plaintext, err := x.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("aead: %w: xchacha open failed", swerr.ErrAeadAuthFailed)
	}
	return plaintext, nil
}
