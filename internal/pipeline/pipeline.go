// Package pipeline composes the per-chunk transform: compress, pad, seal
// with AES-256-GCM, seal with XChaCha20-Poly1305, and Reed-Solomon encode
// (and its exact inverse). Each chunk is processed independently; the
// Pipeline holds only keyed, immutable state and is safe to share across
// worker goroutines.
//
// Grounded on original_source's worker/pipeline.rs encrypt_pipeline /
// decrypt_pipeline dispatch, translated from Rust's anyhow::Context error
// wrapping to this repo's swerr sentinel wrapping.
package pipeline

import (
	"encoding/binary"
	"fmt"

	"github.com/hambosto/sweetbyte-rs/internal/aead"
	"github.com/hambosto/sweetbyte-rs/internal/kdf"
	"github.com/hambosto/sweetbyte-rs/internal/padding"
	"github.com/hambosto/sweetbyte-rs/internal/params"
	"github.com/hambosto/sweetbyte-rs/internal/rscodec"
	"github.com/hambosto/sweetbyte-rs/internal/zstdcomp"
)

// Pipeline is the composed chunk transform and its inverse, keyed once per
// operation from the derived subkeys and reused across every chunk.
type Pipeline struct {
	aes              *aead.AES
	xchacha          *aead.XChaCha
	rs               *rscodec.Codec
	paddingBlockSize int
	decompressCap    int
}

// New builds a Pipeline from the AES and XChaCha subkeys produced by
// internal/kdf, and the configured padding block size / decompression cap.
func New(keys *kdf.Keys, p params.Params) (*Pipeline, error) {
	a, err := aead.NewAES(keys.AESKey)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	x, err := aead.NewXChaCha(keys.XKey)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	rs, err := rscodec.New()
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return &Pipeline{
		aes:              a,
		xchacha:          x,
		rs:               rs,
		paddingBlockSize: p.PaddingBlockSize,
		decompressCap:    p.ChunkSize * p.DecompressionCapMultiple,
	}, nil
}

// EncryptChunk runs one plaintext chunk through
// compress -> pad -> seal(AES) -> seal(XChaCha) -> rs_encode.
func (pl *Pipeline) EncryptChunk(plaintext []byte) ([]byte, error) {
	compressed, err := zstdcomp.Compress(plaintext)
	if err != nil {
		return nil, fmt.Errorf("pipeline: compress failed: %w", err)
	}

	padded := padding.Pad(compressed, pl.paddingBlockSize)

	layerAES, err := pl.aes.Seal(padded)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	layerXChaCha, err := pl.xchacha.Seal(layerAES)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	encoded, err := pl.rs.Encode(layerXChaCha)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	out := make([]byte, 4+len(encoded))
	binary.BigEndian.PutUint32(out, uint32(len(encoded)))
	copy(out[4:], encoded)
	return out, nil
}

// DecryptChunk runs one encoded chunk (the bytes after its own length
// prefix has already been stripped by the streaming engine) through the
// exact inverse: rs_decode -> open(XChaCha) -> open(AES) -> unpad ->
// decompress.
func (pl *Pipeline) DecryptChunk(encoded []byte) ([]byte, error) {
	decoded, err := pl.rs.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	layerAES, err := pl.xchacha.Open(decoded)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	padded, err := pl.aes.Open(layerAES)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	compressed, err := padding.Unpad(padded, pl.paddingBlockSize)
	if err != nil {
		return nil, err
	}

	plaintext, err := zstdcomp.Decompress(compressed, pl.decompressCap)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}
