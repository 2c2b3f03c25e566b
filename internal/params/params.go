// Package params collects the tunable constants of the container format and
// streaming engine into one validated struct, following the teacher's
// EncoderOptions pattern in stitch.go.
package params

import "fmt"

const (
	// MagicValue is the four-byte container identifier, big-endian.
	MagicValue uint32 = 0xDEADBEEF
	// FormatVersion is the container version gated on before any KDF work.
	FormatVersion uint16 = 0x0002

	// DataShards is the number of Reed-Solomon data shards per section or chunk.
	DataShards = 4
	// ParityShards is the number of Reed-Solomon parity shards per section or chunk.
	ParityShards = 10
	// TotalShards is DataShards + ParityShards.
	TotalShards = DataShards + ParityShards

	// PaddingBlockSize is the PKCS#7 block size used between compression and
	// the first AEAD layer.
	PaddingBlockSize = 128

	// ChunkSize is the fixed plaintext chunk size read by the encryption-side
	// reader. The last chunk of a file may be shorter.
	ChunkSize = 256 * 1024

	// DecompressionCapMultiple bounds decompressed chunk output to at most
	// this many times the plaintext chunk size, guarding against
	// decompression bombs.
	DecompressionCapMultiple = 16

	// SaltSize is the size, in bytes, of the per-file Argon2id salt.
	SaltSize = 32

	// MinPasswordLen is the minimum accepted password length.
	MinPasswordLen = 8

	// AlgorithmAES256GCM and AlgorithmXChaCha20Poly1305 are bitmask tags for
	// the parameter block's algorithm byte. Both bits are always set; the
	// two ciphers are always layered, never selected independently.
	AlgorithmAES256GCM         uint8 = 1 << 0
	AlgorithmXChaCha20Poly1305 uint8 = 1 << 1

	// CompressionZstd tags the parameter block's compression byte.
	CompressionZstd uint8 = 1

	// EncodingReedSolomon tags the parameter block's encoding byte.
	EncodingReedSolomon uint8 = 1

	// KDFArgon2id tags the parameter block's kdf byte.
	KDFArgon2id uint8 = 1
)

// KDF holds the Argon2id cost parameters stored in the header's parameter
// block.
type KDF struct {
	MemoryKiB   uint32
	Time        uint8
	Parallelism uint8
}

// DefaultKDF returns the production Argon2id cost parameters: 64 MiB memory,
// time cost 3, 4 lanes.
func DefaultKDF() KDF {
	return KDF{MemoryKiB: 64 * 1024, Time: 3, Parallelism: 4}
}

// Params bundles every tunable the orchestrator needs. Tests construct a
// cheaper KDF via Params.WithFastKDF to keep Argon2id from dominating
// runtime.
type Params struct {
	KDF                      KDF
	ChunkSize                int
	DataShards               int
	ParityShards             int
	PaddingBlockSize         int
	DecompressionCapMultiple int
}

// Default returns the production parameter set described by the container
// format.
func Default() Params {
	return Params{
		KDF:                      DefaultKDF(),
		ChunkSize:                ChunkSize,
		DataShards:               DataShards,
		ParityShards:             ParityShards,
		PaddingBlockSize:         PaddingBlockSize,
		DecompressionCapMultiple: DecompressionCapMultiple,
	}
}

// WithFastKDF returns a copy of p with cheap Argon2id costs, for use in
// tests that exercise the round-trip law many times.
func (p Params) WithFastKDF() Params {
	p.KDF = KDF{MemoryKiB: 8 * 1024, Time: 1, Parallelism: 1}
	return p
}

// Validate rejects parameter combinations the format does not support. The
// container format fixes data/parity shard counts and padding block size;
// Validate exists mainly to catch test misconfiguration.
func (p Params) Validate() error {
	if p.DataShards != DataShards || p.ParityShards != ParityShards {
		return fmt.Errorf("unsupported shard layout %d+%d, must be %d+%d",
			p.DataShards, p.ParityShards, DataShards, ParityShards)
	}
	if p.PaddingBlockSize <= 0 || p.PaddingBlockSize > 255 {
		return fmt.Errorf("padding block size %d out of range (1..255)", p.PaddingBlockSize)
	}
	if p.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", p.ChunkSize)
	}
	if p.KDF.MemoryKiB == 0 || p.KDF.Time == 0 || p.KDF.Parallelism == 0 {
		return fmt.Errorf("kdf parameters must be nonzero: %+v", p.KDF)
	}
	return nil
}
