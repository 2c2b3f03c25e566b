package header

import (
	"encoding/binary"
	"fmt"

	"github.com/hambosto/sweetbyte-rs/internal/params"
	"github.com/hambosto/sweetbyte-rs/internal/swerr"
)

// ParameterBlockSize is the fixed, packed size of the serialized Parameters
// struct: 2 (version) + 1 (algorithm) + 1 (compression) + 1 (encoding) +
// 1 (kdf) + 4 (kdf memory KiB) + 1 (kdf time) + 1 (kdf parallelism).
const ParameterBlockSize = 12

// Parameters mirrors the in-memory header fields that describe how the rest
// of the container is encoded, distinct from the per-file salt and
// metadata.
type Parameters struct {
	Version        uint16
	Algorithm      uint8
	Compression    uint8
	Encoding       uint8
	KDF            uint8
	KDFMemoryKiB   uint32
	KDFTime        uint8
	KDFParallelism uint8
}

// DefaultParameters returns the Parameters this version of the format
// always writes: both AEAD layers, zstd, Reed-Solomon, Argon2id.
func DefaultParameters(kp params.KDF) Parameters {
	return Parameters{
		Version:        params.FormatVersion,
		Algorithm:      params.AlgorithmAES256GCM | params.AlgorithmXChaCha20Poly1305,
		Compression:    params.CompressionZstd,
		Encoding:       params.EncodingReedSolomon,
		KDF:            params.KDFArgon2id,
		KDFMemoryKiB:   kp.MemoryKiB,
		KDFTime:        kp.Time,
		KDFParallelism: kp.Parallelism,
	}
}

// Marshal packs Parameters into its fixed 12-byte big-endian form.
func (p Parameters) Marshal() []byte {
	buf := make([]byte, ParameterBlockSize)
	binary.BigEndian.PutUint16(buf[0:2], p.Version)
	buf[2] = p.Algorithm
	buf[3] = p.Compression
	buf[4] = p.Encoding
	buf[5] = p.KDF
	binary.BigEndian.PutUint32(buf[6:10], p.KDFMemoryKiB)
	buf[10] = p.KDFTime
	buf[11] = p.KDFParallelism
	return buf
}

// UnmarshalParameters reverses Marshal.
func UnmarshalParameters(buf []byte) (Parameters, error) {
	if len(buf) != ParameterBlockSize {
		return Parameters{}, fmt.Errorf("header: parameter block has wrong size %d, want %d", len(buf), ParameterBlockSize)
	}
	return Parameters{
		Version:        binary.BigEndian.Uint16(buf[0:2]),
		Algorithm:      buf[2],
		Compression:    buf[3],
		Encoding:       buf[4],
		KDF:            buf[5],
		KDFMemoryKiB:   binary.BigEndian.Uint32(buf[6:10]),
		KDFTime:        buf[10],
		KDFParallelism: buf[11],
	}, nil
}

// Validate rejects any parameter block this version of the format did not
// itself produce. Both AEAD bits must be set: the two ciphers are always
// layered together, never offered as alternatives.
func (p Parameters) Validate() error {
	wantAlgorithm := params.AlgorithmAES256GCM | params.AlgorithmXChaCha20Poly1305
	switch {
	case p.Version != params.FormatVersion:
		return fmt.Errorf("header: %w: version %#x", swerr.ErrBadMagicOrVersion, p.Version)
	case p.Algorithm != wantAlgorithm:
		return fmt.Errorf("header: unsupported algorithm tag %#x", p.Algorithm)
	case p.Compression != params.CompressionZstd:
		return fmt.Errorf("header: unsupported compression tag %#x", p.Compression)
	case p.Encoding != params.EncodingReedSolomon:
		return fmt.Errorf("header: unsupported encoding tag %#x", p.Encoding)
	case p.KDF != params.KDFArgon2id:
		return fmt.Errorf("header: unsupported kdf tag %#x", p.KDF)
	case p.KDFMemoryKiB == 0 || p.KDFTime == 0 || p.KDFParallelism == 0:
		return fmt.Errorf("header: kdf parameters must be nonzero")
	}
	return nil
}

// ToKDFParams extracts the Argon2id cost parameters carried in the header.
func (p Parameters) ToKDFParams() params.KDF {
	return params.KDF{MemoryKiB: p.KDFMemoryKiB, Time: p.KDFTime, Parallelism: p.KDFParallelism}
}
