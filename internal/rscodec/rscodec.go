// Package rscodec implements the Reed-Solomon envelope used for both header
// sections and payload chunks: a length-prefixed run of 14 CRC32-checked
// shards (4 data, 10 parity), reconstructible as long as at most 10 of the
// 14 shards are lost or corrupted.
//
// Grounded on the teacher's reedsolomon/reedsolomon.go, adapted from
// unbounded streaming shard I/O to single in-memory blocks sized to one
// header section or one chunk.
package rscodec

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	rs "github.com/klauspost/reedsolomon"

	"github.com/hambosto/sweetbyte-rs/internal/params"
	"github.com/hambosto/sweetbyte-rs/internal/swerr"
)

const (
	lengthPrefixSize = 4
	crcSize          = 4
)

// Codec wraps a klauspost/reedsolomon Encoder configured for
// params.DataShards data shards and params.ParityShards parity shards. A
// Codec is immutable keyed state and safe for concurrent use by multiple
// goroutines, matching the sharing contract of the streaming engine.
type Codec struct {
	enc rs.Encoder
}

// New builds a Codec for the fixed 4+10 shard layout.
func New() (*Codec, error) {
	enc, err := rs.New(params.DataShards, params.ParityShards)
	if err != nil {
		return nil, fmt.Errorf("rscodec: failed to create reed-solomon encoder: %w", err)
	}
	return &Codec{enc: enc}, nil
}

// Encode produces an encoded section: a u32 BE original-length prefix
// followed by 14 equal-sized, CRC32-prefixed shards. input may be empty.
func (c *Codec) Encode(input []byte) ([]byte, error) {
	shardSize := shardPayloadSize(len(input))
	padded := make([]byte, shardSize*params.DataShards)
	copy(padded, input)

	shards, err := c.enc.Split(padded)
	if err != nil {
		return nil, fmt.Errorf("rscodec: split failed: %w", err)
	}
	if err := c.enc.Encode(shards); err != nil {
		return nil, fmt.Errorf("rscodec: encode failed: %w", err)
	}

	out := make([]byte, lengthPrefixSize+params.TotalShards*(crcSize+shardSize))
	binary.BigEndian.PutUint32(out, uint32(len(input)))

	offset := lengthPrefixSize
	for _, shard := range shards {
		crc := crc32.ChecksumIEEE(shard)
		binary.BigEndian.PutUint32(out[offset:], crc)
		copy(out[offset+crcSize:], shard)
		offset += crcSize + shardSize
	}
	return out, nil
}

// Decode recovers the original input from an encoded section, tolerating up
// to params.ParityShards shards (including their CRC prefixes) being
// corrupted.
func (c *Codec) Decode(encoded []byte) ([]byte, error) {
	if len(encoded) < lengthPrefixSize {
		return nil, fmt.Errorf("rscodec: %w: encoded section shorter than length prefix", swerr.ErrSectionUnrecoverable)
	}
	originalLength := int(binary.BigEndian.Uint32(encoded))
	rest := encoded[lengthPrefixSize:]

	shardSize := shardPayloadSize(originalLength)
	entrySize := crcSize + shardSize
	if entrySize == 0 || len(rest) != entrySize*params.TotalShards {
		return nil, fmt.Errorf("rscodec: %w: encoded section has wrong length for declared size %d", swerr.ErrSectionUnrecoverable, originalLength)
	}

	shards := make([][]byte, params.TotalShards)
	survivors := 0
	for i := 0; i < params.TotalShards; i++ {
		entry := rest[i*entrySize : (i+1)*entrySize]
		wantCRC := binary.BigEndian.Uint32(entry)
		payload := entry[crcSize:]
		if crc32.ChecksumIEEE(payload) != wantCRC {
			shards[i] = nil
			continue
		}
		cp := make([]byte, len(payload))
		copy(cp, payload)
		shards[i] = cp
		survivors++
	}

	if survivors < params.DataShards {
		return nil, fmt.Errorf("rscodec: %w: only %d of %d shards survived CRC check, need at least %d",
			swerr.ErrSectionUnrecoverable, survivors, params.TotalShards, params.DataShards)
	}

	if survivors < params.TotalShards {
		if err := c.enc.Reconstruct(shards); err != nil {
			return nil, fmt.Errorf("rscodec: %w: reconstruction failed: %v", swerr.ErrSectionUnrecoverable, err)
		}
	}

	data := make([]byte, 0, shardSize*params.DataShards)
	for i := 0; i < params.DataShards; i++ {
		data = append(data, shards[i]...)
	}
	if originalLength > len(data) {
		return nil, fmt.Errorf("rscodec: %w: declared length %d exceeds recovered data shards", swerr.ErrSectionUnrecoverable, originalLength)
	}
	if originalLength == 0 {
		return nil, nil
	}
	return data[:originalLength], nil
}

// shardPayloadSize returns the per-shard payload size for an original input
// of originalLength bytes: ceil(originalLength / DataShards), with a floor
// of 1 so that an empty input still produces a well-formed, non-degenerate
// set of shards.
func shardPayloadSize(originalLength int) int {
	if originalLength == 0 {
		return 1
	}
	return (originalLength + params.DataShards - 1) / params.DataShards
}
