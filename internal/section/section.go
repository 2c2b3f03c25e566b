// Package section is a thin wrapper over rscodec that encodes each header
// sub-section and reports its encoded length, which internal/header records
// in its lengths table, and that RS-encodes those u32 lengths themselves.
package section

import (
	"encoding/binary"
	"fmt"

	"github.com/hambosto/sweetbyte-rs/internal/rscodec"
)

const lengthPrefixSize = 4

// Codec encodes and decodes individual header sections.
type Codec struct {
	rs *rscodec.Codec
}

// New builds a section Codec backed by a fresh rscodec.Codec.
func New() (*Codec, error) {
	rs, err := rscodec.New()
	if err != nil {
		return nil, fmt.Errorf("section: %w", err)
	}
	return &Codec{rs: rs}, nil
}

// Encode returns the RS-encoded form of raw, and the length of that encoded
// form (used by the header's lengths table).
func (c *Codec) Encode(raw []byte) (encoded []byte, encodedLen uint32, err error) {
	e, err := c.rs.Encode(raw)
	if err != nil {
		return nil, 0, fmt.Errorf("section: encode failed: %w", err)
	}
	return e, uint32(len(e)), nil
}

// EncodeLengthPrefix RS-encodes the big-endian 4-byte form of length, used
// as a second line of defense protecting the header's lengths table itself.
func (c *Codec) EncodeLengthPrefix(length uint32) ([]byte, error) {
	buf := make([]byte, lengthPrefixSize)
	binary.BigEndian.PutUint32(buf, length)
	e, err := c.rs.Encode(buf)
	if err != nil {
		return nil, fmt.Errorf("section: encode length prefix failed: %w", err)
	}
	return e, nil
}

// DecodeLengthPrefix RS-decodes an encoded length prefix back to a uint32.
func (c *Codec) DecodeLengthPrefix(encoded []byte) (uint32, error) {
	raw, err := c.rs.Decode(encoded)
	if err != nil {
		return 0, fmt.Errorf("section: decode length prefix failed: %w", err)
	}
	if len(raw) != lengthPrefixSize {
		return 0, fmt.Errorf("section: decoded length prefix has wrong size %d", len(raw))
	}
	return binary.BigEndian.Uint32(raw), nil
}

// Decode reverses Encode.
func (c *Codec) Decode(encoded []byte) ([]byte, error) {
	raw, err := c.rs.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("section: decode failed: %w", err)
	}
	return raw, nil
}

// EncodedLengthPrefixSize returns the fixed size, in bytes, of one RS-encoded
// 4-byte length prefix. All length prefixes encode the same-sized input (4
// bytes), so they always produce the same encoded size.
func (c *Codec) EncodedLengthPrefixSize() (int, error) {
	e, err := c.EncodeLengthPrefix(0)
	if err != nil {
		return 0, err
	}
	return len(e), nil
}
