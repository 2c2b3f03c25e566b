package header

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// HashSize is the length in bytes of the BLAKE3 content hash carried in
// Metadata.
const HashSize = 32

// minMetadataSize is the smallest possible serialized Metadata: a zero-length
// filename, the 8-byte size field, and the 32-byte hash.
const minMetadataSize = 2 + 8 + HashSize

// Metadata holds the original filename, size, and content hash stored
// alongside the cryptographic parameters in the header.
type Metadata struct {
	Filename    string
	Size        uint64
	ContentHash [HashSize]byte
}

// Marshal serializes Metadata as:
// [u16 BE filename length][filename UTF-8 bytes][u64 BE size][32-byte hash].
// Filenames are rejected, not silently truncated, if they do not fit in a
// u16 length field.
func (m Metadata) Marshal() ([]byte, error) {
	if !utf8.ValidString(m.Filename) {
		return nil, fmt.Errorf("header: filename is not valid utf-8")
	}
	nameBytes := []byte(m.Filename)
	if len(nameBytes) > 0xFFFF {
		return nil, fmt.Errorf("header: filename %d bytes exceeds maximum %d", len(nameBytes), 0xFFFF)
	}

	buf := make([]byte, 2+len(nameBytes)+8+HashSize)
	binary.BigEndian.PutUint16(buf[0:2], uint16(len(nameBytes)))
	copy(buf[2:2+len(nameBytes)], nameBytes)
	offset := 2 + len(nameBytes)
	binary.BigEndian.PutUint64(buf[offset:offset+8], m.Size)
	copy(buf[offset+8:offset+8+HashSize], m.ContentHash[:])
	return buf, nil
}

// UnmarshalMetadata reverses Marshal.
func UnmarshalMetadata(buf []byte) (Metadata, error) {
	if len(buf) < minMetadataSize {
		return Metadata{}, fmt.Errorf("header: metadata shorter than minimum size %d", minMetadataSize)
	}
	nameLen := int(binary.BigEndian.Uint16(buf[0:2]))
	required := 2 + nameLen + 8 + HashSize
	if len(buf) != required {
		return Metadata{}, fmt.Errorf("header: metadata length %d does not match required %d for filename length %d", len(buf), required, nameLen)
	}
	nameBytes := buf[2 : 2+nameLen]
	if !utf8.Valid(nameBytes) {
		return Metadata{}, fmt.Errorf("header: metadata filename is not valid utf-8")
	}

	offset := 2 + nameLen
	m := Metadata{
		Filename: string(nameBytes),
		Size:     binary.BigEndian.Uint64(buf[offset : offset+8]),
	}
	copy(m.ContentHash[:], buf[offset+8:offset+8+HashSize])
	return m, nil
}
