// Package header implements the five-section, Reed-Solomon-protected
// container header: magic, salt, parameter block, metadata, and a binding
// MAC, laid out exactly as described by the container format (magic is
// recovered first and gates all later work; the MAC covers salt, parameter
// block, and metadata under the HMAC subkey).
//
// Grounded on the teacher's header/header.go (encoding.BinaryMarshaler
// idiom) and original_source's header/{mod,serializer,deserializer}.rs for
// the five-section, length-table-of-length-tables layout.
package header

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hambosto/sweetbyte-rs/internal/kdf"
	"github.com/hambosto/sweetbyte-rs/internal/mac"
	"github.com/hambosto/sweetbyte-rs/internal/params"
	"github.com/hambosto/sweetbyte-rs/internal/section"
	"github.com/hambosto/sweetbyte-rs/internal/swerr"
)

const (
	magicSize    = 4
	sectionCount = 5
	lengthsSize  = sectionCount * 4
)

// Written is the result of serializing a new header: the bytes to write to
// the container, and the derived key material the chunk pipeline should use
// for every chunk that follows.
type Written struct {
	Bytes []byte
	Keys  *kdf.Keys
}

// Write builds a new header for password and meta, using kp as the Argon2id
// cost parameters advertised in the parameter block. The caller owns the
// returned Keys and must Close them when the operation finishes.
func Write(password []byte, kp params.KDF, meta Metadata) (*Written, error) {
	codec, err := section.New()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	// Salt is recorded in the clear in the container; unlike the password or
	// derived key it is not secret material and needs no zeroing wrapper.
	salt := make([]byte, params.SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("header: %w: failed to draw salt: %v", swerr.ErrIO, err)
	}

	keys, err := kdf.Derive(password, salt, kp)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	paramBlock := DefaultParameters(kp).Marshal()
	metaBlock, err := meta.Marshal()
	if err != nil {
		keys.Close()
		return nil, fmt.Errorf("header: %w", err)
	}

	tag := mac.Compute(keys.HMACKey, salt, paramBlock, metaBlock)

	raw := [sectionCount][]byte{
		magicBytes(),
		salt,
		paramBlock,
		metaBlock,
		tag,
	}

	var lengths [sectionCount]uint32
	var encoded [sectionCount][]byte
	for i, r := range raw {
		e, l, err := codec.Encode(r)
		if err != nil {
			keys.Close()
			return nil, fmt.Errorf("header: %w", err)
		}
		encoded[i], lengths[i] = e, l
	}

	var lengthPrefixes [sectionCount][]byte
	for i, l := range lengths {
		lp, err := codec.EncodeLengthPrefix(l)
		if err != nil {
			keys.Close()
			return nil, fmt.Errorf("header: %w", err)
		}
		lengthPrefixes[i] = lp
	}

	var out bytes.Buffer
	lengthsHeader := make([]byte, lengthsSize)
	for i, l := range lengths {
		binary.BigEndian.PutUint32(lengthsHeader[i*4:], l)
	}
	out.Write(lengthsHeader)
	for _, lp := range lengthPrefixes {
		out.Write(lp)
	}
	for _, e := range encoded {
		out.Write(e)
	}

	return &Written{Bytes: out.Bytes(), Keys: keys}, nil
}

// Read parses a header from r, deriving keys from password and the
// recovered salt, and validating magic/version before any key derivation
// and the MAC after it. The caller owns the returned Keys.
func Read(r io.Reader, password []byte) (*kdf.Keys, Metadata, error) {
	codec, err := section.New()
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("header: %w", err)
	}

	lengthsHeader := make([]byte, lengthsSize)
	if _, err := io.ReadFull(r, lengthsHeader); err != nil {
		return nil, Metadata{}, fmt.Errorf("header: %w: failed to read lengths header: %v", swerr.ErrIO, err)
	}
	var tentative [sectionCount]uint32
	for i := range tentative {
		tentative[i] = binary.BigEndian.Uint32(lengthsHeader[i*4:])
	}

	lpSize, err := codec.EncodedLengthPrefixSize()
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("header: %w", err)
	}

	lengths := tentative
	for i := range lengths {
		lpBuf := make([]byte, lpSize)
		if _, err := io.ReadFull(r, lpBuf); err != nil {
			return nil, Metadata{}, fmt.Errorf("header: %w: failed to read length prefix %d: %v", swerr.ErrIO, i, err)
		}
		if recovered, err := codec.DecodeLengthPrefix(lpBuf); err == nil {
			lengths[i] = recovered
		}
	}

	var raw [sectionCount][]byte
	for i, l := range lengths {
		// l is Lᵢ, the byte length of the encoded section itself (not the raw
		// payload length, which lives inside the encoded section's own prefix).
		buf := make([]byte, l)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, Metadata{}, fmt.Errorf("header: %w: failed to read section %d: %v", swerr.ErrIO, i, err)
		}
		decoded, err := codec.Decode(buf)
		if err != nil {
			return nil, Metadata{}, fmt.Errorf("header: %w", err)
		}
		raw[i] = decoded
	}

	if !bytes.Equal(raw[0], magicBytes()) {
		return nil, Metadata{}, fmt.Errorf("header: %w", swerr.ErrBadMagicOrVersion)
	}

	paramBlock, err := UnmarshalParameters(raw[2])
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("header: %w", err)
	}
	if err := paramBlock.Validate(); err != nil {
		return nil, Metadata{}, err
	}

	salt := raw[1]
	keys, err := kdf.Derive(password, salt, paramBlock.ToKDFParams())
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("header: %w", err)
	}

	if err := mac.Verify(keys.HMACKey, raw[4], salt, raw[2], raw[3]); err != nil {
		keys.Close()
		return nil, Metadata{}, err
	}

	meta, err := UnmarshalMetadata(raw[3])
	if err != nil {
		keys.Close()
		return nil, Metadata{}, fmt.Errorf("header: %w", err)
	}

	return keys, meta, nil
}

func magicBytes() []byte {
	b := make([]byte, magicSize)
	binary.BigEndian.PutUint32(b, params.MagicValue)
	return b
}
